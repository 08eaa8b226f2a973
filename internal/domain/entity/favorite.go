package entity

import "time"

// Favorite producto marcado por un usuario.
type Favorite struct {
	ID        string
	UserID    string
	ProductID string
	AddedAt   time.Time
}

// FavoriteDetail favorito con el producto asociado.
type FavoriteDetail struct {
	Favorite
	Product Product
}
