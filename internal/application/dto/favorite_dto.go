package dto

import "time"

// AddFavoriteRequest producto a marcar.
type AddFavoriteRequest struct {
	ProductID string `json:"producto_id" validate:"required"`
}

// FavoriteResponse favorito con su producto.
type FavoriteResponse struct {
	ID      string           `json:"favorito_id"`
	AddedAt time.Time        `json:"fecha_agregado"`
	Product *ProductResponse `json:"producto,omitempty"`
}

// FavoriteCheckResponse indica si el producto está en favoritos del usuario.
type FavoriteCheckResponse struct {
	IsFavorite bool    `json:"es_favorito"`
	FavoriteID *string `json:"favorito_id"`
}
