package entity

import "time"

// Límites de una reseña.
const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

// Review reseña de un usuario sobre un producto; una por (usuario, producto).
// Solo las aprobadas por un administrador son públicas.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
	Approved  bool
	UserName  string // solo lectura
}

// ValidRating indica si r está en 1..5.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ReviewStats agregados de reseñas aprobadas de un producto.
type ReviewStats struct {
	Total        int
	Average      float64
	Distribution map[int]int // puntuación -> cantidad
}
