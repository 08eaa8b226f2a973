package dto

import "time"

// UpsertReviewRequest crea o edita la reseña del usuario sobre un producto.
type UpsertReviewRequest struct {
	Rating  int    `json:"puntuacion" validate:"required"`
	Comment string `json:"comentario" validate:"omitempty,max=1000"`
}

// ReviewResponse salida de una reseña.
type ReviewResponse struct {
	ID        string    `json:"resena_id"`
	ProductID string    `json:"producto_id"`
	UserID    string    `json:"usuario_id"`
	UserName  string    `json:"usuario,omitempty"`
	Rating    int       `json:"puntuacion"`
	Comment   string    `json:"comentario"`
	CreatedAt time.Time `json:"fecha"`
	Approved  bool      `json:"aprobada"`
}

// MyReviewResponse reseña propia; Review es nil si el usuario no ha reseñado el producto.
type MyReviewResponse struct {
	Review *ReviewResponse `json:"resena"`
}

// ReviewStatsResponse agregados de reseñas aprobadas.
type ReviewStatsResponse struct {
	Average      float64        `json:"promedio"`
	Total        int            `json:"total_resenas"`
	Distribution map[string]int `json:"distribucion"`
}

// ProductReviewsResponse reseñas públicas de un producto.
type ProductReviewsResponse struct {
	Reviews []ReviewResponse    `json:"resenas"`
	Stats   ReviewStatsResponse `json:"estadisticas"`
}
