package dto

import "time"

// CreatePostRequest nueva publicación. El contenido vacío se rechaza en el caso de uso.
type CreatePostRequest struct {
	Content   string   `json:"contenido" validate:"max=2000"`
	Images    []string `json:"imagenes" validate:"omitempty,max=10,dive,required,max=500"`
	ProductID string   `json:"producto_id"`
}

// UpdatePostRequest solo cambia los campos presentes.
type UpdatePostRequest struct {
	Content *string   `json:"contenido" validate:"omitempty,max=2000"`
	Images  *[]string `json:"imagenes" validate:"omitempty,max=10,dive,required,max=500"`
}

// CommentRequest crea o edita un comentario.
type CommentRequest struct {
	Content string `json:"contenido" validate:"max=1000"`
}

// ReactRequest tipo de reacción; repetir el mismo tipo la quita.
type ReactRequest struct {
	Type string `json:"tipo"`
}

// ReactionCountResponse reacciones de un tipo.
type ReactionCountResponse struct {
	Type  string `json:"tipo"`
	Count int    `json:"cantidad"`
}

// PostResponse publicación del feed.
type PostResponse struct {
	ID           string                  `json:"post_id"`
	UserID       string                  `json:"usuario_id"`
	AuthorName   string                  `json:"autor,omitempty"`
	Content      string                  `json:"contenido"`
	Images       []string                `json:"imagenes"`
	ProductID    string                  `json:"producto_id,omitempty"`
	ProductTitle string                  `json:"producto_titulo,omitempty"`
	Likes        int                     `json:"likes"`
	CommentCount int                     `json:"comentarios_count"`
	Reactions    []ReactionCountResponse `json:"reacciones"`
	CreatedAt    time.Time               `json:"fecha"`
	UpdatedAt    time.Time               `json:"actualizado_en"`
}

// FeedResponse publicaciones, más recientes primero.
type FeedResponse struct {
	Posts []PostResponse `json:"publicaciones"`
	Total int            `json:"total"`
}

// CommentResponse comentario de una publicación.
type CommentResponse struct {
	ID         string    `json:"comentario_id"`
	PostID     string    `json:"post_id"`
	UserID     string    `json:"usuario_id"`
	AuthorName string    `json:"autor,omitempty"`
	Content    string    `json:"contenido"`
	CreatedAt  time.Time `json:"fecha"`
	UpdatedAt  time.Time `json:"actualizado_en"`
}

// CommentListResponse comentarios en orden cronológico.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comentarios"`
	Total    int               `json:"total"`
}

// PostSummary totales del detalle.
type PostSummary struct {
	TotalComments  int `json:"total_comentarios"`
	TotalReactions int `json:"total_reacciones"`
}

// PostDetailResponse publicación con comentarios y reacciones agrupadas.
type PostDetailResponse struct {
	Post      PostResponse            `json:"publicacion"`
	Comments  []CommentResponse       `json:"comentarios"`
	Reactions []ReactionCountResponse `json:"reacciones"`
	Summary   PostSummary             `json:"resumen"`
}

// ReactionResponse reacción de un usuario.
type ReactionResponse struct {
	ID         string    `json:"reaccion_id"`
	Type       string    `json:"tipo"`
	TargetKind string    `json:"entidad"`
	TargetID   string    `json:"entidad_id"`
	CreatedAt  time.Time `json:"fecha"`
}

// Resultados de Toggle.
const (
	ReactionAdded   = "creada"
	ReactionChanged = "actualizada"
	ReactionRemoved = "eliminada"
)

// ReactResultResponse Reaction es nil cuando la reacción se quitó.
type ReactResultResponse struct {
	Reaction *ReactionResponse `json:"reaccion"`
	Action   string            `json:"accion"`
}

// ReactionTotals resumen de reacciones.
type ReactionTotals struct {
	TotalReactions int      `json:"total_reacciones"`
	Available      []string `json:"tipos_disponibles"`
}

// ReactionSummaryResponse reacciones agrupadas; Mine es nil sin sesión o sin reacción propia.
type ReactionSummaryResponse struct {
	Reactions []ReactionCountResponse `json:"reacciones"`
	Mine      *string                 `json:"mi_reaccion"`
	Summary   ReactionTotals          `json:"resumen"`
}
