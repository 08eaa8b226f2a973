package entity

import "time"

// Límites de las publicaciones de la comunidad.
const (
	MaxPostLength        = 2000
	MaxPostCommentLength = 1000
	MaxPostImages        = 10
)

// Entidades que admiten reacciones.
const (
	TargetPost    = "post"
	TargetComment = "comentario"
)

// ReactionTypes tipos de reacción en el orden en que se ofrecen.
var ReactionTypes = []string{"like", "love", "genial", "wow", "sad", "angry"}

// ValidReactionType indica si t es un tipo de reacción conocido.
func ValidReactionType(t string) bool {
	for _, rt := range ReactionTypes {
		if rt == t {
			return true
		}
	}
	return false
}

// Post publicación de un usuario, opcionalmente sobre un producto.
// Likes cuenta las reacciones de cualquier tipo y se mantiene en la misma transacción que ellas.
type Post struct {
	ID        string
	UserID    string
	Content   string
	Images    []string
	ProductID string
	Likes     int
	CreatedAt time.Time
	UpdatedAt time.Time

	// solo lectura
	AuthorName   string
	ProductTitle string
	CommentCount int
}

// Comment comentario sobre una publicación.
type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	AuthorName string // solo lectura
}

// Reaction una por (usuario, entidad, id). Reaccionar con el mismo tipo la quita.
type Reaction struct {
	ID         string
	UserID     string
	Type       string
	TargetKind string
	TargetID   string
	CreatedAt  time.Time
}

// ReactionCount reacciones de un tipo sobre una entidad.
type ReactionCount struct {
	Type  string
	Count int
}
