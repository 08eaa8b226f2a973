package repository

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

// PostRepository puerto de persistencia para Post. Las lecturas traen autor, título del producto
// y número de comentarios.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	// List más recientes primero; userID vacío no filtra.
	List(ctx context.Context, userID string) ([]*entity.Post, error)
	AdjustLikes(ctx context.Context, id string, delta int) error
	Delete(ctx context.Context, id string) (bool, error)
}

// CommentRepository puerto de persistencia para Comment.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
	// DeleteByPost borra los comentarios de la publicación y devuelve sus ids.
	DeleteByPost(ctx context.Context, postID string) ([]string, error)
}

// ReactionRepository puerto de persistencia para Reaction.
// Create devuelve domain.ErrDuplicate si el usuario ya reaccionó a la entidad.
type ReactionRepository interface {
	Create(ctx context.Context, reaction *entity.Reaction) error
	UpdateType(ctx context.Context, id, reactionType string) error
	Delete(ctx context.Context, id string) error
	GetByUserAndTarget(ctx context.Context, userID, kind, targetID string) (*entity.Reaction, error)
	// CountByTarget agrupa por tipo, de mayor a menor.
	CountByTarget(ctx context.Context, kind, targetID string) ([]entity.ReactionCount, error)
	DeleteByTargets(ctx context.Context, kind string, targetIDs ...string) error
}
