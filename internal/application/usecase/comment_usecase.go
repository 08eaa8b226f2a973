package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

// CommentUseCase comentarios sobre publicaciones.
type CommentUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
}

func NewCommentUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock) *CommentUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &CommentUseCase{txRunner: txRunner, repos: repos, clock: clk}
}

func commentContent(raw string, missing error) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", missing
	}
	if utf8.RuneCountInString(content) > entity.MaxPostCommentLength {
		return "", domain.ErrInvalidInput
	}
	return content, nil
}

// Create comenta una publicación existente.
func (uc *CommentUseCase) Create(ctx context.Context, userID, postID string, in dto.CommentRequest) (*dto.CommentResponse, error) {
	content, err := commentContent(in.Content, domain.ErrMissingContent)
	if err != nil {
		return nil, err
	}
	var comment *entity.Comment
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := r.Posts.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPostNotFound
		}
		id, err := r.Sequences.Next(ctx, domain.KindComment)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		c := &entity.Comment{ID: id, PostID: postID, UserID: userID, Content: content, CreatedAt: now, UpdatedAt: now}
		if err := r.Comments.Create(ctx, c); err != nil {
			return err
		}
		comment, err = r.Comments.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromComment(comment)
	return &resp, nil
}

// ListByPost comentarios en orden cronológico.
func (uc *CommentUseCase) ListByPost(ctx context.Context, postID string) (*dto.CommentListResponse, error) {
	p, err := uc.repos.Posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	list, err := uc.repos.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	out := &dto.CommentListResponse{Comments: make([]dto.CommentResponse, 0, len(list)), Total: len(list)}
	for _, c := range list {
		out.Comments = append(out.Comments, dto.FromComment(c))
	}
	return out, nil
}

func ownedComment(ctx context.Context, r repository.Repos, userID, id string) (*entity.Comment, error) {
	c, err := r.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCommentNotFound
	}
	if c.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// Update solo el autor.
func (uc *CommentUseCase) Update(ctx context.Context, userID, id string, in dto.CommentRequest) (*dto.CommentResponse, error) {
	content, err := commentContent(in.Content, domain.ErrEmptyContent)
	if err != nil {
		return nil, err
	}
	var comment *entity.Comment
	err = uc.txRunner.Run(ctx, func(r repository.Repos) error {
		c, err := ownedComment(ctx, r, userID, id)
		if err != nil {
			return err
		}
		c.Content = content
		c.UpdatedAt = uc.clock.Now()
		comment = c
		return r.Comments.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromComment(comment)
	return &resp, nil
}

// Delete borra el comentario y sus reacciones.
func (uc *CommentUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if _, err := ownedComment(ctx, r, userID, id); err != nil {
			return err
		}
		if err := r.Reactions.DeleteByTargets(ctx, entity.TargetComment, id); err != nil {
			return err
		}
		ok, err := r.Comments.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrCommentNotFound
		}
		return nil
	})
}
