package usecase

import (
	"context"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

// ReactionUseCase reacciones sobre publicaciones y comentarios.
// En publicaciones, likes sigue el número de reacciones dentro de la misma transacción.
type ReactionUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
}

func NewReactionUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock) *ReactionUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &ReactionUseCase{txRunner: txRunner, repos: repos, clock: clk}
}

func targetExists(ctx context.Context, r repository.Repos, kind, id string) error {
	switch kind {
	case entity.TargetPost:
		p, err := r.Posts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPostNotFound
		}
	case entity.TargetComment:
		c, err := r.Comments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCommentNotFound
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// Toggle crea la reacción, cambia su tipo o la quita si se repite el mismo tipo.
func (uc *ReactionUseCase) Toggle(ctx context.Context, userID, kind, targetID string, in dto.ReactRequest) (*dto.ReactResultResponse, error) {
	if !entity.ValidReactionType(in.Type) {
		return nil, domain.ErrInvalidReactionType
	}
	out := &dto.ReactResultResponse{}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if err := targetExists(ctx, r, kind, targetID); err != nil {
			return err
		}
		existing, err := r.Reactions.GetByUserAndTarget(ctx, userID, kind, targetID)
		if err != nil {
			return err
		}

		switch {
		case existing != nil && existing.Type == in.Type:
			if err := r.Reactions.Delete(ctx, existing.ID); err != nil {
				return err
			}
			out.Action = dto.ReactionRemoved
			return uc.adjustLikes(ctx, r, kind, targetID, -1)

		case existing != nil:
			if err := r.Reactions.UpdateType(ctx, existing.ID, in.Type); err != nil {
				return err
			}
			existing.Type = in.Type
			resp := dto.FromReaction(existing)
			out.Reaction, out.Action = &resp, dto.ReactionChanged
			return nil
		}

		id, err := r.Sequences.Next(ctx, domain.KindReaction)
		if err != nil {
			return err
		}
		rc := &entity.Reaction{ID: id, UserID: userID, Type: in.Type, TargetKind: kind, TargetID: targetID, CreatedAt: uc.clock.Now()}
		if err := r.Reactions.Create(ctx, rc); err != nil {
			return err
		}
		resp := dto.FromReaction(rc)
		out.Reaction, out.Action = &resp, dto.ReactionAdded
		return uc.adjustLikes(ctx, r, kind, targetID, 1)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ReactionUseCase) adjustLikes(ctx context.Context, r repository.Repos, kind, targetID string, delta int) error {
	if kind != entity.TargetPost {
		return nil
	}
	return r.Posts.AdjustLikes(ctx, targetID, delta)
}

// Summary reacciones agrupadas por tipo; userID vacío deja Mine en nil.
func (uc *ReactionUseCase) Summary(ctx context.Context, userID, kind, targetID string) (*dto.ReactionSummaryResponse, error) {
	if err := targetExists(ctx, uc.repos, kind, targetID); err != nil {
		return nil, err
	}
	counts, err := uc.repos.Reactions.CountByTarget(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}
	out := &dto.ReactionSummaryResponse{
		Reactions: dto.FromReactionCounts(counts),
		Summary:   dto.ReactionTotals{Available: append([]string(nil), entity.ReactionTypes...)},
	}
	for _, rc := range counts {
		out.Summary.TotalReactions += rc.Count
	}
	if userID != "" {
		mine, err := uc.repos.Reactions.GetByUserAndTarget(ctx, userID, kind, targetID)
		if err != nil {
			return nil, err
		}
		if mine != nil {
			out.Mine = &mine.Type
		}
	}
	return out, nil
}
