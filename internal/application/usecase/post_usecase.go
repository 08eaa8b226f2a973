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
	"github.com/jhoicas/elbaul-api/pkg/logger"
)

// PostUseCase publicaciones de la comunidad. Solo el autor edita o elimina.
type PostUseCase struct {
	txRunner repository.TxRunner
	repos    repository.Repos
	clock    clock.Clock
	log      *logger.Logger
}

func NewPostUseCase(txRunner repository.TxRunner, repos repository.Repos, clk clock.Clock, log *logger.Logger) *PostUseCase {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PostUseCase{txRunner: txRunner, repos: repos, clock: clk, log: log.Named("publicaciones")}
}

func cleanImages(in []string) []string {
	out := make([]string, 0, len(in))
	for _, img := range in {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

// Create publica; si trae producto, este debe existir y estar activo.
func (uc *PostUseCase) Create(ctx context.Context, userID string, in dto.CreatePostRequest) (*dto.PostResponse, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrMissingContent
	}
	images := cleanImages(in.Images)
	if utf8.RuneCountInString(content) > entity.MaxPostLength || len(images) > entity.MaxPostImages {
		return nil, domain.ErrInvalidInput
	}

	var post *entity.Post
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if in.ProductID != "" {
			p, err := r.Products.GetByID(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.Active {
				return domain.ErrProductNotFound
			}
		}
		id, err := r.Sequences.Next(ctx, domain.KindPost)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		post = &entity.Post{
			ID:        id,
			UserID:    userID,
			Content:   content,
			Images:    images,
			ProductID: in.ProductID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Posts.Create(ctx, post); err != nil {
			return err
		}
		post, err = r.Posts.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("post_id", post.ID).Str("usuario_id", userID).Msg("publicación creada")
	resp := dto.FromPost(post)
	return &resp, nil
}

// Feed todas las publicaciones (o las de userID) con sus reacciones agrupadas.
func (uc *PostUseCase) Feed(ctx context.Context, userID string) (*dto.FeedResponse, error) {
	posts, err := uc.repos.Posts.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.FeedResponse{Posts: make([]dto.PostResponse, 0, len(posts)), Total: len(posts)}
	for _, p := range posts {
		resp := dto.FromPost(p)
		counts, err := uc.repos.Reactions.CountByTarget(ctx, entity.TargetPost, p.ID)
		if err != nil {
			return nil, err
		}
		resp.Reactions = dto.FromReactionCounts(counts)
		out.Posts = append(out.Posts, resp)
	}
	return out, nil
}

// Get detalle con comentarios y reacciones.
func (uc *PostUseCase) Get(ctx context.Context, id string) (*dto.PostDetailResponse, error) {
	p, err := uc.repos.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	comments, err := uc.repos.Comments.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := uc.repos.Reactions.CountByTarget(ctx, entity.TargetPost, id)
	if err != nil {
		return nil, err
	}

	out := &dto.PostDetailResponse{
		Post:      dto.FromPost(p),
		Comments:  make([]dto.CommentResponse, 0, len(comments)),
		Reactions: dto.FromReactionCounts(counts),
	}
	out.Post.Reactions = out.Reactions
	for _, c := range comments {
		out.Comments = append(out.Comments, dto.FromComment(c))
	}
	out.Summary.TotalComments = len(comments)
	for _, rc := range counts {
		out.Summary.TotalReactions += rc.Count
	}
	return out, nil
}

// ownedPost devuelve la publicación si userID es su autor.
func ownedPost(ctx context.Context, r repository.Repos, userID, id string) (*entity.Post, error) {
	p, err := r.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPostNotFound
	}
	if p.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// Update edita contenido o imágenes; un contenido presente no puede quedar vacío.
func (uc *PostUseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePostRequest) (*dto.PostResponse, error) {
	var content string
	if in.Content != nil {
		content = strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, domain.ErrEmptyContent
		}
		if utf8.RuneCountInString(content) > entity.MaxPostLength {
			return nil, domain.ErrInvalidInput
		}
	}
	var images []string
	if in.Images != nil {
		images = cleanImages(*in.Images)
		if len(images) > entity.MaxPostImages {
			return nil, domain.ErrInvalidInput
		}
	}

	var post *entity.Post
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		p, err := ownedPost(ctx, r, userID, id)
		if err != nil {
			return err
		}
		if in.Content != nil {
			p.Content = content
		}
		if in.Images != nil {
			p.Images = images
		}
		p.UpdatedAt = uc.clock.Now()
		if err := r.Posts.Update(ctx, p); err != nil {
			return err
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromPost(post)
	return &resp, nil
}

// Delete borra la publicación con sus comentarios y todas las reacciones asociadas.
func (uc *PostUseCase) Delete(ctx context.Context, userID, id string) error {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		if _, err := ownedPost(ctx, r, userID, id); err != nil {
			return err
		}
		commentIDs, err := r.Comments.DeleteByPost(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Reactions.DeleteByTargets(ctx, entity.TargetComment, commentIDs...); err != nil {
			return err
		}
		if err := r.Reactions.DeleteByTargets(ctx, entity.TargetPost, id); err != nil {
			return err
		}
		ok, err := r.Posts.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrPostNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("post_id", id).Msg("publicación eliminada")
	return nil
}
