package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
)

var (
	_ repository.PostRepository     = (*PostRepo)(nil)
	_ repository.CommentRepository  = (*CommentRepo)(nil)
	_ repository.ReactionRepository = (*ReactionRepo)(nil)
)

// ── Publicaciones ─────────────────────────────────────────────────────────────

type PostRepo struct {
	q Querier
}

func NewPostRepository(q Querier) *PostRepo {
	return &PostRepo{q: q}
}

const postColumns = `p.post_id, p.usuario_id, p.contenido, p.imagenes, COALESCE(p.producto_id, ''), p.likes,
	p.fecha, p.actualizado_en, COALESCE(u.nombre || ' ' || u.apellido, ''), COALESCE(pr.titulo, ''),
	(SELECT COUNT(*) FROM comentarios c WHERE c.post_id = p.post_id)`

const postFrom = ` FROM publicaciones p
	LEFT JOIN usuarios u ON u.usuario_id = p.usuario_id
	LEFT JOIN productos pr ON pr.producto_id = p.producto_id`

func scanPost(row pgx.Row) (*entity.Post, error) {
	var p entity.Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.Images, &p.ProductID, &p.Likes,
		&p.CreatedAt, &p.UpdatedAt, &p.AuthorName, &p.ProductTitle, &p.CommentCount); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) Create(ctx context.Context, p *entity.Post) error {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO publicaciones (post_id, usuario_id, contenido, imagenes, producto_id, likes, fecha, actualizado_en)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`,
		p.ID, p.UserID, p.Content, images, p.ProductID, p.Likes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepo) Update(ctx context.Context, p *entity.Post) error {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE publicaciones SET contenido = $2, imagenes = $3, actualizado_en = $4 WHERE post_id = $1`,
		p.ID, p.Content, images, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p, err := scanPost(r.q.QueryRow(ctx, `SELECT `+postColumns+postFrom+` WHERE p.post_id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

func (r *PostRepo) List(ctx context.Context, userID string) ([]*entity.Post, error) {
	rows, err := r.q.Query(ctx, `SELECT `+postColumns+postFrom+`
		WHERE ($1 = '' OR p.usuario_id = $1)
		ORDER BY p.fecha DESC, p.post_id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepo) AdjustLikes(ctx context.Context, id string, delta int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE publicaciones SET likes = GREATEST(likes + $2, 0) WHERE post_id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("adjust likes: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM publicaciones WHERE post_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// ── Comentarios ───────────────────────────────────────────────────────────────

type CommentRepo struct {
	q Querier
}

func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

const commentColumns = `c.comentario_id, c.post_id, c.usuario_id, c.contenido, c.fecha, c.actualizado_en,
	COALESCE(u.nombre || ' ' || u.apellido, '')`

const commentFrom = ` FROM comentarios c LEFT JOIN usuarios u ON u.usuario_id = c.usuario_id`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var c entity.Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.AuthorName); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO comentarios (comentario_id, post_id, usuario_id, contenido, fecha, actualizado_en)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.PostID, c.UserID, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) Update(ctx context.Context, c *entity.Comment) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE comentarios SET contenido = $2, actualizado_en = $3 WHERE comentario_id = $1`,
		c.ID, c.Content, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := scanComment(r.q.QueryRow(ctx, `SELECT `+commentColumns+commentFrom+` WHERE c.comentario_id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID string) ([]*entity.Comment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+commentColumns+commentFrom+`
		WHERE c.post_id = $1 ORDER BY c.fecha, c.comentario_id`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM comentarios WHERE comentario_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *CommentRepo) DeleteByPost(ctx context.Context, postID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`DELETE FROM comentarios WHERE post_id = $1 RETURNING comentario_id`, postID)
	if err != nil {
		return nil, fmt.Errorf("delete comments: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("delete comments: %w", err)
	}
	return ids, nil
}

// ── Reacciones ────────────────────────────────────────────────────────────────

type ReactionRepo struct {
	q Querier
}

func NewReactionRepository(q Querier) *ReactionRepo {
	return &ReactionRepo{q: q}
}

func (r *ReactionRepo) Create(ctx context.Context, rc *entity.Reaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reacciones (reaccion_id, usuario_id, tipo, entidad, entidad_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rc.ID, rc.UserID, rc.Type, rc.TargetKind, rc.TargetID, rc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reaction: %w", err)
	}
	return nil
}

func (r *ReactionRepo) UpdateType(ctx context.Context, id, reactionType string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE reacciones SET tipo = $2 WHERE reaccion_id = $1`, id, reactionType)
	if err != nil {
		return fmt.Errorf("update reaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM reacciones WHERE reaccion_id = $1`, id); err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}

func (r *ReactionRepo) GetByUserAndTarget(ctx context.Context, userID, kind, targetID string) (*entity.Reaction, error) {
	var rc entity.Reaction
	err := r.q.QueryRow(ctx, `
		SELECT reaccion_id, usuario_id, tipo, entidad, entidad_id, fecha FROM reacciones
		WHERE usuario_id = $1 AND entidad = $2 AND entidad_id = $3`, userID, kind, targetID,
	).Scan(&rc.ID, &rc.UserID, &rc.Type, &rc.TargetKind, &rc.TargetID, &rc.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reaction: %w", err)
	}
	return &rc, nil
}

func (r *ReactionRepo) CountByTarget(ctx context.Context, kind, targetID string) ([]entity.ReactionCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT tipo, COUNT(*) FROM reacciones WHERE entidad = $1 AND entidad_id = $2
		GROUP BY tipo ORDER BY COUNT(*) DESC, tipo`, kind, targetID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	defer rows.Close()
	out := []entity.ReactionCount{}
	for rows.Next() {
		var rc entity.ReactionCount
		if err := rows.Scan(&rc.Type, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan reaction count: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *ReactionRepo) DeleteByTargets(ctx context.Context, kind string, targetIDs ...string) error {
	if len(targetIDs) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx,
		`DELETE FROM reacciones WHERE entidad = $1 AND entidad_id = ANY($2)`, kind, targetIDs); err != nil {
		return fmt.Errorf("delete reactions: %w", err)
	}
	return nil
}
