package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/testutil"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

const neighbour = "US100002"

type socialFixture struct {
	store     *testutil.MemStore
	posts     *PostUseCase
	comments  *CommentUseCase
	reactions *ReactionUseCase
}

func newSocial(t *testing.T) socialFixture {
	t.Helper()
	store := testutil.NewMemStore()
	store.SeedUser(entity.User{ID: buyer, FirstName: "Ana", LastName: "Pérez", Role: entity.RoleCliente, Active: true})
	store.SeedUser(entity.User{ID: neighbour, FirstName: "Luis", LastName: "Gómez", Role: entity.RoleCliente, Active: true})
	clk := clock.NewFixed(testNow)
	return socialFixture{
		store:     store,
		posts:     NewPostUseCase(store, store.Repos(), clk, nil),
		comments:  NewCommentUseCase(store, store.Repos(), clk),
		reactions: NewReactionUseCase(store, store.Repos(), clk),
	}
}

func TestPost_CrearValidaContenidoYProducto(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	p := f.store.SeedProduct("PR300001", "50", 1)

	_, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "   "})
	assert.ErrorIs(t, err, domain.ErrMissingContent)

	_, err = f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: strings.Repeat("a", entity.MaxPostLength+1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "mira", ProductID: "PR399999"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	post, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: " Lo compré y llegó perfecto ", Images: []string{"a.jpg", " "}, ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "POST700001", post.ID)
	assert.Equal(t, "Lo compré y llegó perfecto", post.Content)
	assert.Equal(t, []string{"a.jpg"}, post.Images)
	assert.Equal(t, "Ana Pérez", post.AuthorName)
	assert.Equal(t, p.Title, post.ProductTitle)

	p.Active = false
	f.store.SetProduct(p)
	_, err = f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "otra", ProductID: p.ID})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPost_FeedFiltraPorUsuario(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	_, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "uno"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, neighbour, dto.CreatePostRequest{Content: "dos"})
	require.NoError(t, err)

	feed, err := f.posts.Feed(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 2, feed.Total)
	// misma fecha: el id más alto va primero
	assert.Equal(t, "POST700002", feed.Posts[0].ID)
	assert.NotNil(t, feed.Posts[0].Reactions)

	mine, err := f.posts.Feed(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, mine.Posts, 1)
	assert.Equal(t, "uno", mine.Posts[0].Content)
}

func TestPost_SoloElAutorEdita(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	post, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "original", Images: []string{"a.jpg"}})
	require.NoError(t, err)

	text := "editado"
	_, err = f.posts.Update(ctx, neighbour, post.ID, dto.UpdatePostRequest{Content: &text})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	empty := "  "
	_, err = f.posts.Update(ctx, buyer, post.ID, dto.UpdatePostRequest{Content: &empty})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	_, err = f.posts.Update(ctx, buyer, "POST799999", dto.UpdatePostRequest{Content: &text})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	updated, err := f.posts.Update(ctx, buyer, post.ID, dto.UpdatePostRequest{Content: &text})
	require.NoError(t, err)
	assert.Equal(t, "editado", updated.Content)
	assert.Equal(t, []string{"a.jpg"}, updated.Images, "sin imagenes en la petición se conservan")
}

func TestReaction_AlternaYMantieneLikes(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	post, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "hola"})
	require.NoError(t, err)

	_, err = f.reactions.Toggle(ctx, neighbour, entity.TargetPost, post.ID, dto.ReactRequest{Type: "meh"})
	assert.ErrorIs(t, err, domain.ErrInvalidReactionType)
	_, err = f.reactions.Toggle(ctx, neighbour, entity.TargetPost, "POST799999", dto.ReactRequest{Type: "like"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	res, err := f.reactions.Toggle(ctx, neighbour, entity.TargetPost, post.ID, dto.ReactRequest{Type: "like"})
	require.NoError(t, err)
	assert.Equal(t, dto.ReactionAdded, res.Action)
	assert.Equal(t, "RCN900001", res.Reaction.ID)

	_, err = f.reactions.Toggle(ctx, buyer, entity.TargetPost, post.ID, dto.ReactRequest{Type: "love"})
	require.NoError(t, err)

	res, err = f.reactions.Toggle(ctx, neighbour, entity.TargetPost, post.ID, dto.ReactRequest{Type: "wow"})
	require.NoError(t, err)
	assert.Equal(t, dto.ReactionChanged, res.Action)
	assert.Equal(t, "wow", res.Reaction.Type)

	detail, err := f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Post.Likes)
	assert.Equal(t, 2, detail.Summary.TotalReactions)

	res, err = f.reactions.Toggle(ctx, neighbour, entity.TargetPost, post.ID, dto.ReactRequest{Type: "wow"})
	require.NoError(t, err)
	assert.Equal(t, dto.ReactionRemoved, res.Action)
	assert.Nil(t, res.Reaction)

	sum, err := f.reactions.Summary(ctx, buyer, entity.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.ReactionCountResponse{{Type: "love", Count: 1}}, sum.Reactions)
	require.NotNil(t, sum.Mine)
	assert.Equal(t, "love", *sum.Mine)
	assert.Equal(t, entity.ReactionTypes, sum.Summary.Available)

	anon, err := f.reactions.Summary(ctx, "", entity.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Nil(t, anon.Mine)

	detail, err = f.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Post.Likes)
}

func TestComment_CicloCompleto(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	post, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "hola"})
	require.NoError(t, err)

	_, err = f.comments.Create(ctx, neighbour, post.ID, dto.CommentRequest{Content: ""})
	assert.ErrorIs(t, err, domain.ErrMissingContent)
	_, err = f.comments.Create(ctx, neighbour, "POST799999", dto.CommentRequest{Content: "x"})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	c, err := f.comments.Create(ctx, neighbour, post.ID, dto.CommentRequest{Content: "¡Qué bien!"})
	require.NoError(t, err)
	assert.Equal(t, "CMT800001", c.ID)
	assert.Equal(t, "Luis Gómez", c.AuthorName)

	_, err = f.comments.Update(ctx, buyer, c.ID, dto.CommentRequest{Content: "hack"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.comments.Update(ctx, neighbour, c.ID, dto.CommentRequest{Content: " "})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)
	edited, err := f.comments.Update(ctx, neighbour, c.ID, dto.CommentRequest{Content: "Muy bien"})
	require.NoError(t, err)
	assert.Equal(t, "Muy bien", edited.Content)

	_, err = f.reactions.Toggle(ctx, buyer, entity.TargetComment, c.ID, dto.ReactRequest{Type: "genial"})
	require.NoError(t, err)

	list, err := f.comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, f.comments.Delete(ctx, neighbour, c.ID))
	assert.ErrorIs(t, f.comments.Delete(ctx, neighbour, c.ID), domain.ErrCommentNotFound)
	rc, err := f.store.Repos().Reactions.GetByUserAndTarget(ctx, buyer, entity.TargetComment, c.ID)
	require.NoError(t, err)
	assert.Nil(t, rc, "las reacciones del comentario se borran con él")
}

func TestPost_EliminarBorraComentariosYReacciones(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	post, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "hola"})
	require.NoError(t, err)
	c, err := f.comments.Create(ctx, neighbour, post.ID, dto.CommentRequest{Content: "hey"})
	require.NoError(t, err)
	_, err = f.reactions.Toggle(ctx, neighbour, entity.TargetPost, post.ID, dto.ReactRequest{Type: "like"})
	require.NoError(t, err)
	_, err = f.reactions.Toggle(ctx, buyer, entity.TargetComment, c.ID, dto.ReactRequest{Type: "love"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.posts.Delete(ctx, neighbour, post.ID), domain.ErrForbidden)
	require.NoError(t, f.posts.Delete(ctx, buyer, post.ID))

	_, err = f.posts.Get(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	r := f.store.Repos()
	cm, err := r.Comments.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, cm)
	counts, err := r.Reactions.CountByTarget(ctx, entity.TargetComment, c.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)
	counts, err = r.Reactions.CountByTarget(ctx, entity.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestPost_EliminarFallidoNoDejaNadaAMedias(t *testing.T) {
	f := newSocial(t)
	ctx := context.Background()
	post, err := f.posts.Create(ctx, buyer, dto.CreatePostRequest{Content: "hola"})
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, neighbour, post.ID, dto.CommentRequest{Content: "hey"})
	require.NoError(t, err)

	f.store.FailOn("posts.delete", assert.AnError)
	assert.ErrorIs(t, f.posts.Delete(ctx, buyer, post.ID), assert.AnError)

	list, err := f.comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total, "rollback restaura los comentarios")
}
