package services_test

import (
	"context"
	"iter"
	"slices"
	"testing"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/services"
	"github.com/anonto42/nano-midea/interactions/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	e := newEnv(t)
	testutil.CreateUser(t, e.db, "u1")
	svc := services.NewPostService(e.store, e.cfg)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "u1", "hello", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "u1", post.AuthorID)

	image := "uploads/cat.png"
	post, err = svc.CreatePost(ctx, "u1", "", &image)
	require.NoError(t, err)
	require.NotNil(t, post.ImageRef)
	assert.Equal(t, image, *post.ImageRef)

	blank := " "
	_, err = svc.CreatePost(ctx, "u1", "  ", &blank)
	assert.ErrorIs(t, err, services.ErrInvalidArgument)

	_, err = svc.CreatePost(ctx, "", "hello", nil)
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	_, err = svc.CreatePost(ctx, "ghost", "hello", nil)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.Equal(t, int64(2), testutil.Count(t, e.db, &models.Post{}, ""))
	assert.Equal(t, int64(0), e.notifications(t, ""))
}

func TestListPosts_Aggregates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, "u1")
	testutil.CreateUser(t, e.db, "u2")
	posts := services.NewPostService(e.store, e.cfg)
	likes := services.NewLikeService(e.store, e.cfg)
	comments := services.NewCommentService(e.store, e.cfg)

	older, err := posts.CreatePost(ctx, "u1", "older", nil)
	require.NoError(t, err)
	newer, err := posts.CreatePost(ctx, "u2", "newer", nil)
	require.NoError(t, err)

	_, err = likes.ToggleLike(ctx, "u2", older.ID)
	require.NoError(t, err)
	_, err = likes.ToggleLike(ctx, "u1", older.ID)
	require.NoError(t, err)
	first, err := comments.CreateComment(ctx, "u2", older.ID, "first")
	require.NoError(t, err)
	second, err := comments.CreateComment(ctx, "u1", older.ID, "second")
	require.NoError(t, err)

	seq, err := posts.ListPosts(ctx)
	require.NoError(t, err)
	views := slices.Collect(seq)
	require.Len(t, views, 2)

	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, "u2", views[0].Author.ID)
	assert.Empty(t, views[0].Comments)
	assert.Zero(t, views[0].LikeCount)

	got := views[1]
	assert.Equal(t, older.ID, got.ID)
	assert.Equal(t, "User u1", got.Author.Name)
	assert.Equal(t, 2, got.LikeCount)
	assert.ElementsMatch(t, []string{"u1", "u2"}, got.LikedBy)
	assert.Equal(t, 2, got.CommentCount)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, second.ID, got.Comments[0].ID)
	assert.Equal(t, "u1", got.Comments[0].Author.ID)
	assert.Equal(t, first.ID, got.Comments[1].ID)

	// The sequence can be walked again.
	assert.Len(t, slices.Collect(seq), 2)
}

func TestListPosts_StoreFailure(t *testing.T) {
	e := newEnv(t)
	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = services.NewPostService(e.store, e.cfg).ListPosts(context.Background())
	assert.ErrorIs(t, err, services.ErrStoreUnavailable)
}

func TestListPostsByAuthorAndLiked(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, "u1")
	testutil.CreateUser(t, e.db, "u2")
	testutil.CreatePost(t, e.db, "p1", "u1", "by u1")
	testutil.CreatePost(t, e.db, "p2", "u2", "by u2")
	posts := services.NewPostService(e.store, e.cfg)
	likes := services.NewLikeService(e.store, e.cfg)

	seq, err := posts.ListPostsByAuthor(ctx, "u1")
	require.NoError(t, err)
	ids := collectIDs(seq)
	assert.Equal(t, []string{"p1"}, ids)

	seq, err = posts.ListLikedPosts(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, collectIDs(seq))

	_, err = likes.ToggleLike(ctx, "u1", "p2")
	require.NoError(t, err)
	seq, err = posts.ListLikedPosts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, collectIDs(seq))

	_, err = posts.ListPostsByAuthor(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = posts.ListLikedPosts(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func collectIDs(seq iter.Seq[services.PostView]) []string {
	var ids []string
	for v := range seq {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	testutil.CreateUser(t, e.db, "owner")
	testutil.CreateUser(t, e.db, "other")
	testutil.CreatePost(t, e.db, "p1", "owner", "hello")
	posts := services.NewPostService(e.store, e.cfg)
	likes := services.NewLikeService(e.store, e.cfg)
	comments := services.NewCommentService(e.store, e.cfg)

	_, err := likes.ToggleLike(ctx, "other", "p1")
	require.NoError(t, err)
	_, err = comments.CreateComment(ctx, "other", "p1", "hi")
	require.NoError(t, err)
	require.Equal(t, int64(2), e.notifications(t, ""))

	err = posts.DeletePost(ctx, "other", "p1")
	assert.ErrorIs(t, err, services.ErrForbidden)
	assert.Equal(t, int64(1), testutil.Count(t, e.db, &models.Post{}, ""))
	assert.Equal(t, int64(1), testutil.Count(t, e.db, &models.Like{}, ""))
	assert.Equal(t, int64(1), testutil.Count(t, e.db, &models.Comment{}, ""))
	assert.Equal(t, int64(2), e.notifications(t, ""))

	require.NoError(t, posts.DeletePost(ctx, "owner", "p1"))
	assert.Equal(t, int64(0), testutil.Count(t, e.db, &models.Post{}, ""))
	assert.Equal(t, int64(0), testutil.Count(t, e.db, &models.Like{}, ""))
	assert.Equal(t, int64(0), testutil.Count(t, e.db, &models.Comment{}, ""))
	assert.Equal(t, int64(0), e.notifications(t, ""))
}

func TestDeletePost_ErrorOrder(t *testing.T) {
	e := newEnv(t)
	testutil.CreateUser(t, e.db, "owner")
	testutil.CreatePost(t, e.db, "p1", "owner", "hello")
	svc := services.NewPostService(e.store, e.cfg)
	ctx := context.Background()

	assert.ErrorIs(t, svc.DeletePost(ctx, "", "missing"), services.ErrUnauthenticated)
	assert.ErrorIs(t, svc.DeletePost(ctx, "stranger", "missing"), services.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePost(ctx, "stranger", "p1"), services.ErrForbidden)
}
