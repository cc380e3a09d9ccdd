package handlers_test

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/nano-midea/interactions/internal/handlers"
	"github.com/anonto42/nano-midea/interactions/internal/middleware"
	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/services"
	"github.com/anonto42/nano-midea/interactions/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostService is a mock implementation of handlers.PostService
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID, content string, imageRef *string) (*models.Post, error) {
	args := m.Called(ctx, authorID, content, imageRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPosts(ctx context.Context) (iter.Seq[services.PostView], error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq[services.PostView]), args.Error(1)
}

func (m *MockPostService) ListPostsByAuthor(ctx context.Context, authorID string) (iter.Seq[services.PostView], error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq[services.PostView]), args.Error(1)
}

func (m *MockPostService) ListLikedPosts(ctx context.Context, userID string) (iter.Seq[services.PostView], error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq[services.PostView]), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, actorID, postID string) error {
	args := m.Called(ctx, actorID, postID)
	return args.Error(0)
}

// MockLikeService is a mock implementation of handlers.LikeService
type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) ToggleLike(ctx context.Context, actorID, postID string) (services.LikeResult, error) {
	args := m.Called(ctx, actorID, postID)
	return args.Get(0).(services.LikeResult), args.Error(1)
}

// MockCommentService is a mock implementation of handlers.CommentService
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(ctx context.Context, actorID, postID, body string) (*models.Comment, error) {
	args := m.Called(ctx, actorID, postID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

// MockNotificationService is a mock implementation of handlers.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string) (iter.Seq[services.NotificationView], error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq[services.NotificationView]), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	args := m.Called(ctx, userID, ids)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFollowService is a mock implementation of handlers.FollowService
type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) ToggleFollow(ctx context.Context, actorID, targetID string) (services.FollowResult, error) {
	args := m.Called(ctx, actorID, targetID)
	return args.Get(0).(services.FollowResult), args.Error(1)
}

func (m *MockFollowService) Stats(ctx context.Context, viewerID, targetID string) (services.FollowStats, error) {
	args := m.Called(ctx, viewerID, targetID)
	return args.Get(0).(services.FollowStats), args.Error(1)
}

// recordingInvalidator remembers every key it was asked to bump.
type recordingInvalidator struct {
	mu   sync.Mutex
	keys []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, keys...)
	return nil
}

func (r *recordingInvalidator) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.keys)
}

// headerResolver trusts the X-User-ID header.
type headerResolver struct{}

func (headerResolver) Resolve(_ context.Context, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-ID")
	return id, id != ""
}

func newServer(register func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	api := e.Group("/api/v1")
	api.Use(middleware.Identity(headerResolver{}))
	register(api)
	return e
}

func do(e *echo.Echo, method, path, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func kindError(kind error) error {
	return &services.Error{Op: "Test", Kind: kind, Err: errors.New("detail")}
}

func TestToggleLike_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", kindError(services.ErrUnauthenticated), http.StatusUnauthorized},
		{"not found", kindError(services.ErrNotFound), http.StatusNotFound},
		{"forbidden", kindError(services.ErrForbidden), http.StatusForbidden},
		{"invalid argument", kindError(services.ErrInvalidArgument), http.StatusBadRequest},
		{"conflict", kindError(services.ErrConflict), http.StatusConflict},
		{"store unavailable", kindError(services.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likes := new(MockLikeService)
			likes.On("ToggleLike", mock.Anything, "u1", "p1").Return(services.LikeResult{}, tt.err)
			inv := &recordingInvalidator{}
			e := newServer(handlers.NewLikeHandler(likes, inv).RegisterLikeRoutes)

			rec := do(e, http.MethodPost, "/api/v1/posts/p1/like", "u1", "")
			assert.Equal(t, tt.want, rec.Code)
			assert.Never(t, func() bool { return len(inv.Keys()) > 0 }, 50*time.Millisecond, 10*time.Millisecond)
			likes.AssertExpectations(t)
		})
	}
}

func TestToggleLike_SuccessInvalidatesFeed(t *testing.T) {
	likes := new(MockLikeService)
	likes.On("ToggleLike", mock.Anything, "u1", "p1").Return(services.LikeResult{Liked: true}, nil)
	inv := &recordingInvalidator{}
	e := newServer(handlers.NewLikeHandler(likes, inv).RegisterLikeRoutes)

	rec := do(e, http.MethodPost, "/api/v1/posts/p1/like", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"liked":true}}`, rec.Body.String())
	assert.Eventually(t, func() bool {
		return slices.Contains(inv.Keys(), handlers.ViewFeed)
	}, time.Second, 10*time.Millisecond)
}

func TestToggleLike_PassesEmptyIdentity(t *testing.T) {
	likes := new(MockLikeService)
	likes.On("ToggleLike", mock.Anything, "", "p1").Return(services.LikeResult{}, kindError(services.ErrUnauthenticated))
	e := newServer(handlers.NewLikeHandler(likes, &recordingInvalidator{}).RegisterLikeRoutes)

	rec := do(e, http.MethodPost, "/api/v1/posts/p1/like", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	likes.AssertExpectations(t)
}

func TestCreatePost(t *testing.T) {
	posts := new(MockPostService)
	created := &models.Post{ID: "p1", AuthorID: "u1", Content: "hello"}
	posts.On("CreatePost", mock.Anything, "u1", "hello", (*string)(nil)).Return(created, nil)
	inv := &recordingInvalidator{}
	e := newServer(handlers.NewPostHandler(posts, inv).RegisterPostRoutes)

	rec := do(e, http.MethodPost, "/api/v1/posts", "u1", `{"content":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"p1"`)
	assert.Eventually(t, func() bool {
		keys := inv.Keys()
		return slices.Contains(keys, handlers.ViewFeed) && slices.Contains(keys, handlers.ViewProfile("u1"))
	}, time.Second, 10*time.Millisecond)

	rec = do(e, http.MethodPost, "/api/v1/posts", "u1", `{"content":"`+strings.Repeat("x", 2001)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	posts.AssertNumberOfCalls(t, "CreatePost", 1)
}

func TestGetPosts(t *testing.T) {
	posts := new(MockPostService)
	views := []services.PostView{{Post: models.Post{ID: "p2"}}, {Post: models.Post{ID: "p1"}}}
	posts.On("ListPosts", mock.Anything).Return(slices.Values(views), nil).Once()
	posts.On("ListPosts", mock.Anything).Return(nil, kindError(services.ErrStoreUnavailable)).Once()
	e := newServer(handlers.NewPostHandler(posts, &recordingInvalidator{}).RegisterPostRoutes)

	rec := do(e, http.MethodGet, "/api/v1/posts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `"p2"`), strings.Index(body, `"p1"`))

	rec = do(e, http.MethodGet, "/api/v1/posts", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDeletePost(t *testing.T) {
	posts := new(MockPostService)
	posts.On("DeletePost", mock.Anything, "u2", "p1").Return(kindError(services.ErrForbidden))
	posts.On("DeletePost", mock.Anything, "u1", "p1").Return(nil)
	inv := &recordingInvalidator{}
	e := newServer(handlers.NewPostHandler(posts, inv).RegisterPostRoutes)

	rec := do(e, http.MethodDelete, "/api/v1/posts/p1", "u2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(e, http.MethodDelete, "/api/v1/posts/p1", "u1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Eventually(t, func() bool {
		return slices.Contains(inv.Keys(), handlers.ViewFeed)
	}, time.Second, 10*time.Millisecond)
	posts.AssertExpectations(t)
}

func TestCreateComment(t *testing.T) {
	comments := new(MockCommentService)
	comments.On("CreateComment", mock.Anything, "u2", "p1", "hi").Return(&models.Comment{ID: "c1", Body: "hi"}, nil)
	comments.On("CreateComment", mock.Anything, "u2", "p1", "  ").Return(nil, kindError(services.ErrInvalidArgument))
	e := newServer(handlers.NewCommentHandler(comments, &recordingInvalidator{}).RegisterCommentRoutes)

	rec := do(e, http.MethodPost, "/api/v1/posts/p1/comments", "u2", `{"body":"hi"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"c1"`)

	rec = do(e, http.MethodPost, "/api/v1/posts/p1/comments", "u2", `{"body":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/posts/p1/comments", "u2", `{"body":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	comments.AssertExpectations(t)
}

func TestNotifications(t *testing.T) {
	notifications := new(MockNotificationService)
	views := []services.NotificationView{{Notification: models.Notification{ID: "n1", Kind: models.NotificationLike}}}
	notifications.On("ListNotifications", mock.Anything, "u1").Return(slices.Values(views), nil)
	notifications.On("UnreadCount", mock.Anything, "u1").Return(int64(1), nil)
	notifications.On("MarkRead", mock.Anything, "u1", []string{"n1", "n2"}).Return(nil)
	notifications.On("MarkAllRead", mock.Anything, "u1").Return(int64(1), nil)
	inv := &recordingInvalidator{}
	e := newServer(handlers.NewNotificationHandler(notifications, inv).RegisterNotificationRoutes)

	rec := do(e, http.MethodGet, "/api/v1/notifications", "u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"LIKE"`)

	rec = do(e, http.MethodGet, "/api/v1/notifications/unread-count", "u1", "")
	assert.JSONEq(t, `{"success":true,"data":{"count":1}}`, rec.Body.String())

	rec = do(e, http.MethodPut, "/api/v1/notifications/read", "u1", `{"ids":["n1","n2"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPut, "/api/v1/notifications/read-all", "u1", "")
	assert.JSONEq(t, `{"success":true,"data":{"updated":1}}`, rec.Body.String())

	assert.Eventually(t, func() bool {
		return slices.Contains(inv.Keys(), handlers.ViewNotifications("u1"))
	}, time.Second, 10*time.Millisecond)
	notifications.AssertExpectations(t)
}

func TestFollow(t *testing.T) {
	follows := new(MockFollowService)
	follows.On("ToggleFollow", mock.Anything, "u1", "u2").Return(services.FollowResult{Following: true}, nil)
	follows.On("ToggleFollow", mock.Anything, "u1", "u1").Return(services.FollowResult{}, kindError(services.ErrInvalidArgument))
	follows.On("Stats", mock.Anything, "u1", "u2").Return(services.FollowStats{Following: true, FollowersCount: 1}, nil)
	e := newServer(handlers.NewFollowHandler(follows, &recordingInvalidator{}).RegisterFollowRoutes)

	rec := do(e, http.MethodPost, "/api/v1/users/u2/follow", "u1", "")
	assert.JSONEq(t, `{"success":true,"data":{"following":true}}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/v1/users/u1/follow", "u1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/users/u2/follow", "u1", "")
	assert.JSONEq(t, `{"success":true,"data":{"following":true,"followers_count":1,"following_count":0}}`, rec.Body.String())
	follows.AssertExpectations(t)
}

func TestProfileLists(t *testing.T) {
	posts := new(MockPostService)
	posts.On("ListPostsByAuthor", mock.Anything, "u1").Return(slices.Values([]services.PostView{}), nil)
	posts.On("ListLikedPosts", mock.Anything, "ghost").Return(nil, kindError(services.ErrNotFound))
	e := newServer(handlers.NewUserHandler(posts).RegisterProfileRoutes)

	rec := do(e, http.MethodGet, "/api/v1/users/u1/posts", "", "")
	assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/users/ghost/likes", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeVersions map[string]int64

func (f fakeVersions) Version(_ context.Context, key string) (int64, error) {
	if key == "broken" {
		return 0, errors.New("mongo down")
	}
	return f[key], nil
}

func TestGetViewVersion(t *testing.T) {
	e := newServer(handlers.NewFeedHandler(fakeVersions{"feed": 3}).RegisterFeedRoutes)

	rec := do(e, http.MethodGet, "/api/v1/views/feed/version", "", "")
	assert.JSONEq(t, `{"success":true,"data":{"key":"feed","version":3}}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/views/broken/version", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	e.GET("/health", handlers.HealthCheck)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
