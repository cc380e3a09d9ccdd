package services

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
)

// PostService creates, lists and deletes posts.
type PostService struct {
	store repositories.Store
	cfg   Config
}

// NewPostService creates a new PostService
func NewPostService(store repositories.Store, cfg Config) *PostService {
	return &PostService{store: store, cfg: cfg.withDefaults()}
}

// CreatePost stores a new post owned by authorID. A post needs text, an
// image, or both.
func (s *PostService) CreatePost(ctx context.Context, authorID, content string, imageRef *string) (*models.Post, error) {
	const op = "CreatePost"
	if authorID == "" {
		return nil, newError(op, ErrUnauthenticated, nil)
	}
	if imageRef != nil && strings.TrimSpace(*imageRef) == "" {
		imageRef = nil
	}
	if strings.TrimSpace(content) == "" && imageRef == nil {
		return nil, newError(op, ErrInvalidArgument, errEmptyPost)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	post := &models.Post{
		AuthorID:  authorID,
		Content:   content,
		ImageRef:  imageRef,
		CreatedAt: s.cfg.Now(),
	}
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		return tx.Posts().CreatePost(ctx, post)
	})
	if err != nil {
		return nil, storeError(op, err)
	}
	return post, nil
}

// ListPosts returns every post, newest first, with author, comments, likers
// and counts. Either the whole aggregation succeeds or the call fails.
func (s *PostService) ListPosts(ctx context.Context) (iter.Seq[PostView], error) {
	return s.list(ctx, "ListPosts", func(ctx context.Context, tx repositories.Store) (repositories.PostFilter, error) {
		return repositories.PostFilter{}, nil
	})
}

// ListPostsByAuthor is ListPosts restricted to one author's posts.
func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID string) (iter.Seq[PostView], error) {
	return s.list(ctx, "ListPostsByAuthor", func(ctx context.Context, tx repositories.Store) (repositories.PostFilter, error) {
		if _, err := tx.Users().GetUserByID(ctx, authorID); err != nil {
			return repositories.PostFilter{}, err
		}
		return repositories.PostFilter{AuthorID: authorID}, nil
	})
}

// ListLikedPosts is ListPosts restricted to the posts userID currently likes.
func (s *PostService) ListLikedPosts(ctx context.Context, userID string) (iter.Seq[PostView], error) {
	return s.list(ctx, "ListLikedPosts", func(ctx context.Context, tx repositories.Store) (repositories.PostFilter, error) {
		if _, err := tx.Users().GetUserByID(ctx, userID); err != nil {
			return repositories.PostFilter{}, err
		}
		ids, err := tx.Likes().GetLikedPostIDs(ctx, userID)
		if err != nil {
			return repositories.PostFilter{}, err
		}
		if ids == nil {
			ids = []string{}
		}
		return repositories.PostFilter{IDs: ids}, nil
	})
}

func (s *PostService) list(ctx context.Context, op string, filterFn func(ctx context.Context, tx repositories.Store) (repositories.PostFilter, error)) (iter.Seq[PostView], error) {
	storeCtx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	var posts []models.Post
	err := s.store.ReadTransaction(storeCtx, func(tx repositories.Store) error {
		filter, err := filterFn(storeCtx, tx)
		if err != nil {
			return err
		}
		posts, err = tx.Posts().ListPostsWithDetails(storeCtx, filter)
		return err
	})
	if err != nil {
		return nil, storeError(op, err)
	}

	views := make([]PostView, len(posts))
	for i, p := range posts {
		views[i] = newPostView(p)
	}
	return slices.Values(views), nil
}

// DeletePost removes a post together with its likes, comments and
// notifications. Only the author may delete a post.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID string) error {
	const op = "DeletePost"
	if actorID == "" {
		return newError(op, ErrUnauthenticated, nil)
	}

	ctx, cancel := s.cfg.storeContext(ctx)
	defer cancel()

	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		post, err := tx.Posts().GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := authorizeOwner(op, actorID, post.AuthorID); err != nil {
			return err
		}
		return tx.Posts().DeletePostCascade(ctx, postID)
	})
	if err != nil {
		return storeError(op, err)
	}
	return nil
}
