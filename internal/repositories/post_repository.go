package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows ListPostsWithDetails. A nil IDs slice means "no ID
// filter"; an empty non-nil slice matches nothing.
type PostFilter struct {
	AuthorID string
	IDs      []string
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []string) (map[string]models.Post, error)
	// ListPostsWithDetails returns posts newest first with Author, Likes,
	// Comments (newest first) and each comment's Author loaded.
	ListPostsWithDetails(ctx context.Context, filter PostFilter) ([]models.Post, error)
	// DeletePostCascade removes the post and every like, comment and
	// notification that references it. Call it inside Store.Transaction.
	DeletePostCascade(ctx context.Context, id string) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", translate(err))
	}
	return nil
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, translate(err))
	}
	return &post, nil
}

// GetPostsByIDs loads every listed post without relations, keyed by ID.
func (r *PostgresPostRepository) GetPostsByIDs(ctx context.Context, ids []string) (map[string]models.Post, error) {
	result := make(map[string]models.Post, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var posts []models.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("get posts: %w", translate(err))
	}
	for _, p := range posts {
		result[p.ID] = p
	}
	return result, nil
}

func (r *PostgresPostRepository) ListPostsWithDetails(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []models.Post{}, nil
	}

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.created_at DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC").Order("comments.id DESC")
		}).
		Preload("Comments.Author")
	if filter.AuthorID != "" {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.IDs != nil {
		q = q.Where("posts.id IN ?", filter.IDs)
	}

	var posts []models.Post
	if err := q.Order("posts.created_at DESC").Order("posts.id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", translate(err))
	}
	return posts, nil
}

func (r *PostgresPostRepository) DeletePostCascade(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("post_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
		return fmt.Errorf("delete notifications of post %s: %w", id, translate(err))
	}
	if err := db.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return fmt.Errorf("delete likes of post %s: %w", id, translate(err))
	}
	if err := db.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of post %s: %w", id, translate(err))
	}

	res := db.Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return fmt.Errorf("delete post %s: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete post %s: %w", id, ErrNotFound)
	}
	return nil
}
