package repositories

import (
	"context"
	"database/sql"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"gorm.io/gorm"
)

// Store is the entity store the services run against. Repositories obtained
// from the Store passed to a Transaction callback share that transaction.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Likes() LikeRepository
	Comments() CommentRepository
	Notifications() NotificationRepository
	Follows() FollowRepository

	// Transaction runs fn atomically. A non-nil error from fn, a panic, or a
	// failed commit rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// ReadTransaction runs fn in a transaction used only for reads, so that
	// multi-query aggregations observe one consistent state.
	ReadTransaction(ctx context.Context, fn func(tx Store) error) error
}

// StoreOption customises a GormStore.
type StoreOption func(*GormStore)

// WithSnapshotReads makes ReadTransaction use REPEATABLE READ, read-only
// transactions. Only meaningful on PostgreSQL.
func WithSnapshotReads() StoreOption {
	return func(s *GormStore) {
		s.readOpts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
}

// GormStore implements Store on top of a *gorm.DB.
type GormStore struct {
	db       *gorm.DB
	readOpts *sql.TxOptions
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB, opts ...StoreOption) *GormStore {
	s := &GormStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GormStore) Users() UserRepository { return NewPostgresUserRepository(s.db) }

func (s *GormStore) Posts() PostRepository { return NewPostgresPostRepository(s.db) }

func (s *GormStore) Likes() LikeRepository { return NewPostgresLikeRepository(s.db) }

func (s *GormStore) Comments() CommentRepository { return NewPostgresCommentRepository(s.db) }

func (s *GormStore) Notifications() NotificationRepository {
	return NewPostgresNotificationRepository(s.db)
}

func (s *GormStore) Follows() FollowRepository { return NewPostgresFollowRepository(s.db) }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, readOpts: s.readOpts})
	})
	return translate(err)
}

func (s *GormStore) ReadTransaction(ctx context.Context, fn func(tx Store) error) error {
	wrapped := func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, readOpts: s.readOpts})
	}
	var err error
	if s.readOpts != nil {
		err = s.db.WithContext(ctx).Transaction(wrapped, s.readOpts)
	} else {
		err = s.db.WithContext(ctx).Transaction(wrapped)
	}
	return translate(err)
}

// AutoMigrate creates or updates the tables the store needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Follow{},
	)
}
