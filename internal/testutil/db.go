// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anonto42/nano-midea/interactions/internal/models"
	"github.com/anonto42/nano-midea/interactions/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
// SQLite allows a single writer, so the pool is limited to one connection.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// NewStore returns a GormStore over a fresh NewDB.
func NewStore(t *testing.T) (*repositories.GormStore, *gorm.DB) {
	t.Helper()
	db := NewDB(t)
	return repositories.NewGormStore(db), db
}

// CreateUser inserts a user with the given id.
func CreateUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Username: id, Name: "User " + id}
	require.NoError(t, db.WithContext(context.Background()).Create(&user).Error)
	return user
}

// CreatePost inserts a post owned by authorID.
func CreatePost(t *testing.T, db *gorm.DB, id, authorID, content string) models.Post {
	t.Helper()
	post := models.Post{ID: id, AuthorID: authorID, Content: content}
	require.NoError(t, db.Create(&post).Error)
	return post
}

// Count returns the number of rows of model matching the optional condition.
func Count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
