// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/repositories"
)

// OpenDB opens a migrated SQLite database in a temp dir.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := repositories.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user named name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		Username:    name,
		DisplayName: name,
		Email:       fmt.Sprintf("%s@example.com", name),
	}
	if err := repositories.NewPostgresUserRepository(db).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// CreateContent inserts a text post by authorID.
func CreateContent(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Content {
	t.Helper()

	content := &models.Content{AuthorID: authorID, Kind: models.KindText, Title: title}
	if err := repositories.NewPostgresContentRepository(db).CreateContent(context.Background(), content); err != nil {
		t.Fatalf("create content %s: %v", title, err)
	}
	return content
}

// Follow makes followerID follow followedID.
func Follow(t *testing.T, db *gorm.DB, followerID, followedID uint) {
	t.Helper()

	if _, err := repositories.NewPostgresFollowRepository(db).CreateFollow(context.Background(), followerID, followedID); err != nil {
		t.Fatalf("follow %d -> %d: %v", followerID, followedID, err)
	}
}
