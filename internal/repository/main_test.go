package repository

import (
	"testing"
	"time"

	"scribe/internal/database"
	"scribe/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database with the full schema. The
// package-level Redis client stays nil, so cached readers fall through to
// the database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()

	group := &models.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "test group",
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, text string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return post
}
