package service

import (
	"testing"
	"time"

	"scribe/internal/database"
	"scribe/internal/models"
	"scribe/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testRepos struct {
	users    repository.UserRepository
	groups   repository.GroupRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	follows  repository.FollowRepository
}

// setupTestDB opens an in-memory database and builds the repository set the
// services run on. Redis stays uninitialized, so cached paths fall through
// to the database unless a test installs a client explicitly.
func setupTestDB(t *testing.T) (*gorm.DB, testRepos) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db, testRepos{
		users:    repository.NewUserRepository(db),
		groups:   repository.NewGroupRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		follows:  repository.NewFollowRepository(db),
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
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

func createGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()

	group := &models.Group{Title: "Group " + slug, Slug: slug}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func createPost(t *testing.T, db *gorm.DB, authorID uint, text string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{Text: text, AuthorID: authorID, CreatedAt: createdAt}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return post
}
