// Package seed populates a development database with realistic fake data.
package seed

import (
	"fmt"
	"log"
	"strings"

	"scribe/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	userCount    = 12
	groupCount   = 5
	postsPerUser = 6
	// Every seeded account shares this password for local testing.
	devPassword = "Development-Pass-123"
)

// Run fills the database with fake users, groups, posts, comments and follow
// edges. It is idempotent at the whole-run level: an already-seeded database
// is left untouched.
func Run(db *gorm.DB) error {
	var existing int64
	if err := db.Model(&models.User{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if existing > 0 {
		log.Println("Database already seeded, skipping")
		return nil
	}

	gofakeit.Seed(0)

	hash, err := bcrypt.GenerateFromPassword([]byte(devPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed password hash: %w", err)
	}

	users := make([]*models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		users = append(users, &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hash),
			Bio:      gofakeit.Sentence(8),
			Avatar:   gofakeit.ImageURL(128, 128),
		})
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	groups := make([]*models.Group, 0, groupCount)
	for i := 0; i < groupCount; i++ {
		title := gofakeit.BookGenre() + " " + gofakeit.NounAbstract()
		groups = append(groups, &models.Group{
			Title:       title,
			Slug:        fmt.Sprintf("%s-%d", slugify(title), i),
			Description: gofakeit.Paragraph(1, 2, 10, " "),
		})
	}
	if err := db.Create(&groups).Error; err != nil {
		return fmt.Errorf("seed groups: %w", err)
	}

	posts := make([]*models.Post, 0, userCount*postsPerUser)
	for _, user := range users {
		for i := 0; i < postsPerUser; i++ {
			post := &models.Post{
				Text:     truncate(gofakeit.Sentence(12), models.MaxPostTextLen),
				AuthorID: user.ID,
			}
			// Roughly two thirds of posts belong to a group.
			if gofakeit.Number(0, 2) > 0 {
				group := groups[gofakeit.Number(0, len(groups)-1)]
				post.GroupID = &group.ID
			}
			if gofakeit.Bool() {
				post.ImageURL = gofakeit.ImageURL(640, 480)
			}
			posts = append(posts, post)
		}
	}
	if err := db.Create(&posts).Error; err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}

	comments := make([]*models.Comment, 0, len(posts)*2)
	for _, post := range posts {
		for i := 0; i < gofakeit.Number(0, 3); i++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			comments = append(comments, &models.Comment{
				Text:     truncate(gofakeit.Sentence(8), models.MaxPostTextLen),
				AuthorID: &author.ID,
				PostID:   post.ID,
			})
		}
	}
	if len(comments) > 0 {
		if err := db.Create(&comments).Error; err != nil {
			return fmt.Errorf("seed comments: %w", err)
		}
	}

	follows := make([]*models.Follow, 0, userCount*3)
	for _, user := range users {
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			if author.ID == user.ID {
				continue
			}
			follows = append(follows, &models.Follow{
				UserID:   user.ID,
				AuthorID: author.ID,
			})
		}
	}
	if len(follows) > 0 {
		// Random pairs can collide with the unique edge index.
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&follows).Error; err != nil {
			return fmt.Errorf("seed follows: %w", err)
		}
	}

	log.Printf("Seeded %d users, %d groups, %d posts, %d comments, %d follows",
		len(users), len(groups), len(posts), len(comments), len(follows))
	return nil
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, s)
	return strings.Trim(s, "-")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
