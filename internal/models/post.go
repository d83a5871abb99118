// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxPostTextLen bounds the length of post and comment text.
const MaxPostTextLen = 200

// Post represents a published entry in the Scribe application.
// Posts are hard-deleted: removal cascades to the post's comments,
// while removing the post's group only clears the group reference.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID  *uint  `gorm:"index" json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
