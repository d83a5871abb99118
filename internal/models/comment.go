// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a reply on a post. The author reference is nullable:
// when a user account is removed, comments they left on other authors'
// posts survive with a cleared author rather than disappearing.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  *uint     `gorm:"index" json:"author_id,omitempty"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
