// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Group is a topic collection that posts may optionally belong to.
// Groups can only be created, never edited or removed, through the API;
// removal happens out-of-band and leaves the group's posts in place.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"unique;not null;index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Posts       []Post    `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}
