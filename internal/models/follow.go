// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Follow is a directed edge meaning "user follows author": the author's
// posts appear in the user's follow feed. The composite unique index keeps
// duplicate edges from inflating feed results.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follow_edge" json:"user_id"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"author_id"`

	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
