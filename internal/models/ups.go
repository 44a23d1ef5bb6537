package models

import "time"

// QuipUp records a single user's upvote on a quip. The composite primary
// key is the idempotency guard: at most one row per (user, quip) pair.
type QuipUp struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	QuipID    int       `gorm:"primaryKey;autoIncrement:false" json:"quip_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentUp is the comment counterpart of QuipUp.
type CommentUp struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CommentID int       `gorm:"primaryKey;autoIncrement:false" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}
