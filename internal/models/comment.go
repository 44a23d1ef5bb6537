package models

import "time"

type Comment struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	UserID          int       `gorm:"not null" json:"user_id"`
	User            User      `gorm:"foreignKey:UserID" json:"-"`
	QuipID          int       `gorm:"not null;index" json:"quip_id"`
	ParentCommentID *int      `gorm:"index" json:"parent_comment_id,omitempty"`
	Content         string    `gorm:"not null" json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int   `json:"parent_id"`
}
