package models

import "time"

// Definition and usage examples are nullable so responses can tell "unset"
// apart from an empty string.
type Quip struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	UserID        int       `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"-"`
	Content       string    `gorm:"not null" json:"content"`
	Definition    *string   `json:"definition"`
	UsageExamples *string   `json:"usage_examples"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

type CreateQuipRequest struct {
	Content       string `json:"content" binding:"required"`
	Definition    string `json:"definition"`
	UsageExamples string `json:"usage_examples"`
}
