package models

import "time"

// Repost records a user re-sharing another user's quip, once per
// (user, quip) pair.
type Repost struct {
	UserID    int       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	QuipID    int       `gorm:"primaryKey;autoIncrement:false" json:"quip_id"`
	CreatedAt time.Time `json:"created_at"`
}
