package model

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	ID           uint64                      `gorm:"primaryKey"`
	UserID       uint64                      `gorm:"not null;index:idx_user_id" json:"user_id"`
	Content      string                      `gorm:"type:text;not null" json:"content"`
	Platform     string                      `gorm:"type:varchar(20);not null;index:idx_platform" json:"platform"`
	Status       string                      `gorm:"type:varchar(20);not null;default:'draft';index:idx_status" json:"status"` // draft/scheduled/published/failed
	ScheduledAt  *time.Time                  `gorm:"index:idx_scheduled_at" json:"scheduled_at"`
	PublishedAt  *time.Time                  `json:"published_at"`
	Hashtags     datatypes.JSONSlice[string] `gorm:"type:json" json:"hashtags"`
	MediaURLs    datatypes.JSONSlice[string] `gorm:"type:json" json:"media_urls"`
	WordCount    int                         `gorm:"not null;default:0" json:"word_count"`
	FailedReason *string                     `gorm:"type:varchar(255)" json:"failed_reason"`
	IsDeleted    bool                        `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`

	// 关联关系
	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
