package model

import (
	"time"
)

// EngagementEvent 互动事件快照，只追加不修改。
// HourOfDay / DayOfWeek 在写入时按 UTC 预计算（周日为 0），供聚合直接分组
type EngagementEvent struct {
	ID          uint64    `gorm:"primaryKey"`
	PostID      uint64    `gorm:"not null;index:idx_post_id" json:"post_id"`
	UserID      uint64    `gorm:"not null;index:idx_user_recorded,priority:1" json:"user_id"`
	Platform    string    `gorm:"type:varchar(20);not null" json:"platform"`
	Likes       int64     `gorm:"not null;default:0" json:"likes"`
	Comments    int64     `gorm:"not null;default:0" json:"comments"`
	Shares      int64     `gorm:"not null;default:0" json:"shares"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	Impressions int64     `gorm:"not null;default:0" json:"impressions"`
	HourOfDay   int8      `gorm:"not null" json:"hour_of_day"`
	DayOfWeek   int8      `gorm:"not null" json:"day_of_week"`
	RecordedAt  time.Time `gorm:"not null;index:idx_user_recorded,priority:2" json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (EngagementEvent) TableName() string {
	return "engagement_events"
}

// NewEngagementEvent 构造事件并填充 UTC 时间桶
func NewEngagementEvent(postID, userID uint64, platform string, likes, comments, shares, clicks, impressions int64, recordedAt time.Time) *EngagementEvent {
	utc := recordedAt.UTC()
	return &EngagementEvent{
		PostID:      postID,
		UserID:      userID,
		Platform:    platform,
		Likes:       likes,
		Comments:    comments,
		Shares:      shares,
		Clicks:      clicks,
		Impressions: impressions,
		HourOfDay:   int8(utc.Hour()),
		DayOfWeek:   int8(utc.Weekday()),
		RecordedAt:  utc,
	}
}
