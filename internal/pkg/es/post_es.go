package es

import "time"

// PostES 写入 ES 的帖子文档，用于内容全文检索
type PostES struct {
	ID          uint64     `json:"id"`
	UserID      uint64     `json:"user_id"`
	Content     string     `json:"content"`
	Platform    string     `json:"platform"`
	Status      string     `json:"status"`
	Hashtags    []string   `json:"hashtags"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
