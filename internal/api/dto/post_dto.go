package dto

import "time"

type CreatePostDTO struct {
	Content     string     `json:"content" validate:"required,min=1,max=1000"`
	Platform    string     `json:"platform" validate:"required"`
	Status      string     `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	MediaURLs   []string   `json:"media_urls,omitempty" validate:"max=9"`
}

type UpdatePostDTO struct {
	Content     *string    `json:"content,omitempty" validate:"omitempty,min=1,max=1000"`
	Platform    *string    `json:"platform,omitempty"`
	Status      *string    `json:"status,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	MediaURLs   []string   `json:"media_urls,omitempty" validate:"max=9"`
}

type PostDTO struct {
	ID           uint64     `json:"id"`
	UserID       uint64     `json:"user_id"`
	Content      string     `json:"content"`
	Platform     string     `json:"platform"`
	Status       string     `json:"status"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	PublishedAt  *time.Time `json:"published_at"`
	Hashtags     []string   `json:"hashtags"`
	MediaURLs    []string   `json:"media_urls"`
	WordCount    int        `json:"word_count"`
	FailedReason *string    `json:"failed_reason,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
