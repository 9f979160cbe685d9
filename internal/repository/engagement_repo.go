package repository

import (
	"Pulseboard/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// EngagementTotals 一组事件的互动量汇总
type EngagementTotals struct {
	PostID      uint64
	EventCount  int64
	Likes       int64
	Comments    int64
	Shares      int64
	Clicks      int64
	Impressions int64
}

// WindowSummary 时间窗内的互动汇总，UniquePosts 为窗口内有事件的帖子数
type WindowSummary struct {
	UniquePosts int64
	Likes       int64
	Comments    int64
	Shares      int64
	Clicks      int64
	Impressions int64
}

type EngagementRepo interface {
	Append(ctx context.Context, event *model.EngagementEvent) error
	AppendBatch(ctx context.Context, events []*model.EngagementEvent) error
	// ListByUserSince 取用户 since 之后的全部事件，按 recorded_at 升序
	ListByUserSince(ctx context.Context, userID uint64, since time.Time) ([]*model.EngagementEvent, error)
	ListByPost(ctx context.Context, postID uint64) ([]*model.EngagementEvent, error)
	SumByPost(ctx context.Context, postID uint64) (*EngagementTotals, error)
	// TopPostTotals 按互动量（likes+comments+shares+clicks）取用户前 N 帖的汇总
	TopPostTotals(ctx context.Context, userID uint64, limit int) ([]*EngagementTotals, error)
	SummarizeWindow(ctx context.Context, userID uint64, from, to time.Time, platform string) (*WindowSummary, error)
	// PurgeBefore 删除 cutoff 之前的事件，返回删除行数
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db: db}
}

func (s *EngagementRepoImpl) Append(ctx context.Context, event *model.EngagementEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *EngagementRepoImpl) AppendBatch(ctx context.Context, events []*model.EngagementEvent) error {
	if len(events) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(events, 200).Error
}

func (s *EngagementRepoImpl) ListByUserSince(ctx context.Context, userID uint64, since time.Time) ([]*model.EngagementEvent, error) {
	events := make([]*model.EngagementEvent, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ?", userID, since).
		Order("recorded_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EngagementRepoImpl) ListByPost(ctx context.Context, postID uint64) ([]*model.EngagementEvent, error) {
	events := make([]*model.EngagementEvent, 0)
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("recorded_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *EngagementRepoImpl) SumByPost(ctx context.Context, postID uint64) (*EngagementTotals, error) {
	totals := &EngagementTotals{PostID: postID}
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Select("COUNT(*) AS event_count",
			"COALESCE(SUM(likes), 0) AS likes",
			"COALESCE(SUM(comments), 0) AS comments",
			"COALESCE(SUM(shares), 0) AS shares",
			"COALESCE(SUM(clicks), 0) AS clicks",
			"COALESCE(SUM(impressions), 0) AS impressions").
		Where("post_id = ?", postID).
		Scan(totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (s *EngagementRepoImpl) TopPostTotals(ctx context.Context, userID uint64, limit int) ([]*EngagementTotals, error) {
	totals := make([]*EngagementTotals, 0)
	err := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Select("post_id",
			"COUNT(*) AS event_count",
			"COALESCE(SUM(likes), 0) AS likes",
			"COALESCE(SUM(comments), 0) AS comments",
			"COALESCE(SUM(shares), 0) AS shares",
			"COALESCE(SUM(clicks), 0) AS clicks",
			"COALESCE(SUM(impressions), 0) AS impressions").
		Where("user_id = ?", userID).
		Group("post_id").
		Order("SUM(likes) + SUM(comments) + SUM(shares) + SUM(clicks) DESC").
		Limit(limit).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (s *EngagementRepoImpl) SummarizeWindow(ctx context.Context, userID uint64, from, to time.Time, platform string) (*WindowSummary, error) {
	db := s.db.WithContext(ctx).Model(&model.EngagementEvent{}).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at < ?", userID, from, to)
	if platform != "" && platform != "all" {
		db = db.Where("platform = ?", platform)
	}

	summary := &WindowSummary{}
	err := db.Select("COUNT(DISTINCT post_id) AS unique_posts",
		"COALESCE(SUM(likes), 0) AS likes",
		"COALESCE(SUM(comments), 0) AS comments",
		"COALESCE(SUM(shares), 0) AS shares",
		"COALESCE(SUM(clicks), 0) AS clicks",
		"COALESCE(SUM(impressions), 0) AS impressions").
		Scan(summary).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *EngagementRepoImpl) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Delete(&model.EngagementEvent{})
	return result.RowsAffected, result.Error
}
