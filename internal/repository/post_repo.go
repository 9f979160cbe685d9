package repository

import (
	"Pulseboard/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// PostQuery 帖子列表筛选条件，零值字段不参与过滤
type PostQuery struct {
	UserID    uint64
	Status    string
	Platform  string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string // created_at / scheduled_at
	SortOrder string // asc / desc
	Page      int
	Limit     int
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	ListPosts(ctx context.Context, query PostQuery) ([]*model.Post, int64, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	UpdatePostStatus(ctx context.Context, id uint64, status string, publishedAt *time.Time, failedReason *string) error
	DeletePost(ctx context.Context, id uint64) error
	// ListDuePosts 取所有已到发布时间的 scheduled 帖子
	ListDuePosts(ctx context.Context, now time.Time, limit int) ([]*model.Post, error)
	ListPublishedPosts(ctx context.Context, limit int) ([]*model.Post, error)
	// CountCreatedBetween 按创建时间统计用户发帖数，供总览对比
	CountCreatedBetween(ctx context.Context, userID uint64, start, end time.Time) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("is_deleted = 0").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Where("id IN ? AND is_deleted = 0", ids).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, query PostQuery) ([]*model.Post, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ? AND is_deleted = 0", query.UserID)

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.Platform != "" {
		db = db.Where("platform = ?", query.Platform)
	}
	if query.StartDate != nil {
		db = db.Where("created_at >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		db = db.Where("created_at <= ?", *query.EndDate)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := query.SortBy
	if sortBy != "created_at" && sortBy != "scheduled_at" {
		sortBy = "created_at"
	}
	order := "DESC"
	if query.SortOrder == "asc" {
		order = "ASC"
	}

	posts := make([]*model.Post, 0)
	err := db.Order(sortBy + " " + order).
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", post.ID).Updates(post).Error
}

func (s *PostRepoImpl) UpdatePostStatus(ctx context.Context, id uint64, status string, publishedAt *time.Time, failedReason *string) error {
	updates := map[string]interface{}{
		"status":        status,
		"published_at":  publishedAt,
		"failed_reason": failedReason,
	}
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(updates).Error
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("is_deleted", true).Error
}

func (s *PostRepoImpl) ListDuePosts(ctx context.Context, now time.Time, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ? AND is_deleted = 0", "scheduled", now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) ListPublishedPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("status = ? AND is_deleted = 0", "published").
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) CountCreatedBetween(ctx context.Context, userID uint64, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ? AND is_deleted = 0", userID, start, end).
		Count(&count).Error
	return count, err
}
