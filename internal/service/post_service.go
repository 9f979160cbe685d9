package service

import (
	"Pulseboard/internal/api/dto"
	"Pulseboard/internal/model"
	"Pulseboard/internal/pkg/consts"
	"Pulseboard/internal/pkg/es"
	"Pulseboard/internal/pkg/util"
	"Pulseboard/internal/repository"
	"context"
	log "log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/datatypes"
)

// PostListQuery 列表查询参数，handler 解析后传入
type PostListQuery struct {
	Page      int
	Limit     int
	Status    string
	Platform  string
	StartDate *time.Time
	EndDate   *time.Time
	Sort      string // 字段名，前缀 "-" 表示倒序
	Search    string
}

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, postDTO *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, userID uint64, roles []string, postID uint64) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, userID uint64, query PostListQuery) (*dto.PageDTO, error)
	UpdatePost(ctx context.Context, userID uint64, roles []string, postID uint64, postDTO *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, roles []string, postID uint64) error
}

type postServiceImpl struct {
	postDBRepo repository.PostRepo
	postESRepo es.PostRepo
}

func NewPostService(postDBRepo repository.PostRepo, postESRepo es.PostRepo) PostService {
	return &postServiceImpl{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, postDTO *dto.CreatePostDTO) (*dto.PostDTO, error) {
	if !consts.IsValidPlatform(postDTO.Platform) || postDTO.Platform == consts.PlatformAll {
		return nil, ErrPlatformInvalid
	}

	status := postDTO.Status
	if status == "" {
		status = consts.PostStatusDraft
	}
	if !consts.IsValidPostStatus(status) || status == consts.PostStatusFailed {
		return nil, ErrPostStatusInvalid
	}
	if status == consts.PostStatusScheduled && postDTO.ScheduledAt == nil {
		return nil, ErrScheduleTimeRequired
	}

	post := &model.Post{
		UserID:      userID,
		Content:     postDTO.Content,
		Platform:    postDTO.Platform,
		Status:      status,
		ScheduledAt: postDTO.ScheduledAt,
		Hashtags:    datatypes.NewJSONSlice(util.ExtractHashtags(postDTO.Content)),
		MediaURLs:   datatypes.NewJSONSlice(postDTO.MediaURLs),
		WordCount:   util.CountWords(postDTO.Content),
	}
	// 直接以 published 创建时立即生效
	if status == consts.PostStatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.postDBRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.indexPost(ctx, post)
	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, userID uint64, roles []string, postID uint64) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, roles, postID)
	if err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, userID uint64, query PostListQuery) (*dto.PageDTO, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	// 有关键词时走 ES 检索，再回表补全
	if query.Search != "" {
		return s.searchPosts(ctx, userID, query.Search, page, limit)
	}

	if query.Status != "" && !consts.IsValidPostStatus(query.Status) {
		return nil, ErrPostStatusInvalid
	}
	if query.Platform != "" && query.Platform != consts.PlatformAll && !consts.IsValidPlatform(query.Platform) {
		return nil, ErrPlatformInvalid
	}

	sortBy := query.Sort
	sortOrder := "desc"
	if strings.HasPrefix(sortBy, "-") {
		sortBy = sortBy[1:]
	} else if sortBy != "" {
		sortOrder = "asc"
	}

	platform := query.Platform
	if platform == consts.PlatformAll {
		platform = ""
	}

	posts, total, err := s.postDBRepo.ListPosts(ctx, repository.PostQuery{
		UserID:    userID,
		Status:    query.Status,
		Platform:  platform,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTO(post))
	}
	return &dto.PageDTO{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *postServiceImpl) searchPosts(ctx context.Context, userID uint64, keyword string, page, limit int) (*dto.PageDTO, error) {
	hits, total, err := s.postESRepo.SearchPosts(ctx, userID, keyword, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}
	posts, err := s.postDBRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 维持 ES 相关度排序
	byID := make(map[uint64]*model.Post, len(posts))
	for _, post := range posts {
		byID[post.ID] = post
	}
	items := make([]*dto.PostDTO, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			items = append(items, toPostDTO(post))
		}
	}
	return &dto.PageDTO{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, roles []string, postID uint64, postDTO *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, roles, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == consts.PostStatusPublished {
		return nil, ErrPostPublished
	}

	if postDTO.Content != nil {
		post.Content = *postDTO.Content
		post.Hashtags = datatypes.NewJSONSlice(util.ExtractHashtags(post.Content))
		post.WordCount = util.CountWords(post.Content)
	}
	if postDTO.Platform != nil {
		if !consts.IsValidPlatform(*postDTO.Platform) || *postDTO.Platform == consts.PlatformAll {
			return nil, ErrPlatformInvalid
		}
		post.Platform = *postDTO.Platform
	}
	if postDTO.ScheduledAt != nil {
		post.ScheduledAt = postDTO.ScheduledAt
	}
	if postDTO.Status != nil {
		status := *postDTO.Status
		if !consts.IsValidPostStatus(status) || status == consts.PostStatusFailed || status == consts.PostStatusPublished {
			return nil, ErrPostStatusInvalid
		}
		if status == consts.PostStatusScheduled && post.ScheduledAt == nil {
			return nil, ErrScheduleTimeRequired
		}
		post.Status = status
	}
	if postDTO.MediaURLs != nil {
		post.MediaURLs = datatypes.NewJSONSlice(postDTO.MediaURLs)
	}

	if err = s.postDBRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	s.indexPost(ctx, post)
	return toPostDTO(post), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, roles []string, postID uint64) error {
	post, err := s.getOwnedPost(ctx, userID, roles, postID)
	if err != nil {
		return err
	}
	if post.Status == consts.PostStatusPublished {
		return ErrPostDeletePublished
	}
	if err = s.postDBRepo.DeletePost(ctx, postID); err != nil {
		return err
	}
	if err = s.postESRepo.DeletePost(ctx, postID); err != nil {
		log.Warn("Failed to remove post from search index", "post_id", postID, "err", err)
	}
	return nil
}

// getOwnedPost 取帖子并做归属校验，ADMIN 可访问任意帖子。
// 他人帖子按不存在处理，避免暴露存在性
func (s *postServiceImpl) getOwnedPost(ctx context.Context, userID uint64, roles []string, postID uint64) (*model.Post, error) {
	post, err := s.postDBRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID && !slices.Contains(roles, consts.RoleAdmin) {
		return nil, ErrPostNotOwned
	}
	return post, nil
}

func (s *postServiceImpl) indexPost(ctx context.Context, post *model.Post) {
	doc := &es.PostES{
		ID:          post.ID,
		UserID:      post.UserID,
		Content:     post.Content,
		Platform:    post.Platform,
		Status:      post.Status,
		Hashtags:    post.Hashtags,
		ScheduledAt: post.ScheduledAt,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if err := s.postESRepo.IndexPost(ctx, doc); err != nil {
		log.Warn("Failed to index post", "post_id", post.ID, "err", err)
	}
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	postDTO := &dto.PostDTO{}
	if err := copier.Copy(postDTO, post); err != nil {
		log.Warn("Failed to map post", "post_id", post.ID, "err", err)
	}
	return postDTO
}
