package service

import (
	"Pulseboard/internal/model"
	"Pulseboard/internal/pkg/es"
	"Pulseboard/internal/pkg/mongo"
	"Pulseboard/internal/repository"
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// 内存实现的测试替身，按接口语义逐一对齐真实存储的行为

type fakePostRepo struct {
	nextID uint64
	posts  map[uint64]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint64]*model.Post)}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	f.nextID++
	post.ID = f.nextID
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	post.UpdatedAt = post.CreatedAt
	cloned := *post
	f.posts[post.ID] = &cloned
	return nil
}

func (f *fakePostRepo) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok || post.IsDeleted {
		return nil, nil
	}
	cloned := *post
	return &cloned, nil
}

func (f *fakePostRepo) GetPostByIds(_ context.Context, ids []uint64) ([]*model.Post, error) {
	result := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := f.posts[id]; ok && !post.IsDeleted {
			cloned := *post
			result = append(result, &cloned)
		}
	}
	return result, nil
}

func (f *fakePostRepo) ListPosts(_ context.Context, query repository.PostQuery) ([]*model.Post, int64, error) {
	matched := make([]*model.Post, 0)
	for _, post := range f.posts {
		if post.IsDeleted || post.UserID != query.UserID {
			continue
		}
		if query.Status != "" && post.Status != query.Status {
			continue
		}
		if query.Platform != "" && post.Platform != query.Platform {
			continue
		}
		cloned := *post
		matched = append(matched, &cloned)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))

	offset := (query.Page - 1) * query.Limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + query.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, post *model.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return errors.New("post not found")
	}
	cloned := *post
	f.posts[post.ID] = &cloned
	return nil
}

func (f *fakePostRepo) UpdatePostStatus(_ context.Context, id uint64, status string, publishedAt *time.Time, failedReason *string) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = status
	post.PublishedAt = publishedAt
	post.FailedReason = failedReason
	return nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id uint64) error {
	if post, ok := f.posts[id]; ok {
		post.IsDeleted = true
	}
	return nil
}

func (f *fakePostRepo) ListDuePosts(_ context.Context, now time.Time, limit int) ([]*model.Post, error) {
	result := make([]*model.Post, 0)
	for _, post := range f.posts {
		if post.IsDeleted || post.Status != "scheduled" || post.ScheduledAt == nil {
			continue
		}
		if !post.ScheduledAt.After(now) {
			cloned := *post
			result = append(result, &cloned)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ScheduledAt.Before(*result[j].ScheduledAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakePostRepo) ListPublishedPosts(_ context.Context, limit int) ([]*model.Post, error) {
	result := make([]*model.Post, 0)
	for _, post := range f.posts {
		if post.IsDeleted || post.Status != "published" {
			continue
		}
		cloned := *post
		result = append(result, &cloned)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakePostRepo) CountCreatedBetween(_ context.Context, userID uint64, start, end time.Time) (int64, error) {
	var count int64
	for _, post := range f.posts {
		if post.IsDeleted || post.UserID != userID {
			continue
		}
		if !post.CreatedAt.Before(start) && post.CreatedAt.Before(end) {
			count++
		}
	}
	return count, nil
}

type fakeEngagementRepo struct {
	nextID uint64
	events []*model.EngagementEvent
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{}
}

func (f *fakeEngagementRepo) Append(_ context.Context, event *model.EngagementEvent) error {
	f.nextID++
	event.ID = f.nextID
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEngagementRepo) AppendBatch(ctx context.Context, events []*model.EngagementEvent) error {
	for _, event := range events {
		if err := f.Append(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeEngagementRepo) ListByUserSince(_ context.Context, userID uint64, since time.Time) ([]*model.EngagementEvent, error) {
	result := make([]*model.EngagementEvent, 0)
	for _, event := range f.events {
		if event.UserID == userID && !event.RecordedAt.Before(since) {
			result = append(result, event)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].RecordedAt.Before(result[j].RecordedAt) })
	return result, nil
}

func (f *fakeEngagementRepo) ListByPost(_ context.Context, postID uint64) ([]*model.EngagementEvent, error) {
	result := make([]*model.EngagementEvent, 0)
	for _, event := range f.events {
		if event.PostID == postID {
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeEngagementRepo) SumByPost(_ context.Context, postID uint64) (*repository.EngagementTotals, error) {
	totals := &repository.EngagementTotals{PostID: postID}
	for _, event := range f.events {
		if event.PostID != postID {
			continue
		}
		totals.EventCount++
		totals.Likes += event.Likes
		totals.Comments += event.Comments
		totals.Shares += event.Shares
		totals.Clicks += event.Clicks
		totals.Impressions += event.Impressions
	}
	return totals, nil
}

func (f *fakeEngagementRepo) TopPostTotals(_ context.Context, userID uint64, limit int) ([]*repository.EngagementTotals, error) {
	byPost := make(map[uint64]*repository.EngagementTotals)
	order := make([]uint64, 0)
	for _, event := range f.events {
		if event.UserID != userID {
			continue
		}
		totals, ok := byPost[event.PostID]
		if !ok {
			totals = &repository.EngagementTotals{PostID: event.PostID}
			byPost[event.PostID] = totals
			order = append(order, event.PostID)
		}
		totals.EventCount++
		totals.Likes += event.Likes
		totals.Comments += event.Comments
		totals.Shares += event.Shares
		totals.Clicks += event.Clicks
		totals.Impressions += event.Impressions
	}
	result := make([]*repository.EngagementTotals, 0, len(order))
	for _, postID := range order {
		result = append(result, byPost[postID])
	}
	engagement := func(t *repository.EngagementTotals) int64 {
		return t.Likes + t.Comments + t.Shares + t.Clicks
	}
	sort.SliceStable(result, func(i, j int) bool { return engagement(result[i]) > engagement(result[j]) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeEngagementRepo) SummarizeWindow(_ context.Context, userID uint64, from, to time.Time, platform string) (*repository.WindowSummary, error) {
	summary := &repository.WindowSummary{}
	seen := make(map[uint64]struct{})
	for _, event := range f.events {
		if event.UserID != userID {
			continue
		}
		if event.RecordedAt.Before(from) || !event.RecordedAt.Before(to) {
			continue
		}
		if platform != "" && platform != "all" && event.Platform != platform {
			continue
		}
		seen[event.PostID] = struct{}{}
		summary.Likes += event.Likes
		summary.Comments += event.Comments
		summary.Shares += event.Shares
		summary.Clicks += event.Clicks
		summary.Impressions += event.Impressions
	}
	summary.UniquePosts = int64(len(seen))
	return summary, nil
}

func (f *fakeEngagementRepo) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	kept := f.events[:0]
	var deleted int64
	for _, event := range f.events {
		if event.RecordedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, event)
	}
	f.events = kept
	return deleted, nil
}

type fakeCacheRepo struct {
	entries  map[string]*mongo.CacheEntry
	failGets bool
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{entries: make(map[string]*mongo.CacheEntry)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, cacheKey string) (*mongo.CacheEntry, error) {
	entry, err := f.GetAny(ctx, cacheKey)
	if err != nil || entry == nil {
		return nil, err
	}
	if !entry.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return entry, nil
}

func (f *fakeCacheRepo) GetAny(_ context.Context, cacheKey string) (*mongo.CacheEntry, error) {
	if f.failGets {
		return nil, errors.New("cache store unreachable")
	}
	entry, ok := f.entries[cacheKey]
	if !ok {
		return nil, nil
	}
	return entry, nil
}

func (f *fakeCacheRepo) Put(_ context.Context, cacheKey string, userID uint64, data []byte, ttl time.Duration) error {
	f.entries[cacheKey] = &mongo.CacheEntry{
		CacheKey:  cacheKey,
		UserID:    userID,
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (f *fakeCacheRepo) Delete(_ context.Context, cacheKey string) error {
	delete(f.entries, cacheKey)
	return nil
}

type fakePostESRepo struct {
	docs map[uint64]*es.PostES
}

func newFakePostESRepo() *fakePostESRepo {
	return &fakePostESRepo{docs: make(map[uint64]*es.PostES)}
}

func (f *fakePostESRepo) SearchPosts(_ context.Context, userID uint64, queryText string, from, size int) ([]*es.PostES, int64, error) {
	matched := make([]*es.PostES, 0)
	for _, doc := range f.docs {
		if doc.UserID != userID {
			continue
		}
		if queryText != "" && !strings.Contains(strings.ToLower(doc.Content), strings.ToLower(queryText)) {
			continue
		}
		matched = append(matched, doc)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if from >= len(matched) {
		return nil, total, nil
	}
	end := from + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[from:end], total, nil
}

func (f *fakePostESRepo) GetPostById(_ context.Context, id uint64) (*es.PostES, error) {
	return f.docs[id], nil
}

func (f *fakePostESRepo) IndexPost(_ context.Context, post *es.PostES) error {
	f.docs[post.ID] = post
	return nil
}

func (f *fakePostESRepo) DeletePost(_ context.Context, id uint64) error {
	delete(f.docs, id)
	return nil
}
