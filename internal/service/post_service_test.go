package service

import (
	"Pulseboard/internal/api/dto"
	"Pulseboard/internal/pkg/consts"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	svc   PostService
	posts *fakePostRepo
	es    *fakePostESRepo
}

func newPostFixture() *postFixture {
	posts := newFakePostRepo()
	esRepo := newFakePostESRepo()
	return &postFixture{
		svc:   NewPostService(posts, esRepo),
		posts: posts,
		es:    esRepo,
	}
}

func strPtr(s string) *string { return &s }

func TestCreatePost_DefaultsToDraft(t *testing.T) {
	f := newPostFixture()

	created, err := f.svc.CreatePost(context.Background(), 7, &dto.CreatePostDTO{
		Content:  "Shipping the new release #Launch #golang and again #launch",
		Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)

	assert.Equal(t, consts.PostStatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.Equal(t, []string{"#launch", "#golang"}, created.Hashtags)
	assert.Equal(t, 9, created.WordCount)

	// 创建同步写入搜索索引
	doc, err := f.es.GetPostById(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, created.Content, doc.Content)
}

func TestCreatePost_Validation(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	_, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{Content: "x", Platform: "myspace"})
	assert.ErrorIs(t, err, ErrPlatformInvalid)

	// "all" 只是查询过滤值，不是可发布平台
	_, err = f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{Content: "x", Platform: consts.PlatformAll})
	assert.ErrorIs(t, err, ErrPlatformInvalid)

	_, err = f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "x", Platform: consts.PlatformTwitter, Status: consts.PostStatusFailed,
	})
	assert.ErrorIs(t, err, ErrPostStatusInvalid)

	_, err = f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "x", Platform: consts.PlatformTwitter, Status: consts.PostStatusScheduled,
	})
	assert.ErrorIs(t, err, ErrScheduleTimeRequired)
}

func TestCreatePost_PublishedImmediately(t *testing.T) {
	f := newPostFixture()

	created, err := f.svc.CreatePost(context.Background(), 7, &dto.CreatePostDTO{
		Content: "live now", Platform: consts.PlatformTwitter, Status: consts.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, consts.PostStatusPublished, created.Status)
	require.NotNil(t, created.PublishedAt)
	assert.WithinDuration(t, time.Now().UTC(), *created.PublishedAt, time.Minute)
}

func TestUpdatePost_PublishedIsImmutable(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "live", Platform: consts.PlatformTwitter, Status: consts.PostStatusPublished,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdatePost(ctx, 7, nil, created.ID, &dto.UpdatePostDTO{Content: strPtr("edited")})
	assert.ErrorIs(t, err, ErrPostPublished)
}

func TestUpdatePost_RefreshesMetadata(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "old words #old", Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdatePost(ctx, 7, nil, created.ID, &dto.UpdatePostDTO{
		Content: strPtr("brand new copy #Fresh"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"#fresh"}, updated.Hashtags)
	assert.Equal(t, 4, updated.WordCount)
}

func TestUpdatePost_StatusTransitions(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "draft", Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)

	// published / failed 不能经由更新接口设置
	_, err = f.svc.UpdatePost(ctx, 7, nil, created.ID, &dto.UpdatePostDTO{Status: strPtr(consts.PostStatusPublished)})
	assert.ErrorIs(t, err, ErrPostStatusInvalid)
	_, err = f.svc.UpdatePost(ctx, 7, nil, created.ID, &dto.UpdatePostDTO{Status: strPtr(consts.PostStatusFailed)})
	assert.ErrorIs(t, err, ErrPostStatusInvalid)

	// 转 scheduled 必须带时间
	_, err = f.svc.UpdatePost(ctx, 7, nil, created.ID, &dto.UpdatePostDTO{Status: strPtr(consts.PostStatusScheduled)})
	assert.ErrorIs(t, err, ErrScheduleTimeRequired)

	at := time.Now().UTC().Add(time.Hour)
	updated, err := f.svc.UpdatePost(ctx, 7, nil, created.ID, &dto.UpdatePostDTO{
		Status: strPtr(consts.PostStatusScheduled), ScheduledAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, consts.PostStatusScheduled, updated.Status)
}

func TestDeletePost(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	draft, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "draft", Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)
	published, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "live", Platform: consts.PlatformTwitter, Status: consts.PostStatusPublished,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeletePost(ctx, 7, nil, published.ID), ErrPostDeletePublished)

	require.NoError(t, f.svc.DeletePost(ctx, 7, nil, draft.ID))
	_, err = f.svc.GetPost(ctx, 7, nil, draft.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostOwnership(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	created, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "mine", Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)

	// 他人帖子按不存在处理
	_, err = f.svc.GetPost(ctx, 8, nil, created.ID)
	assert.ErrorIs(t, err, ErrPostNotOwned)

	got, err := f.svc.GetPost(ctx, 8, []string{consts.RoleAdmin}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListPosts(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
			Content: "entry", Platform: consts.PlatformTwitter,
		})
		require.NoError(t, err)
	}
	_, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "other", Platform: consts.PlatformInstagram,
	})
	require.NoError(t, err)

	page, err := f.svc.ListPosts(ctx, 7, PostListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items.([]*dto.PostDTO), 2)

	// 非法分页参数钳到默认
	page, err = f.svc.ListPosts(ctx, 7, PostListQuery{Page: 0, Limit: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)

	filtered, err := f.svc.ListPosts(ctx, 7, PostListQuery{Page: 1, Limit: 10, Platform: consts.PlatformInstagram})
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Total)

	_, err = f.svc.ListPosts(ctx, 7, PostListQuery{Page: 1, Limit: 10, Platform: "myspace"})
	assert.ErrorIs(t, err, ErrPlatformInvalid)
	_, err = f.svc.ListPosts(ctx, 7, PostListQuery{Page: 1, Limit: 10, Status: "bogus"})
	assert.ErrorIs(t, err, ErrPostStatusInvalid)
}

func TestListPosts_Search(t *testing.T) {
	f := newPostFixture()
	ctx := context.Background()

	first, err := f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "kubernetes rollout notes", Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, 7, &dto.CreatePostDTO{
		Content: "coffee break", Platform: consts.PlatformTwitter,
	})
	require.NoError(t, err)

	page, err := f.svc.ListPosts(ctx, 7, PostListQuery{Page: 1, Limit: 10, Search: "kubernetes"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	items := page.Items.([]*dto.PostDTO)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)
}
