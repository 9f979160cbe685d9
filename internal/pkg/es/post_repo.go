package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/goccy/go-json"
)

type PostRepo interface {
	// SearchPosts 在用户帖子里做全文检索，content 匹配度优先，其次按创建时间倒序
	SearchPosts(ctx context.Context, userID uint64, queryText string, from, size int) ([]*PostES, int64, error)
	GetPostById(ctx context.Context, id uint64) (*PostES, error)
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

func (s *PostRepoImpl) SearchPosts(ctx context.Context, userID uint64, queryText string, from, size int) ([]*PostES, int64, error) {
	boolQuery := &types.BoolQuery{
		Filter: []types.Query{
			{Term: map[string]types.TermQuery{"user_id": {Value: userID}}},
		},
	}
	if queryText != "" {
		boolQuery.Must = append(boolQuery.Must, types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  queryText,
				Fields: []string{"content^2", "hashtags"},
			},
		})
	}

	resp, err := s.client.Search().Index(PostIndex).
		Query(&types.Query{Bool: boolQuery}).
		Sort(
			types.SortOptions{Score_: &types.ScoreSort{Order: &sortorder.Desc}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{
				"created_at": {Order: &sortorder.Desc},
			}},
		).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	posts := make([]*PostES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var post PostES
		if err = json.Unmarshal(hit.Source_, &post); err != nil {
			return nil, 0, err
		}
		posts = append(posts, &post)
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}
	return posts, total, nil
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*PostES, error) {
	docID := strconv.FormatUint(id, 10)

	resp, err := s.client.Get(PostIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil, nil
		}
		return nil, err
	}
	if !resp.Found {
		return nil, nil
	}

	var post PostES
	if err = json.Unmarshal(resp.Source_, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	docID := strconv.FormatUint(post.ID, 10)

	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(post).
		Do(ctx)
	return err
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)

	_, err := s.client.Delete(PostIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}
