package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalyticsCacheRepo 报表结果缓存。未命中（含已过期）统一返回 nil, nil，
// 存储层错误原样抛出，由调用方降级为实时计算
type AnalyticsCacheRepo interface {
	// Get 按指纹读取，expires_at <= now 视为未命中
	Get(ctx context.Context, cacheKey string) (*CacheEntry, error)
	// GetAny 只判存在、不校验过期（单帖分析的口径：写入一次、覆盖前一直有效）
	GetAny(ctx context.Context, cacheKey string) (*CacheEntry, error)
	// Put Upsert 写入，expiresAt = now + ttl
	Put(ctx context.Context, cacheKey string, userID uint64, data []byte, ttl time.Duration) error
	// Delete 删除指定条目
	Delete(ctx context.Context, cacheKey string) error
}

type analyticsCacheRepoImpl struct {
	col *mongo.Collection
}

func NewAnalyticsCacheRepo(db *mongo.Database) AnalyticsCacheRepo {
	return &analyticsCacheRepoImpl{
		col: db.Collection(AnalyticsCacheCollection),
	}
}

func (s *analyticsCacheRepoImpl) Get(ctx context.Context, cacheKey string) (*CacheEntry, error) {
	entry, err := s.GetAny(ctx, cacheKey)
	if err != nil || entry == nil {
		return nil, err
	}
	if !entry.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return entry, nil
}

func (s *analyticsCacheRepoImpl) GetAny(ctx context.Context, cacheKey string) (*CacheEntry, error) {
	var entry CacheEntry
	err := s.col.FindOne(ctx, bson.M{"cache_key": cacheKey}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s *analyticsCacheRepoImpl) Put(ctx context.Context, cacheKey string, userID uint64, data []byte, ttl time.Duration) error {
	update := bson.M{"$set": bson.M{
		"cache_key":  cacheKey,
		"user_id":    userID,
		"data":       data,
		"expires_at": time.Now().Add(ttl),
	}}
	_, err := s.col.UpdateOne(ctx, bson.M{"cache_key": cacheKey}, update, options.Update().SetUpsert(true))
	return err
}

func (s *analyticsCacheRepoImpl) Delete(ctx context.Context, cacheKey string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"cache_key": cacheKey})
	return err
}
