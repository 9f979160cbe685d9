package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const AnalyticsCacheCollection = "analytics_cache"

// CacheEntry 分析报表缓存条目。Data 为报表 DTO 的 JSON 序列化字节，
// 存储层不关心具体报表形状
type CacheEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CacheKey  string             `bson:"cache_key"`
	UserID    uint64             `bson:"user_id"`
	Data      []byte             `bson:"data"`
	ExpiresAt time.Time          `bson:"expires_at"`
}
