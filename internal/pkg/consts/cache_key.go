package consts

import (
	"fmt"
	"time"
)

// 分析报表缓存键前缀。缓存指纹必须包含所有影响结果的参数，
// 漏掉任何一个参数都会把旧数据错发给带不同过滤条件的调用方。
const (
	OptimalTimesKey          = "analytics:optimal_times:"
	EngagementTrendsKey      = "analytics:trends:"
	PlatformPerformanceKey   = "analytics:platform_performance:"
	TopPostsKey              = "analytics:top_posts:"
	PerformanceComparisonKey = "analytics:performance_comparison:"
	RecentOverviewKey        = "analytics:recent_overview:"
	PostAnalyticsKey         = "analytics:post:"
)

// 缓存 TTL，按报表粒度区分
const (
	OptimalTimesTTL          = time.Hour
	EngagementTrendsTTL      = 15 * time.Minute
	PlatformPerformanceTTL   = 15 * time.Minute
	TopPostsTTL              = 15 * time.Minute
	PerformanceComparisonTTL = 30 * time.Minute
	RecentOverviewTTL        = 15 * time.Minute

	// PostAnalyticsTTL 单帖分析读取时只判存在不判过期，
	// 这里只决定 Mongo 回收文档的时点
	PostAnalyticsTTL = 30 * 24 * time.Hour
)

// OptimalTimesCacheKey 最佳发布时段报表指纹
func OptimalTimesCacheKey(userID uint64) string {
	return fmt.Sprintf("%s%d", OptimalTimesKey, userID)
}

// EngagementTrendsCacheKey 互动趋势报表指纹。metric 目前为保留参数，
// 仍参与指纹以保证和请求参数一一对应
func EngagementTrendsCacheKey(userID uint64, days int, granularity, metric string) string {
	return fmt.Sprintf("%s%d:%d:%s:%s", EngagementTrendsKey, userID, days, granularity, metric)
}

// PlatformPerformanceCacheKey 平台表现报表指纹
func PlatformPerformanceCacheKey(userID uint64, days int) string {
	return fmt.Sprintf("%s%d:%d", PlatformPerformanceKey, userID, days)
}

// TopPostsCacheKey 热门帖子报表指纹
func TopPostsCacheKey(userID uint64, limit int) string {
	return fmt.Sprintf("%s%d:%d", TopPostsKey, userID, limit)
}

// PerformanceComparisonCacheKey 同比对比报表指纹，时间统一用 UTC RFC3339
func PerformanceComparisonCacheKey(userID uint64, platform string, start, end time.Time) string {
	return fmt.Sprintf("%s%d:%s:%s:%s",
		PerformanceComparisonKey, userID, platform,
		start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
}

// RecentOverviewCacheKey 近期总览报表指纹
func RecentOverviewCacheKey(userID uint64) string {
	return fmt.Sprintf("%s%d", RecentOverviewKey, userID)
}

// PostAnalyticsCacheKey 单帖分析指纹
func PostAnalyticsCacheKey(postID, userID uint64) string {
	return fmt.Sprintf("%s%d:%d", PostAnalyticsKey, postID, userID)
}
