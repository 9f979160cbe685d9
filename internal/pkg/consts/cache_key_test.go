package consts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyDeterminism(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, OptimalTimesCacheKey(7), OptimalTimesCacheKey(7))
	assert.Equal(t,
		EngagementTrendsCacheKey(7, 30, "daily", "engagement"),
		EngagementTrendsCacheKey(7, 30, "daily", "engagement"))
	assert.Equal(t,
		PerformanceComparisonCacheKey(7, "twitter", start, end),
		PerformanceComparisonCacheKey(7, "twitter", start, end))
}

func TestCacheKeyDivergesPerParameter(t *testing.T) {
	base := EngagementTrendsCacheKey(7, 30, "daily", "engagement")
	assert.NotEqual(t, base, EngagementTrendsCacheKey(8, 30, "daily", "engagement"))
	assert.NotEqual(t, base, EngagementTrendsCacheKey(7, 7, "daily", "engagement"))
	assert.NotEqual(t, base, EngagementTrendsCacheKey(7, 30, "hourly", "engagement"))
	assert.NotEqual(t, base, EngagementTrendsCacheKey(7, 30, "daily", "likes"))

	assert.NotEqual(t, TopPostsCacheKey(7, 10), TopPostsCacheKey(7, 5))
	assert.NotEqual(t, PlatformPerformanceCacheKey(7, 30), PlatformPerformanceCacheKey(7, 7))

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.NotEqual(t,
		PerformanceComparisonCacheKey(7, "twitter", start, end),
		PerformanceComparisonCacheKey(7, "instagram", start, end))
	assert.NotEqual(t,
		PerformanceComparisonCacheKey(7, "twitter", start, end),
		PerformanceComparisonCacheKey(7, "twitter", start.AddDate(0, 0, 1), end))
}

func TestCacheKeyFormats(t *testing.T) {
	assert.Equal(t, "analytics:optimal_times:7", OptimalTimesCacheKey(7))
	assert.Equal(t, "analytics:trends:7:30:daily:engagement",
		EngagementTrendsCacheKey(7, 30, "daily", "engagement"))
	assert.Equal(t, "analytics:post:42:7", PostAnalyticsCacheKey(42, 7))
}
