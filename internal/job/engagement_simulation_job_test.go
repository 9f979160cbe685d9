package job

import (
	"Pulseboard/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeMultiplier(t *testing.T) {
	assert.Equal(t, 1.5, timeMultiplier(9))
	assert.Equal(t, 1.5, timeMultiplier(17))
	assert.Equal(t, 1.2, timeMultiplier(18))
	assert.Equal(t, 1.2, timeMultiplier(22))
	assert.Equal(t, 0.7, timeMultiplier(23))
	assert.Equal(t, 0.7, timeMultiplier(3))
	assert.Equal(t, 0.7, timeMultiplier(8))
}

func TestWeekendMultiplier(t *testing.T) {
	assert.Equal(t, 0.6, weekendMultiplier(time.Saturday))
	assert.Equal(t, 0.6, weekendMultiplier(time.Sunday))
	assert.Equal(t, 1.0, weekendMultiplier(time.Monday))
	assert.Equal(t, 1.0, weekendMultiplier(time.Friday))
}

func TestAgeMultiplier(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	at := func(hoursAgo int) *time.Time {
		ts := now.Add(-time.Duration(hoursAgo) * time.Hour)
		return &ts
	}

	assert.Equal(t, 1.5, ageMultiplier(&model.Post{PublishedAt: at(6)}, now))
	assert.Equal(t, 1.2, ageMultiplier(&model.Post{PublishedAt: at(24)}, now))
	assert.Equal(t, 0.8, ageMultiplier(&model.Post{PublishedAt: at(72)}, now))
	assert.Equal(t, 0.5, ageMultiplier(&model.Post{PublishedAt: at(240)}, now))

	// 无发布时间时退回创建时间
	created := now.Add(-200 * time.Hour)
	assert.Equal(t, 0.5, ageMultiplier(&model.Post{CreatedAt: created}, now))
}

func TestSynthesizeEvent(t *testing.T) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) // 周一工作时段
	publishedAt := now.Add(-2 * time.Hour)
	post := &model.Post{ID: 3, UserID: 7, Platform: "twitter", PublishedAt: &publishedAt}

	for i := 0; i < 20; i++ {
		event := synthesizeEvent(post, now)
		require.Equal(t, uint64(3), event.PostID)
		require.Equal(t, uint64(7), event.UserID)
		require.Equal(t, "twitter", event.Platform)

		// 曝光量不参与加权，固定落在 [100, 1000]
		assert.GreaterOrEqual(t, event.Impressions, int64(100))
		assert.LessOrEqual(t, event.Impressions, int64(1000))
		assert.GreaterOrEqual(t, event.Likes, int64(0))
		assert.GreaterOrEqual(t, event.Comments, int64(0))
		assert.GreaterOrEqual(t, event.Shares, int64(0))
		assert.GreaterOrEqual(t, event.Clicks, int64(0))

		assert.Equal(t, int8(10), event.HourOfDay)
		assert.Equal(t, int8(1), event.DayOfWeek)
	}
}
