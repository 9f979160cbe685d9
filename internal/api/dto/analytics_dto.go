package dto

import "time"

// OptimalSlotDTO (星期, 小时) 桶的聚合结果，DayOfWeek 按 UTC、周日为 0
type OptimalSlotDTO struct {
	DayOfWeek         int     `json:"day_of_week"`
	HourOfDay         int     `json:"hour_of_day"`
	AvgEngagement     float64 `json:"avg_engagement"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	AvgCTR            float64 `json:"avg_ctr"`
	PerformanceScore  float64 `json:"performance_score"`
	SampleSize        int64   `json:"sample_size"`
}

type OptimalTimesDTO struct {
	Cached bool              `json:"cached"`
	Data   []*OptimalSlotDTO `json:"data"`
}

// TrendPointDTO 单个时间桶：Value 为五字段原始总量，MovingAvg 为滑动均值
type TrendPointDTO struct {
	Date      string  `json:"date"`
	Value     int64   `json:"value"`
	MovingAvg float64 `json:"moving_avg"`
}

type TrendSummaryDTO struct {
	Total   int64          `json:"total"`
	Average float64        `json:"average"`
	Growth  float64        `json:"growth"`
	Peak    *TrendPointDTO `json:"peak"`
}

type EngagementTrendsDTO struct {
	Cached      bool             `json:"cached"`
	Period      string           `json:"period"`
	Granularity string           `json:"granularity"`
	Data        []*TrendPointDTO `json:"data"`
	Summary     TrendSummaryDTO  `json:"summary"`
}

type PlatformStatsDTO struct {
	Platform         string  `json:"platform"`
	TotalEngagement  int64   `json:"total_engagement"`
	EngagementRate   float64 `json:"engagement_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
	PerformanceScore float64 `json:"performance_score"`
	PercentageShare  float64 `json:"percentage_share"`
}

type PlatformPerformanceDTO struct {
	Cached bool                `json:"cached"`
	Period string              `json:"period"`
	Data   []*PlatformStatsDTO `json:"data"`
}

type TopPostDTO struct {
	PostID          uint64    `json:"post_id"`
	Title           string    `json:"title"`
	Platform        string    `json:"platform"`
	CreatedAt       time.Time `json:"created_at"`
	Likes           int64     `json:"likes"`
	Comments        int64     `json:"comments"`
	Shares          int64     `json:"shares"`
	Clicks          int64     `json:"clicks"`
	Impressions     int64     `json:"impressions"`
	TotalEngagement int64     `json:"total_engagement"`
	EngagementRate  float64   `json:"engagement_rate"`
	PercentageShare float64   `json:"percentage_share"`
}

type TopPostsDTO struct {
	Cached          bool          `json:"cached"`
	TotalPosts      int           `json:"total_posts"`
	TotalEngagement int64         `json:"total_engagement"`
	Data            []*TopPostDTO `json:"data"`
}

// MetricComparisonDTO 两窗口同一指标的对比，Change 为百分比变化
type MetricComparisonDTO struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

type ComparisonDataDTO struct {
	UniquePosts     MetricComparisonDTO `json:"unique_posts"`
	Impressions     MetricComparisonDTO `json:"impressions"`
	Likes           MetricComparisonDTO `json:"likes"`
	Comments        MetricComparisonDTO `json:"comments"`
	Shares          MetricComparisonDTO `json:"shares"`
	Clicks          MetricComparisonDTO `json:"clicks"`
	TotalEngagement MetricComparisonDTO `json:"total_engagement"`
	EngagementRate  MetricComparisonDTO `json:"engagement_rate"`
}

type PerformanceComparisonDTO struct {
	Cached    bool              `json:"cached"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Platform  string            `json:"platform"`
	Data      ComparisonDataDTO `json:"data"`
}

// RecentOverviewDTO 最近 30 天 vs 之前 30 天，另带发帖数对比
type RecentOverviewDTO struct {
	Cached     bool                `json:"cached"`
	Data       ComparisonDataDTO   `json:"data"`
	TotalPosts MetricComparisonDTO `json:"total_posts"`
}

type PostAnalyticsDTO struct {
	Cached               bool    `json:"cached"`
	PostID               uint64  `json:"post_id"`
	Likes                int64   `json:"likes"`
	Comments             int64   `json:"comments"`
	Shares               int64   `json:"shares"`
	Clicks               int64   `json:"clicks"`
	Impressions          int64   `json:"impressions"`
	TotalEngagement      int64   `json:"total_engagement"`
	EngagementRate       float64 `json:"engagement_rate"`
	ClickThroughRate     float64 `json:"click_through_rate"`
	AvgEngagementPerHour float64 `json:"avg_engagement_per_hour"`
	PerformanceScore     float64 `json:"performance_score"`
}
