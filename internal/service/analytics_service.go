package service

import (
	"Pulseboard/internal/api/dto"
	"Pulseboard/internal/model"
	"Pulseboard/internal/pkg/consts"
	"Pulseboard/internal/pkg/metrics"
	"Pulseboard/internal/pkg/mongo"
	"Pulseboard/internal/pkg/util"
	"Pulseboard/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	optimalTimesWindowDays = 30
	optimalTimesTopN       = 5
	topPostTitleRunes      = 50
)

type AnalyticsService interface {
	GetOptimalPostingTimes(ctx context.Context, userID uint64) (*dto.OptimalTimesDTO, error)
	GetEngagementTrends(ctx context.Context, userID uint64, period, granularity, metric string) (*dto.EngagementTrendsDTO, error)
	GetPlatformPerformance(ctx context.Context, userID uint64, period string) (*dto.PlatformPerformanceDTO, error)
	GetTopPosts(ctx context.Context, userID uint64, limitParam string) (*dto.TopPostsDTO, error)
	GetPerformanceComparison(ctx context.Context, userID uint64, startDate, endDate, platform string) (*dto.PerformanceComparisonDTO, error)
	GetRecentOverview(ctx context.Context, userID uint64) (*dto.RecentOverviewDTO, error)
	GetPostAnalytics(ctx context.Context, userID uint64, roles []string, postID uint64) (*dto.PostAnalyticsDTO, error)
}

type analyticsServiceImpl struct {
	engagementRepo repository.EngagementRepo
	postRepo       repository.PostRepo
	cacheRepo      mongo.AnalyticsCacheRepo
}

func NewAnalyticsService(engagementRepo repository.EngagementRepo, postRepo repository.PostRepo, cacheRepo mongo.AnalyticsCacheRepo) AnalyticsService {
	return &analyticsServiceImpl{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		cacheRepo:      cacheRepo,
	}
}

// readCache 读缓存。存储异常降级为实时计算，不阻塞请求
func (s *analyticsServiceImpl) readCache(ctx context.Context, key string, out interface{}) bool {
	entry, err := s.cacheRepo.Get(ctx, key)
	if err != nil {
		log.Warn("Analytics cache read failed, computing live", "key", key, "err", err)
		return false
	}
	if entry == nil {
		return false
	}
	if err = json.Unmarshal(entry.Data, out); err != nil {
		log.Warn("Analytics cache entry corrupted, computing live", "key", key, "err", err)
		return false
	}
	return true
}

func (s *analyticsServiceImpl) writeCache(ctx context.Context, key string, userID uint64, payload interface{}, ttl time.Duration) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn("Analytics cache marshal failed", "key", key, "err", err)
		return
	}
	if err = s.cacheRepo.Put(ctx, key, userID, data, ttl); err != nil {
		log.Warn("Analytics cache write failed", "key", key, "err", err)
	}
}

type slotKey struct {
	day  int
	hour int
}

func (s *analyticsServiceImpl) GetOptimalPostingTimes(ctx context.Context, userID uint64) (*dto.OptimalTimesDTO, error) {
	cacheKey := consts.OptimalTimesCacheKey(userID)
	result := &dto.OptimalTimesDTO{}
	if s.readCache(ctx, cacheKey, result) {
		result.Cached = true
		return result, nil
	}

	now := time.Now().UTC()
	events, err := s.engagementRepo.ListByUserSince(ctx, userID, now.AddDate(0, 0, -optimalTimesWindowDays))
	if err != nil {
		return nil, err
	}

	type slotAcc struct {
		sumEngagement int64
		sumRate       float64
		sumCTR        float64
		count         int64
	}
	// 桶按首次出现顺序记录，分数相同的桶排序后保持枚举序
	order := make([]slotKey, 0)
	buckets := make(map[slotKey]*slotAcc)
	for _, event := range events {
		key := slotKey{day: int(event.DayOfWeek), hour: int(event.HourOfDay)}
		acc, ok := buckets[key]
		if !ok {
			acc = &slotAcc{}
			buckets[key] = acc
			order = append(order, key)
		}
		acc.sumEngagement += event.Likes + event.Comments + event.Shares
		acc.sumRate += metrics.EngagementRate(event.Likes, event.Comments, event.Shares, event.Impressions)
		acc.sumCTR += metrics.ClickThroughRate(event.Clicks, event.Impressions)
		acc.count++
	}

	slots := make([]*dto.OptimalSlotDTO, 0, len(order))
	for _, key := range order {
		acc := buckets[key]
		avgEngagement := float64(acc.sumEngagement) / float64(acc.count)
		avgRate := acc.sumRate / float64(acc.count)
		avgCTR := acc.sumCTR / float64(acc.count)
		slots = append(slots, &dto.OptimalSlotDTO{
			DayOfWeek:         key.day,
			HourOfDay:         key.hour,
			AvgEngagement:     metrics.Round2(avgEngagement),
			AvgEngagementRate: metrics.Round2(avgRate),
			AvgCTR:            metrics.Round2(avgCTR),
			PerformanceScore:  metrics.Round2(0.4*avgRate + 0.3*avgCTR + 0.3*avgEngagement),
			SampleSize:        acc.count,
		})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].PerformanceScore > slots[j].PerformanceScore
	})
	if len(slots) > optimalTimesTopN {
		slots = slots[:optimalTimesTopN]
	}

	result = &dto.OptimalTimesDTO{Data: slots}
	s.writeCache(ctx, cacheKey, userID, result, consts.OptimalTimesTTL)
	return result, nil
}

func (s *analyticsServiceImpl) GetEngagementTrends(ctx context.Context, userID uint64, period, granularity, metric string) (*dto.EngagementTrendsDTO, error) {
	days := util.ParsePeriodDays(period, 30)
	if granularity != "hourly" && granularity != "weekly" {
		granularity = "daily"
	}

	cacheKey := consts.EngagementTrendsCacheKey(userID, days, granularity, metric)
	result := &dto.EngagementTrendsDTO{}
	if s.readCache(ctx, cacheKey, result) {
		result.Cached = true
		return result, nil
	}

	now := time.Now().UTC()
	events, err := s.engagementRepo.ListByUserSince(ctx, userID, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	truncate := util.GetMidnight
	dateLayout := "2006-01-02"
	window := 7
	switch granularity {
	case "hourly":
		truncate = util.TruncateToHour
		dateLayout = "2006-01-02 15:00"
		window = 24
	case "weekly":
		truncate = util.TruncateToWeek
	}

	sums := make(map[time.Time]int64)
	for _, event := range events {
		bucket := truncate(event.RecordedAt)
		// 趋势报表的总量取全部五个计数字段
		sums[bucket] += event.Likes + event.Comments + event.Shares + event.Clicks + event.Impressions
	}
	bucketTimes := make([]time.Time, 0, len(sums))
	for bucket := range sums {
		bucketTimes = append(bucketTimes, bucket)
	}
	sort.Slice(bucketTimes, func(i, j int) bool { return bucketTimes[i].Before(bucketTimes[j]) })

	points := make([]*dto.TrendPointDTO, 0, len(bucketTimes))
	var total int64
	for i, bucket := range bucketTimes {
		value := sums[bucket]
		total += value

		// 滑动均值只用已有的前序桶，序列开头不回绕
		from := i - window + 1
		if from < 0 {
			from = 0
		}
		var windowSum int64
		for _, b := range bucketTimes[from : i+1] {
			windowSum += sums[b]
		}
		points = append(points, &dto.TrendPointDTO{
			Date:      bucket.Format(dateLayout),
			Value:     value,
			MovingAvg: metrics.Round2(float64(windowSum) / float64(i+1-from)),
		})
	}

	summary := dto.TrendSummaryDTO{Total: total}
	if len(points) > 0 {
		summary.Average = metrics.Round2(float64(total) / float64(len(points)))

		// 前后两半按下标切分，奇数个桶时多出的归入后半
		half := len(points) / 2
		var prevTotal, currTotal int64
		for _, p := range points[:half] {
			prevTotal += p.Value
		}
		for _, p := range points[half:] {
			currTotal += p.Value
		}
		summary.Growth = metrics.Round2(metrics.PercentChange(float64(currTotal), float64(prevTotal)))

		peak := points[0]
		for _, p := range points[1:] {
			if p.Value > peak.Value {
				peak = p
			}
		}
		summary.Peak = &dto.TrendPointDTO{Date: peak.Date, Value: peak.Value, MovingAvg: peak.MovingAvg}
	}

	result = &dto.EngagementTrendsDTO{
		Period:      fmt.Sprintf("%dd", days),
		Granularity: granularity,
		Data:        points,
		Summary:     summary,
	}
	s.writeCache(ctx, cacheKey, userID, result, consts.EngagementTrendsTTL)
	return result, nil
}

func (s *analyticsServiceImpl) GetPlatformPerformance(ctx context.Context, userID uint64, period string) (*dto.PlatformPerformanceDTO, error) {
	days := util.ParsePeriodDays(period, 30)

	cacheKey := consts.PlatformPerformanceCacheKey(userID, days)
	result := &dto.PlatformPerformanceDTO{}
	if s.readCache(ctx, cacheKey, result) {
		result.Cached = true
		return result, nil
	}

	now := time.Now().UTC()
	events, err := s.engagementRepo.ListByUserSince(ctx, userID, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	type platformAcc struct {
		totalEngagement int64
		totalShares     int64
		sumRate         float64
		sumCTR          float64
		count           int64
	}
	order := make([]string, 0)
	buckets := make(map[string]*platformAcc)
	for _, event := range events {
		acc, ok := buckets[event.Platform]
		if !ok {
			acc = &platformAcc{}
			buckets[event.Platform] = acc
			order = append(order, event.Platform)
		}
		// 平台口径的互动总量含 clicks
		acc.totalEngagement += event.Likes + event.Comments + event.Shares + event.Clicks
		acc.totalShares += event.Shares
		acc.sumRate += metrics.EngagementRate(event.Likes, event.Comments, event.Shares, event.Impressions)
		acc.sumCTR += metrics.ClickThroughRate(event.Clicks, event.Impressions)
		acc.count++
	}

	var grandTotal int64
	for _, acc := range buckets {
		grandTotal += acc.totalEngagement
	}

	stats := make([]*dto.PlatformStatsDTO, 0, len(order))
	for _, platform := range order {
		acc := buckets[platform]
		avgRate := acc.sumRate / float64(acc.count)
		avgCTR := acc.sumCTR / float64(acc.count)
		stats = append(stats, &dto.PlatformStatsDTO{
			Platform:         platform,
			TotalEngagement:  acc.totalEngagement,
			EngagementRate:   metrics.Round2(avgRate),
			ClickThroughRate: metrics.Round2(avgCTR),
			PerformanceScore: metrics.Round2(0.4*avgRate + 0.3*avgCTR + 0.3*float64(acc.totalShares)),
			PercentageShare:  metrics.Round2(metrics.PercentageShare(float64(acc.totalEngagement), float64(grandTotal))),
		})
	}

	result = &dto.PlatformPerformanceDTO{
		Period: fmt.Sprintf("%dd", days),
		Data:   stats,
	}
	s.writeCache(ctx, cacheKey, userID, result, consts.PlatformPerformanceTTL)
	return result, nil
}

func (s *analyticsServiceImpl) GetTopPosts(ctx context.Context, userID uint64, limitParam string) (*dto.TopPostsDTO, error) {
	limit := 10
	if limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}

	cacheKey := consts.TopPostsCacheKey(userID, limit)
	result := &dto.TopPostsDTO{}
	if s.readCache(ctx, cacheKey, result) {
		result.Cached = true
		return result, nil
	}

	totals, err := s.engagementRepo.TopPostTotals(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.PostID)
	}
	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	postByID := make(map[uint64]*model.Post, len(posts))
	for _, post := range posts {
		postByID[post.ID] = post
	}

	// 占比分母只取返回的 Top N 集合，是"头部内部份额"而非全量份额
	var shownTotal int64
	for _, t := range totals {
		shownTotal += t.Likes + t.Comments + t.Shares + t.Clicks
	}

	items := make([]*dto.TopPostDTO, 0, len(totals))
	for _, t := range totals {
		item := &dto.TopPostDTO{
			PostID:          t.PostID,
			Likes:           t.Likes,
			Comments:        t.Comments,
			Shares:          t.Shares,
			Clicks:          t.Clicks,
			Impressions:     t.Impressions,
			TotalEngagement: t.Likes + t.Comments + t.Shares + t.Clicks,
			EngagementRate:  metrics.Round2(metrics.EngagementRate(t.Likes, t.Comments, t.Shares, t.Impressions)),
		}
		item.PercentageShare = metrics.Round2(metrics.PercentageShare(float64(item.TotalEngagement), float64(shownTotal)))
		if post, ok := postByID[t.PostID]; ok {
			item.Title = truncateRunes(post.Content, topPostTitleRunes)
			item.Platform = post.Platform
			item.CreatedAt = post.CreatedAt
		}
		items = append(items, item)
	}

	result = &dto.TopPostsDTO{
		TotalPosts:      len(items),
		TotalEngagement: shownTotal,
		Data:            items,
	}
	s.writeCache(ctx, cacheKey, userID, result, consts.TopPostsTTL)
	return result, nil
}

func (s *analyticsServiceImpl) GetPerformanceComparison(ctx context.Context, userID uint64, startDate, endDate, platform string) (*dto.PerformanceComparisonDTO, error) {
	if platform != "" && platform != consts.PlatformAll && !consts.IsValidPlatform(platform) {
		return nil, ErrPlatformInvalid
	}
	platformKey := platform
	if platformKey == "" {
		platformKey = consts.PlatformAll
	}

	// 对比报表必须显式给出起止日期，起止对齐到天边界
	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	cacheKey := consts.PerformanceComparisonCacheKey(userID, platformKey, start, end)
	result := &dto.PerformanceComparisonDTO{}
	if s.readCache(ctx, cacheKey, result) {
		result.Cached = true
		return result, nil
	}

	data, err := s.compareWindows(ctx, userID, start, end, platform)
	if err != nil {
		return nil, err
	}

	result = &dto.PerformanceComparisonDTO{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Add(-time.Millisecond).Format("2006-01-02"),
		Platform:  platformKey,
		Data:      *data,
	}
	s.writeCache(ctx, cacheKey, userID, result, consts.PerformanceComparisonTTL)
	return result, nil
}

func (s *analyticsServiceImpl) GetRecentOverview(ctx context.Context, userID uint64) (*dto.RecentOverviewDTO, error) {
	cacheKey := consts.RecentOverviewCacheKey(userID)
	result := &dto.RecentOverviewDTO{}
	if s.readCache(ctx, cacheKey, result) {
		result.Cached = true
		return result, nil
	}

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30)

	data, err := s.compareWindows(ctx, userID, start, now, "")
	if err != nil {
		return nil, err
	}

	prevStart := start.Add(-now.Sub(start))
	currPosts, err := s.postRepo.CountCreatedBetween(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}
	prevPosts, err := s.postRepo.CountCreatedBetween(ctx, userID, prevStart, start)
	if err != nil {
		return nil, err
	}

	result = &dto.RecentOverviewDTO{
		Data:       *data,
		TotalPosts: compareMetric(float64(currPosts), float64(prevPosts)),
	}
	s.writeCache(ctx, cacheKey, userID, result, consts.RecentOverviewTTL)
	return result, nil
}

// compareWindows 聚合 [start, end) 与等长前序窗口并逐指标对比
func (s *analyticsServiceImpl) compareWindows(ctx context.Context, userID uint64, start, end time.Time, platform string) (*dto.ComparisonDataDTO, error) {
	duration := end.Sub(start)
	prevStart := start.Add(-duration)

	curr, err := s.engagementRepo.SummarizeWindow(ctx, userID, start, end, platform)
	if err != nil {
		return nil, err
	}
	prev, err := s.engagementRepo.SummarizeWindow(ctx, userID, prevStart, start, platform)
	if err != nil {
		return nil, err
	}

	currEngagement := curr.Likes + curr.Comments + curr.Shares + curr.Clicks
	prevEngagement := prev.Likes + prev.Comments + prev.Shares + prev.Clicks

	return &dto.ComparisonDataDTO{
		UniquePosts:     compareMetric(float64(curr.UniquePosts), float64(prev.UniquePosts)),
		Impressions:     compareMetric(float64(curr.Impressions), float64(prev.Impressions)),
		Likes:           compareMetric(float64(curr.Likes), float64(prev.Likes)),
		Comments:        compareMetric(float64(curr.Comments), float64(prev.Comments)),
		Shares:          compareMetric(float64(curr.Shares), float64(prev.Shares)),
		Clicks:          compareMetric(float64(curr.Clicks), float64(prev.Clicks)),
		TotalEngagement: compareMetric(float64(currEngagement), float64(prevEngagement)),
		EngagementRate: compareMetric(
			metrics.Round4(windowEngagementRate(currEngagement, curr.Impressions)),
			metrics.Round4(windowEngagementRate(prevEngagement, prev.Impressions)),
		),
	}, nil
}

func (s *analyticsServiceImpl) GetPostAnalytics(ctx context.Context, userID uint64, roles []string, postID uint64) (*dto.PostAnalyticsDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID && !slices.Contains(roles, consts.RoleAdmin) {
		return nil, ErrPostNotOwned
	}

	// 单帖分析只判缓存存在，不做过期校验：写入一次直至下次覆盖
	cacheKey := consts.PostAnalyticsCacheKey(postID, post.UserID)
	entry, err := s.cacheRepo.GetAny(ctx, cacheKey)
	if err != nil {
		log.Warn("Analytics cache read failed, computing live", "key", cacheKey, "err", err)
	} else if entry != nil {
		result := &dto.PostAnalyticsDTO{}
		if err = json.Unmarshal(entry.Data, result); err == nil {
			result.Cached = true
			return result, nil
		}
		log.Warn("Analytics cache entry corrupted, computing live", "key", cacheKey, "err", err)
	}

	totals, err := s.engagementRepo.SumByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	result := &dto.PostAnalyticsDTO{PostID: postID}
	if totals.EventCount == 0 {
		return result, nil
	}

	totalEngagement := totals.Likes + totals.Comments + totals.Shares
	rate := metrics.EngagementRate(totals.Likes, totals.Comments, totals.Shares, totals.Impressions)
	ctr := metrics.ClickThroughRate(totals.Clicks, totals.Impressions)
	avgPerEvent := float64(totalEngagement) / float64(totals.EventCount)

	// 未发布的帖子按 1 小时计，避免除零
	hours := 1.0
	if post.PublishedAt != nil {
		if elapsed := time.Since(*post.PublishedAt).Hours(); elapsed > 1 {
			hours = elapsed
		}
	}

	result = &dto.PostAnalyticsDTO{
		PostID:               postID,
		Likes:                totals.Likes,
		Comments:             totals.Comments,
		Shares:               totals.Shares,
		Clicks:               totals.Clicks,
		Impressions:          totals.Impressions,
		TotalEngagement:      totalEngagement,
		EngagementRate:       metrics.Round2(rate),
		ClickThroughRate:     metrics.Round2(ctr),
		AvgEngagementPerHour: metrics.Round2(float64(totalEngagement) / hours),
		PerformanceScore:     metrics.Round2(0.4*rate + 0.3*ctr + 0.3*avgPerEvent),
	}
	s.writeCache(ctx, cacheKey, post.UserID, result, consts.PostAnalyticsTTL)
	return result, nil
}

// parseDateRange 解析显式起止日期；任一缺失、非法或起止倒置都拒绝。
// 返回的窗口为 [start 当天 00:00, end 次日 00:00)
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, errStart := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	end, errEnd := time.ParseInLocation("2006-01-02", endDate, time.UTC)
	if errStart != nil || errEnd != nil || end.Before(start) {
		return time.Time{}, time.Time{}, ErrDateRangeInvalid
	}
	return util.GetMidnight(start), util.GetMidnight(end).AddDate(0, 0, 1), nil
}

func windowEngagementRate(engagement, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(engagement) / float64(impressions)
}

func compareMetric(current, previous float64) dto.MetricComparisonDTO {
	return dto.MetricComparisonDTO{
		Current:  current,
		Previous: previous,
		Change:   metrics.Round2(metrics.PercentChange(current, previous)),
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
