package job

import (
	"Pulseboard/internal/model"
	"Pulseboard/internal/pkg/consts"
	"Pulseboard/internal/pkg/logger"
	"Pulseboard/internal/pkg/redis"
	"Pulseboard/internal/repository"
	"context"
	log "log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

const simulationBatchLimit = 200

// EngagementSimulationJob 为已发布帖子合成互动事件，
// 按时段、周末、帖龄加权，模拟真实流量曲线
type EngagementSimulationJob struct {
	postRepo       repository.PostRepo
	engagementRepo repository.EngagementRepo
}

func NewEngagementSimulationJob(postRepo repository.PostRepo, engagementRepo repository.EngagementRepo) *EngagementSimulationJob {
	return &EngagementSimulationJob{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *EngagementSimulationJob) Run() {
	traceID := "job-engagement-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.EngagementSimulationLock, lockUUID, 30*time.Second, 1)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.EngagementSimulationLock, lockUUID)

	posts, err := s.postRepo.ListPublishedPosts(ctx, simulationBatchLimit)
	if err != nil {
		log.ErrorContext(ctx, "list published posts error", "err", err)
		return
	}
	if len(posts) == 0 {
		return
	}

	now := time.Now().UTC()
	events := make([]*model.EngagementEvent, 0, len(posts))
	for _, post := range posts {
		events = append(events, synthesizeEvent(post, now))
	}

	if err = s.engagementRepo.AppendBatch(ctx, events); err != nil {
		log.ErrorContext(ctx, "append simulated events error", "err", err)
		return
	}
	log.InfoContext(ctx, "EngagementSimulationJob finished", "events", len(events))
}

// synthesizeEvent 合成单条事件。曝光量不加权，互动量乘以三个系数
func synthesizeEvent(post *model.Post, now time.Time) *model.EngagementEvent {
	multiplier := timeMultiplier(now.Hour()) * weekendMultiplier(now.Weekday()) * ageMultiplier(post, now)

	likes := int64(float64(rand.Intn(51)) * multiplier)
	comments := int64(float64(rand.Intn(21)) * multiplier)
	shares := int64(float64(rand.Intn(16)) * multiplier)
	clicks := int64(float64(rand.Intn(101)) * multiplier)
	impressions := int64(100 + rand.Intn(901))

	return model.NewEngagementEvent(post.ID, post.UserID, post.Platform,
		likes, comments, shares, clicks, impressions, now)
}

// timeMultiplier 工作时段流量最高，晚间次之
func timeMultiplier(hour int) float64 {
	switch {
	case hour >= 9 && hour <= 17:
		return 1.5
	case hour >= 18 && hour <= 22:
		return 1.2
	default:
		return 0.7
	}
}

func weekendMultiplier(day time.Weekday) float64 {
	if day == time.Saturday || day == time.Sunday {
		return 0.6
	}
	return 1.0
}

// ageMultiplier 帖子越新互动越多，随帖龄衰减
func ageMultiplier(post *model.Post, now time.Time) float64 {
	publishedAt := post.CreatedAt
	if post.PublishedAt != nil {
		publishedAt = *post.PublishedAt
	}
	hours := now.Sub(publishedAt).Hours()
	switch {
	case hours < 12:
		return 1.5
	case hours < 48:
		return 1.2
	case hours < 120:
		return 0.8
	default:
		return 0.5
	}
}
