package job

import (
	"Pulseboard/internal/pkg/consts"
	"Pulseboard/internal/pkg/logger"
	"Pulseboard/internal/pkg/redis"
	"Pulseboard/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// EventRetentionJob 按保留窗口清理历史互动事件
type EventRetentionJob struct {
	engagementRepo repository.EngagementRepo
}

func NewEventRetentionJob(engagementRepo repository.EngagementRepo) *EventRetentionJob {
	return &EventRetentionJob{
		engagementRepo: engagementRepo,
	}
}

func (s *EventRetentionJob) Run() {
	traceID := "job-retention-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.EventRetentionLock, lockUUID, 10*time.Minute, 1)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.EventRetentionLock, lockUUID)

	cutoff := time.Now().UTC().AddDate(0, 0, -consts.EngagementRetentionDays)
	deleted, err := s.engagementRepo.PurgeBefore(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "purge engagement events error", "err", err)
		return
	}
	log.InfoContext(ctx, "EventRetentionJob finished", "cutoff", cutoff, "deleted", deleted)
}
