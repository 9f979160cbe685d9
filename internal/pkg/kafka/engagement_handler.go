package kafka

import (
	"Pulseboard/internal/model"
	"Pulseboard/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// EngagementMessage 外部平台回传的互动事件。
// user_id / platform 以库内帖子为准，消息里的值只作参考
type EngagementMessage struct {
	PostID      uint64    `json:"post_id"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	Shares      int64     `json:"shares"`
	Clicks      int64     `json:"clicks"`
	Impressions int64     `json:"impressions"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type EngagementHandler struct {
	postRepo       repository.PostRepo
	engagementRepo repository.EngagementRepo
}

func NewEngagementHandler(postRepo repository.PostRepo, engagementRepo repository.EngagementRepo) *EngagementHandler {
	return &EngagementHandler{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagement consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagement process batch error", "err", err)
		return err
	}
	return nil
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event EngagementMessage
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 格式错误的消息无法通过重试修复，记录后跳过
		log.ErrorContext(ctx, "unmarshal engagement message error", "err", err)
		return nil
	}

	post, err := s.postRepo.GetPost(ctx, event.PostID)
	if err != nil {
		return errors.Wrap(err, "load post for engagement event")
	}
	if post == nil {
		log.WarnContext(ctx, "engagement event for unknown post, skipped", "post_id", event.PostID)
		return nil
	}

	recordedAt := event.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	record := model.NewEngagementEvent(post.ID, post.UserID, post.Platform,
		event.Likes, event.Comments, event.Shares, event.Clicks, event.Impressions, recordedAt)
	if err = s.engagementRepo.Append(ctx, record); err != nil {
		return errors.Wrap(err, "append engagement event")
	}

	log.InfoContext(ctx, "engagement event ingested", "post_id", post.ID, "user_id", post.UserID)
	return nil
}
