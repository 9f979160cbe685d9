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

const publishBatchLimit = 200

// PublishPostJob 将到期的 scheduled 帖子置为 published
type PublishPostJob struct {
	postRepo repository.PostRepo
}

func NewPublishPostJob(postRepo repository.PostRepo) *PublishPostJob {
	return &PublishPostJob{
		postRepo: postRepo,
	}
}

func (s *PublishPostJob) Run() {
	traceID := "job-publish-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.PublishPostsLock, lockUUID, time.Minute, 1)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.PublishPostsLock, lockUUID)

	s.publishDue(ctx, time.Now().UTC())
}

// publishDue 发布所有到期帖子，单帖失败只标记该帖不中断批次
func (s *PublishPostJob) publishDue(ctx context.Context, now time.Time) {
	posts, err := s.postRepo.ListDuePosts(ctx, now, publishBatchLimit)
	if err != nil {
		log.ErrorContext(ctx, "list due posts error", "err", err)
		return
	}
	if len(posts) == 0 {
		return
	}

	published := 0
	for _, post := range posts {
		publishedAt := now
		err = s.postRepo.UpdatePostStatus(ctx, post.ID, consts.PostStatusPublished, &publishedAt, nil)
		if err != nil {
			log.ErrorContext(ctx, "publish post error", "post_id", post.ID, "err", err)
			reason := err.Error()
			if failErr := s.postRepo.UpdatePostStatus(ctx, post.ID, consts.PostStatusFailed, nil, &reason); failErr != nil {
				log.ErrorContext(ctx, "mark post failed error", "post_id", post.ID, "err", failErr)
			}
			continue
		}
		published++
	}

	log.InfoContext(ctx, "PublishPostJob finished", "due", len(posts), "published", published)
}
