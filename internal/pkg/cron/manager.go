package cron

import (
	"Pulseboard/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine                  *cron.Cron
	publishPostJob          *job.PublishPostJob
	engagementSimulationJob *job.EngagementSimulationJob
	eventRetentionJob       *job.EventRetentionJob
}

func NewCronManager(
	publishPostJob *job.PublishPostJob,
	engagementSimulationJob *job.EngagementSimulationJob,
	eventRetentionJob *job.EventRetentionJob,
) *Manager {
	return &Manager{
		engine:                  cron.New(cron.WithSeconds()),
		publishPostJob:          publishPostJob,
		engagementSimulationJob: engagementSimulationJob,
		eventRetentionJob:       eventRetentionJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@every 1m", s.publishPostJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 30s", s.engagementSimulationJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@daily", s.eventRetentionJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
