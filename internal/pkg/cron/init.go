package cron

import log "log/slog"

// InitCron 注册全部定时任务并启动调度器
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("Cron jobs scheduled")
	return nil
}
