package api

import "Pulseboard/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	PostHandler      *handler.PostHandler
	AnalyticsHandler *handler.AnalyticsHandler
}
