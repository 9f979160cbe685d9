package api

import (
	"Pulseboard/internal/api/middleware"
	"Pulseboard/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
				loggedGroup.GET("/me", group.UserHandler.GetUserInfo)
			}
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(middleware.AuthMiddleware())
		{
			postGroup.POST("", group.PostHandler.CreatePost)
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:post_id", group.PostHandler.DeletePost)

			// 单帖分析：归属校验在 service 内完成，ADMIN 可读任意帖子
			postGroup.GET("/:post_id/analytics", group.AnalyticsHandler.GetPostAnalytics)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		analyticsGroup.Use(middleware.AuthMiddleware())
		{
			analyticsGroup.GET("/overview", group.AnalyticsHandler.GetRecentOverview)
			analyticsGroup.GET("/optimal-times", group.AnalyticsHandler.GetOptimalPostingTimes)
			analyticsGroup.GET("/trends", group.AnalyticsHandler.GetEngagementTrends)

			performanceGroup := analyticsGroup.Group("/performance")
			{
				performanceGroup.GET("/platform", group.AnalyticsHandler.GetPlatformPerformance)
				performanceGroup.GET("/top-posts", group.AnalyticsHandler.GetTopPosts)
				performanceGroup.GET("/comparison", group.AnalyticsHandler.GetPerformanceComparison)
			}
		}
	}

	return r
}
