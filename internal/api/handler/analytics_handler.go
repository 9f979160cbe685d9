package handler

import (
	"Pulseboard/internal/pkg/response"
	"Pulseboard/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
	}
}

func (s *AnalyticsHandler) GetOptimalPostingTimes(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.GetOptimalPostingTimes(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) GetEngagementTrends(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.GetEngagementTrends(c.Request.Context(), userID,
		c.Query("period"), c.Query("granularity"), c.Query("metric"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) GetPlatformPerformance(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.GetPlatformPerformance(c.Request.Context(), userID, c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) GetTopPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.GetTopPosts(c.Request.Context(), userID, c.Query("limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) GetPerformanceComparison(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.GetPerformanceComparison(c.Request.Context(), userID,
		c.Query("start_date"), c.Query("end_date"), c.Query("platform"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) GetRecentOverview(c *gin.Context) {
	userID := c.GetUint64("user_id")
	report, err := s.analyticsSvc.GetRecentOverview(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

func (s *AnalyticsHandler) GetPostAnalytics(c *gin.Context) {
	userID := c.GetUint64("user_id")
	roles := c.GetStringSlice("roles")
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	report, err := s.analyticsSvc.GetPostAnalytics(c.Request.Context(), userID, roles, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}
