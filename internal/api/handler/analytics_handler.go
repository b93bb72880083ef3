package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

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

func (s *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID := c.GetUint64("user_id")

	analytics, err := s.analyticsSvc.GetAnalytics(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, analytics)
}

func (s *AnalyticsHandler) GetRecentActivity(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.LimitQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	entries, err := s.analyticsSvc.RecentActivity(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, entries)
}

func (s *AnalyticsHandler) GetPostsWithAnalytics(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.LimitQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.analyticsSvc.GetPostsWithAnalytics(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
