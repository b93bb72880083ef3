package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

func (s *FeedHandler) GetFeed(c *gin.Context) {
	var query dto.WaterfallQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.feedSvc.GetFeed(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetTrending 近 7 天热度榜,带短 TTL 缓存
func (s *FeedHandler) GetTrending(c *gin.Context) {
	var query dto.LimitQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.feedSvc.GetTrendingPosts(c.Request.Context(), query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetSuggestedUsers 推荐关注,未登录时不做排除
func (s *FeedHandler) GetSuggestedUsers(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	var query dto.LimitQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	users, err := s.feedSvc.GetSuggestedUsers(c.Request.Context(), viewerID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *FeedHandler) GetUserPosts(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var query dto.WaterfallQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.feedSvc.GetPublishedPostsByUser(c.Request.Context(), username, query.Limit, query.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetUserPost 文章详情,草稿只对作者本人可见
func (s *FeedHandler) GetUserPost(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	username := c.Param("username")
	if username == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.feedSvc.GetPublishedPost(c.Request.Context(), username, postID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *FeedHandler) SearchPosts(c *gin.Context) {
	var query dto.SearchQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.feedSvc.SearchPosts(c.Request.Context(), query.Keyword, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
