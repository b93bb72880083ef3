package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	followSvc service.UserFollowService
}

func NewUserFollowHandler(followSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{
		followSvc: followSvc,
	}
}

func (s *UserFollowHandler) ToggleFollow(c *gin.Context) {
	userID := c.GetUint64("user_id")

	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.followSvc.ToggleFollow(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserFollowHandler) GetSomeoneIsFollowing(c *gin.Context) {
	userID := c.GetUint64("user_id")

	followingID, err := strconv.ParseUint(c.Param("following_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	following, err := s.followSvc.IsFollowing(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"following": following})
}

func (s *UserFollowHandler) GetUserFollowersCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := s.followSvc.GetFollowerCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

func (s *UserFollowHandler) GetUserFollowingCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := s.followSvc.GetFollowingCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

func (s *UserFollowHandler) GetUserFollowers(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.WaterfallQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	followers, err := s.followSvc.GetMyFollowers(c.Request.Context(), userID, query.Limit, query.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followers)
}

func (s *UserFollowHandler) GetUserFollowings(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.WaterfallQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	followings, err := s.followSvc.GetMyFollowings(c.Request.Context(), userID, query.Limit, query.Offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, followings)
}
