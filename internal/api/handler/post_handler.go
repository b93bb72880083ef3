package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// CreatePost 保存草稿或直接发布,同一作者复用唯一草稿位
func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	postID, err := s.postSvc.CreateOrUpdatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": postID})
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postSvc.UpdatePost(c.Request.Context(), userID, postID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetDraft 拉取当前用户的草稿,没有草稿时返回 null
func (s *PostHandler) GetDraft(c *gin.Context) {
	userID := c.GetUint64("user_id")

	post, err := s.postSvc.GetDraftPost(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetMyPost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.GetMyPost(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetMyPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.MyPostsQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.GetMyPosts(c.Request.Context(), userID, query.Status, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GenerateDraft 用 LLM 按主题生成一段草稿正文
func (s *PostHandler) GenerateDraft(c *gin.Context) {
	var req dto.GenerateDraftDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	content, err := s.postSvc.GenerateDraft(c.Request.Context(), req.Topic)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"content": content})
}
