package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// GetUploadAuth 签发 MinIO 直传地址,对象名由服务端生成避免覆盖
func (s *MediaHandler) GetUploadAuth(c *gin.Context) {
	var req dto.MediaUploadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	ext := strings.ToLower(path.Ext(req.FileName))
	if ext == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	objectName := "media/" + uuid.NewString() + ext
	uploadURL, err := minio.PresignUpload(c.Request.Context(), objectName)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.MediaUploadAuthDTO{
		ObjectName: objectName,
		UploadURL:  uploadURL,
		PublicURL:  minio.GetPublicURL(objectName),
	})
}
