package dto

type MediaUploadDTO struct {
	FileName string `json:"fileName" binding:"required"`
}

// MediaUploadAuthDTO 预签名直传参数
type MediaUploadAuthDTO struct {
	ObjectName string `json:"objectName"`
	UploadURL  string `json:"uploadUrl"`
	PublicURL  string `json:"publicUrl"`
}
