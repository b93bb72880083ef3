package minio

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// PresignUpload 生成一个限时的预签名上传 URL
func PresignUpload(ctx context.Context, objectName string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	expires := time.Duration(config.Cfg.MinIO.UploadExpires) * time.Second
	if expires <= 0 {
		expires = 10 * time.Minute
	}

	presignedURL, err := Client.PresignedPutObject(ctx, BucketName, objectName, expires)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}

	return presignedURL.String(), nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// ObjectNameFromURL 从公共访问 URL 反解对象名，非本桶的 URL 返回空串
func ObjectNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	prefix := "/" + BucketName + "/"
	if !strings.HasPrefix(u.Path, prefix) {
		return ""
	}

	objectName, err := url.PathUnescape(u.Path[len(prefix):])
	if err != nil {
		return ""
	}
	return objectName
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	publicURL := fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.Endpoint, BucketName, url.PathEscape(objectName))
	return publicURL
}
