package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectNameFromURL(t *testing.T) {
	BucketName = "inkstone-media"

	assert.Equal(t, "media/abc.png",
		ObjectNameFromURL("http://minio.local:9000/inkstone-media/media%2Fabc.png"))
	assert.Equal(t, "media/abc.png",
		ObjectNameFromURL("https://minio.local/inkstone-media/media/abc.png"))

	// 其它桶或外部链接不归本服务管理
	assert.Equal(t, "", ObjectNameFromURL("https://minio.local/other-bucket/media/abc.png"))
	assert.Equal(t, "", ObjectNameFromURL("https://example.com/image.png"))
	assert.Equal(t, "", ObjectNameFromURL("://bad url"))
}
