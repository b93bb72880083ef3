package identity

import (
	"Inkstone/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserInfo 身份提供方 userinfo 端点返回的用户档案
type UserInfo struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Client 身份提供方客户端
type Client interface {
	FetchUserInfo(ctx context.Context, rawToken string) (*UserInfo, error)
}

type ClientImpl struct {
	httpClient *resty.Client
	userinfoURL string
}

func NewClient(cfg config.IdentityConfig) Client {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second)

	return &ClientImpl{
		httpClient:  client,
		userinfoURL: cfg.UserinfoURL,
	}
}

// FetchUserInfo 用原始 Token 换取身份提供方侧的用户档案
func (s *ClientImpl) FetchUserInfo(ctx context.Context, rawToken string) (*UserInfo, error) {
	var info UserInfo

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(rawToken).
		SetResult(&info).
		Get(s.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("请求 userinfo 失败: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("userinfo 返回异常状态: %d", resp.StatusCode())
	}

	if info.Subject == "" {
		return nil, fmt.Errorf("userinfo 响应缺少 sub 字段")
	}

	return &info, nil
}
