package middleware

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/identity"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/service"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const identityCacheTTL = 15 * time.Minute

// AuthMiddleware 验证身份 Token，首次见到的身份会落库建档
func AuthMiddleware(userSvc service.UserService, idClient identity.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := resolveUserID(c, tokenString, userSvc, idClient)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		newCtx := context.WithValue(c.Request.Context(), "user_id", userID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// AuthOptionalMiddleware 可选鉴权：解析成功注入 UID，失败或缺失则 UID 为 0
func AuthOptionalMiddleware(userSvc service.UserService, idClient identity.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Set("user_id", uint64(0))
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := resolveUserID(c, tokenString, userSvc, idClient)
		if err != nil {
			c.Set("user_id", uint64(0))
		} else {
			c.Set("user_id", userID)
			newCtx := context.WithValue(c.Request.Context(), "user_id", userID)
			c.Request = c.Request.WithContext(newCtx)
		}

		c.Next()
	}
}

// resolveUserID Token 签名到用户 ID 的映射缓存在 Redis，未命中时走建档流程
func resolveUserID(c *gin.Context, tokenString string, userSvc service.UserService, idClient identity.Client) (uint64, error) {
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return 0, err
	}

	cacheKey := consts.IdentityTokenKey + signature
	if cached, err := redis.GetValue(c.Request.Context(), cacheKey); err == nil && cached != "" {
		if userID, err := strconv.ParseUint(cached, 10, 64); err == nil {
			return userID, nil
		}
	}

	claims, err := security.ValidateToken(tokenString)
	if err != nil {
		return 0, err
	}

	info := &identity.UserInfo{
		Subject: claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}

	// Token 里没有档案字段时回源身份提供方
	if info.Name == "" && idClient != nil {
		if fetched, err := idClient.FetchUserInfo(c.Request.Context(), tokenString); err == nil {
			info = fetched
		}
	}

	user, err := userSvc.StoreFromIdentity(c.Request.Context(), info, claims.TokenIdentifier())
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(c.Request.Context(), cacheKey, user.ID, identityCacheTTL)
	return user.ID, nil
}
