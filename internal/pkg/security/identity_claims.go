package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Inkstone"
	JWTExpirationTime        = time.Hour * 24
)

// IdentityClaims 身份提供方签发的 Token 所携带的用户信息
type IdentityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// TokenIdentifier 返回身份提供方的唯一用户标识
func (c *IdentityClaims) TokenIdentifier() string {
	if c.Issuer == "" {
		return c.Subject
	}
	return c.Issuer + "|" + c.Subject
}
