package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/sirupsen/logrus"
)

const claimsKey = "auth_claims"

// ErrMissingAuthHeader は Authorization ヘッダーが無いことを表します。
var ErrMissingAuthHeader = errors.New("missing Authorization header")

// SessionVerifier はセッショントークンを検証します。
type SessionVerifier interface {
	VerifySession(token string) (*auth.Claims, error)
}

// Auth は Bearer トークンを検証し、クレームをコンテキストに格納します。
func Auth(verifier SessionVerifier, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c)
		if err != nil {
			logger.WithField("request_id", RequestIDFrom(c)).WithError(err).Warn("auth: missing or malformed token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		claims, err := verifier.VerifySession(token)
		if err != nil {
			logger.WithField("request_id", RequestIDFrom(c)).WithError(err).Warn("auth: invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole はクレームのロールが allowed のいずれかであることを要求します。Auth の後に置きます。
func RequireRole(allowed ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}
		if !claims.Role.Allows(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// ClaimsFrom は Auth が格納したクレームを返します。
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// BearerToken は Authorization ヘッダーから Bearer トークンを取り出します。
func BearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", auth.ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}
