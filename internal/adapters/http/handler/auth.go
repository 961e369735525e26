package handler

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/adapters/http/middleware"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/sirupsen/logrus"
)

// AuthService は資格情報の交換とセッション検証を行います。
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	Register(ctx context.Context, username, password, role string) (*auth.Session, error)
	VerifySession(token string) (*auth.Claims, error)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	Success   bool         `json:"success"`
	Token     string       `json:"token"`
	User      userResponse `json:"user"`
	ExpiresIn string       `json:"expiresIn"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// AuthHandler は認証エンドポイントの HTTP ハンドラーです。
type AuthHandler struct {
	svc    AuthService
	logger logrus.FieldLogger
}

// NewAuthHandler は AuthHandler を生成します。
func NewAuthHandler(svc AuthService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login は資格情報を検証し、セッショントークンを発行します。
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": session.User.ID,
		"role":    session.User.Role,
	}).Info("user logged in")
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Register はユーザーを登録し、セッショントークンを発行します。
func (h *AuthHandler) Register(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	session, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": session.User.ID,
		"role":    session.User.Role,
	}).Info("user registered")
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

// Verify は Bearer トークンを検証し、クレームを返します。
func (h *AuthHandler) Verify(c *gin.Context) {
	token, err := middleware.BearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "No token provided"})
		return
	}

	claims, err := h.svc.VerifySession(token)
	if err != nil {
		h.logger.WithError(err).Debug("session verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "user": claims})
}

func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return credentialsRequest{}, false
	}
	return req, true
}

func toSessionResponse(session *auth.Session) sessionResponse {
	return sessionResponse{
		Success: true,
		Token:   session.Token,
		User: userResponse{
			ID:       session.User.ID,
			Username: session.User.Username,
			Role:     string(session.User.Role),
		},
		ExpiresIn: fmt.Sprintf("%dh", int(math.Round(time.Until(session.ExpiresAt).Hours()))),
		ExpiresAt: session.ExpiresAt,
	}
}
