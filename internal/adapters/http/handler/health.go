package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pgdb "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 3 * time.Second

// HealthHandler はプロセスとデータベースの死活を返します。
type HealthHandler struct {
	db          pgdb.Pinger
	environment string
	logger      logrus.FieldLogger
	now         func() time.Time
}

// NewHealthHandler は HealthHandler を生成します。
func NewHealthHandler(db pgdb.Pinger, environment string, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{db: db, environment: environment, logger: logger, now: time.Now}
}

// Health はプロセスが応答可能かを返します。
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "Server is running",
		"timestamp":   h.now().UTC(),
		"environment": h.environment,
	})
}

// Ping はデータベースに到達できるかを返します。
func (h *HealthHandler) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if _, err := pgdb.HealthCheck(ctx, h.db); err != nil {
		h.logger.WithError(err).Warn("database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "timestamp": h.now().UTC()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": h.now().UTC()})
}
