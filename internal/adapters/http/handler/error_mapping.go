package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/adapters/http/middleware"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/ogurasousui/hr-records-api/internal/core/employee"
	"github.com/ogurasousui/hr-records-api/internal/core/report"
	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	"github.com/ogurasousui/hr-records-api/internal/core/storage"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "internal server error"

func toHTTPError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case employee.IsValidationError(err),
		errors.Is(err, skill.ErrInvalidName),
		errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, report.ErrInvalidMonths),
		errors.Is(err, report.ErrInvalidDays):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrUsernameAlreadyExists):
		return http.StatusBadRequest, "Username already exists"
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found"
	case errors.Is(err, skill.ErrSkillNotFound):
		return http.StatusNotFound, "Skill not found"
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, employee.ErrEmailAlreadyExists):
		return http.StatusInternalServerError, "An employee with this email address already exists"
	case errors.Is(err, employee.ErrDuplicateEntry), errors.Is(err, skill.ErrSkillAlreadyExists):
		return http.StatusInternalServerError, "A record with this information already exists"
	case errors.Is(err, employee.ErrDepartmentNotFound):
		return http.StatusInternalServerError, "Invalid reference: department does not exist"
	case errors.Is(err, employee.ErrInvalidReference):
		return http.StatusInternalServerError, "Invalid reference: related record does not exist"
	case errors.Is(err, employee.ErrValueTooLong):
		return http.StatusInternalServerError, "Data too long for one or more fields"
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable, "database is temporarily unavailable"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// respondError はエラーをログに残し、分類済みのステータスと {error} を返します。
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	code, message := toHTTPError(err)
	logError(c, logger, code, err)
	c.JSON(code, gin.H{"error": message})
}

func logError(c *gin.Context, logger logrus.FieldLogger, code int, err error) {
	_ = c.Error(err)
	entry := logger.WithFields(logrus.Fields{
		"request_id": middleware.RequestIDFrom(c),
		"path":       c.FullPath(),
		"status":     code,
	}).WithError(err)
	if code >= http.StatusInternalServerError {
		entry.Error("request failed")
		return
	}
	entry.Debug("request rejected")
}
