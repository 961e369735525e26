package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeVerifier map[string]*auth.Claims

func (f fakeVerifier) VerifySession(token string) (*auth.Claims, error) {
	claims, ok := f[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return claims, nil
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	t.Parallel()

	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/", func(c *gin.Context) {
		seen = RequestIDFrom(c)
		c.Status(http.StatusNoContent)
	})

	rec := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	t.Parallel()

	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := serve(engine, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog_LevelFollowsStatus(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	engine := gin.New()
	engine.Use(RequestID(), AccessLog(logger))
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/ok", entry.Data["path"])
	assert.Equal(t, http.StatusOK, entry.Data["status"])

	serve(engine, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	engine := gin.New()
	engine.Use(Recovery(logger))
	engine.GET("/", func(c *gin.Context) { panic("boom") })

	rec := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}

func TestAuth(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	verifier := fakeVerifier{"good": {UserID: 5, Username: "hr", Role: auth.RoleHR}}

	engine := gin.New()
	engine.GET("/", Auth(verifier, logger), func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID})
	})

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"good", http.StatusUnauthorized},
		{"Basic good", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
		{"bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := serve(engine, req)
		assert.Equal(t, tc.want, rec.Code, tc.header)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	logger, _ := test.NewNullLogger()
	verifier := fakeVerifier{
		"hr":    {UserID: 1, Role: auth.RoleHR},
		"staff": {UserID: 2, Role: auth.RoleEmployee},
	}

	engine := gin.New()
	engine.GET("/reports", Auth(verifier, logger), RequireRole(auth.RoleHR, auth.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/unguarded", RequireRole(auth.RoleHR), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set("Authorization", "Bearer hr")
	assert.Equal(t, http.StatusOK, serve(engine, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set("Authorization", "Bearer staff")
	rec := serve(engine, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Insufficient permissions"}`, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(engine, httptest.NewRequest(http.MethodGet, "/unguarded", nil)).Code)
}
