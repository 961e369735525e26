package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	username string
	role     string

	session *auth.Session
	err     error
}

func (s *stubAuthService) Login(_ context.Context, username, _ string) (*auth.Session, error) {
	s.username = username
	return s.session, s.err
}

func (s *stubAuthService) Register(_ context.Context, username, _ string, role string) (*auth.Session, error) {
	s.username = username
	s.role = role
	return s.session, s.err
}

func (s *stubAuthService) VerifySession(token string) (*auth.Claims, error) {
	return stubVerifier{}.VerifySession(token)
}

func testSession() *auth.Session {
	return &auth.Session{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		User:      &auth.User{ID: 4, Username: "alice", Role: auth.RoleManager},
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.auth.session = testSession()

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "signed.jwt.token", body["token"])
	assert.Equal(t, "24h", body["expiresIn"])
	assert.Equal(t, map[string]any{"id": 4.0, "username": "alice", "role": "Manager"}, body["user"])
	assert.Equal(t, "alice", ts.auth.username)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username and password are required"}`, rec.Body.String())

	ts.auth.err = auth.ErrInvalidCredentials
	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.auth.session = testSession()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "alice", "password": "pw", "role": "Manager"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Manager", ts.auth.role)

	ts.auth.err = auth.ErrUsernameAlreadyExists
	rec = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "alice", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, rec.Body.String())

	ts.auth.err = auth.ErrInvalidRole
	rec = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "eve", "password": "pw", "role": "Admin"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Verify(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/auth/verify", hrToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["valid"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "HR", user["role"])
	assert.Equal(t, 1.0, user["id"])

	rec = ts.do(t, http.MethodGet, "/api/auth/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"valid":false,"error":"No token provided"}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/auth/verify", "expired", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"valid":false,"error":"Invalid or expired token"}`, rec.Body.String())
}
