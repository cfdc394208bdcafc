package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/showrunner/internal/domain"
	"github.com/Vovarama1992/showrunner/internal/models"
)

type fakeAuthService struct {
	tokens map[string]*models.User
	errOn  map[string]error
}

func (f *fakeAuthService) Signup(_ context.Context, _, _ string) (*models.User, error) {
	return nil, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (string, *models.User, error) {
	return "", nil, nil
}

func (f *fakeAuthService) Logout(_ context.Context, _ int) error { return nil }

func (f *fakeAuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	if err := f.errOn[token]; err != nil {
		return nil, err
	}
	if u := f.tokens[token]; u != nil {
		return u, nil
	}
	return nil, domain.ErrTokenInvalid
}

func protectedEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFrom(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"user_id": user.ID})
	})
}

func TestAuthMiddlewareAllowsValidToken(t *testing.T) {
	auth := &fakeAuthService{tokens: map[string]*models.User{
		"good-token": {ID: 42, Username: "alice", Role: "user"},
	}}
	handler := AuthMiddleware(auth)(protectedEcho())

	req := httptest.NewRequest("GET", "/anything", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	handler := AuthMiddleware(&fakeAuthService{})(protectedEcho())

	req := httptest.NewRequest("GET", "/anything", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	handler := AuthMiddleware(&fakeAuthService{})(protectedEcho())

	req := httptest.NewRequest("GET", "/anything", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	auth := &fakeAuthService{errOn: map[string]error{"stale": domain.ErrTokenExpired}}
	handler := AuthMiddleware(auth)(protectedEcho())

	req := httptest.NewRequest("GET", "/anything", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminOnly(next)

	adminReq := httptest.NewRequest("GET", "/admin/users", nil)
	adminCtx := context.WithValue(adminReq.Context(), userKey, &models.User{ID: 1, Role: "admin"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, adminReq.WithContext(adminCtx))
	assert.Equal(t, http.StatusOK, rec.Code)

	userReq := httptest.NewRequest("GET", "/admin/users", nil)
	userCtx := context.WithValue(userReq.Context(), userKey, &models.User{ID: 2, Role: "user"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, userReq.WithContext(userCtx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/users", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
