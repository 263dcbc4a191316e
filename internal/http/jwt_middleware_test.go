package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"robo-advisor/internal/domain"
	"robo-advisor/internal/service"
)

func protectedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(jwtSvc), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.UserID != "u1" {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func issueToken(t *testing.T, jwtSvc *service.JWTService) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken(domain.User{ID: "u1", Username: "alice", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestJWTAuthMiddleware_AllowsBearerToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, service.NewMemoryTokenRevocationStore())
	r := protectedRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtSvc))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_AllowsCookieToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, service.NewMemoryTokenRevocationStore())
	r := protectedRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: authCookie, Value: issueToken(t, jwtSvc)})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsMissingToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, service.NewMemoryTokenRevocationStore())
	r := protectedRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsRevokedToken(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, service.NewMemoryTokenRevocationStore())
	r := protectedRouter(jwtSvc)
	token := issueToken(t, jwtSvc)
	if err := jwtSvc.Revoke(context.Background(), token); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthMiddleware_RejectsGarbage(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, service.NewMemoryTokenRevocationStore())
	r := protectedRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

type failingRevocationStore struct{}

func (failingRevocationStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (failingRevocationStore) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

func TestJWTAuthMiddleware_StoreErrorFailsClosed(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", 15*time.Minute, failingRevocationStore{})
	r := protectedRouter(jwtSvc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtSvc))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
