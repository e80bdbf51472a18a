package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ergolife/storefront/internal/infrastructure/auth"
	"github.com/ergolife/storefront/internal/infrastructure/config"
	"github.com/ergolife/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars",
		Expiration: expiration,
		Issuer:     "test-issuer",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, userID uint, role string) string {
	t.Helper()
	token, err := svc.GenerateToken(auth.GenerateTokenInput{UserID: userID, Email: "u@ergolife.com", Role: role})
	require.NoError(t, err)
	return token.AccessToken
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(mw...)
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetUserRole(c)})
	})
	return router
}

func doGet(router http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	router := protectedRouter(JWTAuthMiddleware(svc, nil))

	rec := doGet(router, issueToken(t, svc, 42, "USER"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"USER"}`, rec.Body.String())
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	expired := newTestJWTService(-time.Minute)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"wrong scheme", "Basic abc", dto.ErrCodeUnauthorized},
		{"empty bearer", "Bearer ", dto.ErrCodeUnauthorized},
		{"garbage token", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"expired token", "Bearer " + issueToken(t, expired, 1, "USER"), dto.ErrCodeTokenExpired},
	}

	router := protectedRouter(JWTAuthMiddleware(svc, nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			errInfo := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, errInfo.Code)
			assert.NotEmpty(t, errInfo.RequestID)
		})
	}
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	blacklist := auth.NewInMemoryTokenBlacklist()
	token := issueToken(t, svc, 7, "USER")

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	rec := doGet(protectedRouter(JWTAuthMiddleware(svc, blacklist)), token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeTokenRevoked, decodeError(t, rec).Code)
}

type failingBlacklist struct{}

func (failingBlacklist) AddToBlacklist(context.Context, string, time.Duration) error { return nil }
func (failingBlacklist) IsBlacklisted(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestJWTAuthMiddleware_BlacklistErrorFailsOpen(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	rec := doGet(protectedRouter(JWTAuthMiddleware(svc, failingBlacklist{})), issueToken(t, svc, 3, "USER"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_OnError(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	var got error
	router := protectedRouter(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: svc,
		OnError: func(c *gin.Context, err error) {
			got = err
			c.AbortWithStatus(http.StatusTeapot)
		},
	}))

	rec := doGet(router, "bogus")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.ErrorIs(t, got, auth.ErrInvalidToken)
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	router := protectedRouter(OptionalJWTAuthMiddleware(svc))

	t.Run("anonymous passes through", func(t *testing.T) {
		rec := doGet(router, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"user_id":0,"role":""}`, rec.Body.String())
	})

	t.Run("invalid token is ignored", func(t *testing.T) {
		rec := doGet(router, "bogus")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		rec := doGet(router, issueToken(t, svc, 9, "STAFF"))
		assert.JSONEq(t, `{"user_id":9,"role":"STAFF"}`, rec.Body.String())
	})
}

func TestRequireRoles(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	router := protectedRouter(JWTAuthMiddleware(svc, nil), RequireRoles("ADMIN", "staff"))

	tests := []struct {
		role string
		want int
	}{
		{"ADMIN", http.StatusOK},
		{"STAFF", http.StatusOK},
		{"USER", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := doGet(router, issueToken(t, svc, 1, tt.role))
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, dto.ErrCodeForbidden, decodeError(t, rec).Code)
			}
		})
	}

	t.Run("without authentication", func(t *testing.T) {
		rec := doGet(protectedRouter(RequireRoles("ADMIN")), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
