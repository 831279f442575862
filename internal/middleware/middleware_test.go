package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"fourcut/internal/domain/errs"
	"fourcut/internal/domain/models"
	jwtlib "fourcut/internal/lib/jwt"
	"fourcut/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, memberID int64) (models.Member, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(models.Member), args.Error(1)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) AllowRequest(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func newIdentityServer(resolver MemberResolver, optional bool) *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int64{"member_id": MemberID(c)})
	}, JWT(testSecret, optional), Identity(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})), resolver, !optional))
	return e
}

func bearer(t *testing.T, memberID int64, secret string) string {
	t.Helper()
	token, err := jwtlib.NewToken(memberID, secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name       string
		optional   bool
		auth       func(t *testing.T) string
		mockSetup  func(r *mockResolver)
		wantStatus int
		wantMember int64
	}{
		{
			name:     "valid token",
			optional: false,
			auth:     func(t *testing.T) string { return bearer(t, 7, testSecret) },
			mockSetup: func(r *mockResolver) {
				r.On("Resolve", mock.Anything, int64(7)).Return(models.Member{ID: 7, Status: models.MemberActive}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantMember: 7,
		},
		{
			name:       "missing token on protected route",
			optional:   false,
			auth:       func(t *testing.T) string { return "" },
			mockSetup:  func(r *mockResolver) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing token on public route",
			optional:   true,
			auth:       func(t *testing.T) string { return "" },
			mockSetup:  func(r *mockResolver) {},
			wantStatus: http.StatusOK,
			wantMember: 0,
		},
		{
			name:       "token signed with another key",
			optional:   true,
			auth:       func(t *testing.T) string { return bearer(t, 7, "other-secret") },
			mockSetup:  func(r *mockResolver) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:     "deleted member",
			optional: false,
			auth:     func(t *testing.T) string { return bearer(t, 7, testSecret) },
			mockSetup: func(r *mockResolver) {
				r.On("Resolve", mock.Anything, int64(7)).Return(models.Member{}, errs.ErrMemberNotFound).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:     "resolver failure",
			optional: false,
			auth:     func(t *testing.T) string { return bearer(t, 7, testSecret) },
			mockSetup: func(r *mockResolver) {
				r.On("Resolve", mock.Anything, int64(7)).Return(models.Member{}, errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(mockResolver)
			tt.mockSetup(resolver)
			e := newIdentityServer(resolver, tt.optional)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if auth := tt.auth(t); auth != "" {
				req.Header.Set(echo.HeaderAuthorization, auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]int64
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantMember, body["member_id"])
			}
			if tt.wantStatus == http.StatusUnauthorized {
				var body response.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, response.CodeAuthenticationRequired, body.Error)
			}
			resolver.AssertExpectations(t)
		})
	}
}

func TestRateLimit(t *testing.T) {
	newServer := func(limiter Limiter) *echo.Echo {
		e := echo.New()
		handler := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
		withMember := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(MemberContextKey, int64(3))
				return next(c)
			}
		}
		rl := RateLimit(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})), limiter, 5, time.Minute)
		e.POST("/write", handler, withMember, rl)
		e.GET("/read", handler, withMember, rl)
		return e
	}

	t.Run("reads are never limited", func(t *testing.T) {
		limiter := new(mockLimiter)
		rec := httptest.NewRecorder()
		newServer(limiter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/read", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		limiter.AssertNotCalled(t, "AllowRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("over the limit", func(t *testing.T) {
		limiter := new(mockLimiter)
		limiter.On("AllowRequest", mock.Anything, "ratelimit:member:3", 5, time.Minute).Return(false, nil).Once()

		rec := httptest.NewRecorder()
		newServer(limiter).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/write", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		limiter.AssertExpectations(t)
	})

	t.Run("limiter failure lets the request through", func(t *testing.T) {
		limiter := new(mockLimiter)
		limiter.On("AllowRequest", mock.Anything, "ratelimit:member:3", 5, time.Minute).
			Return(true, errors.New("redis down")).Once()

		rec := httptest.NewRecorder()
		newServer(limiter).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/write", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
