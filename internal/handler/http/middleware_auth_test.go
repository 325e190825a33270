package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// ---- Helpers ----

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return NewHandler(&service.Services{AuthService: authSvc}, config.Server{}, logger.Nop())
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ---- Table test ----

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		authenticateFn func(ctx context.Context, token string) (models.User, error)
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:   "valid token",
			header: "Bearer " + testToken,
			authenticateFn: func(_ context.Context, token string) (models.User, error) {
				return operator, nil
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:   "scheme is case-insensitive",
			header: "bearer " + testToken,
			authenticateFn: func(context.Context, string) (models.User, error) {
				return operator, nil
			},
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "scheme without token",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired or forged token",
			header: "Bearer forged",
			authenticateFn: func(context.Context, string) (models.User, error) {
				return models.User{}, fmt.Errorf("%w: token is expired", service.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "user lookup fails",
			header: "Bearer " + testToken,
			authenticateFn: func(context.Context, string) (models.User, error) {
				return models.User{}, fmt.Errorf("token subject lookup failed: %w", store.ErrExecutingQuery)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuthService(&mockAuthService{authenticateFn: tt.authenticateFn})

			var nextCalled bool
			var gotUser models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUser, _ = utils.GetUserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(h, tt.header, next)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantNextCalled {
				assert.Equal(t, operator, gotUser)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
				assert.JSONEq(t, `{"detail":"Could not validate credentials"}`, rr.Body.String())
			}
		})
	}
}

func TestAuth_PassesTokenToService(t *testing.T) {
	var got string
	h := newHandlerWithAuthService(&mockAuthService{
		authenticateFn: func(_ context.Context, token string) (models.User, error) {
			got = token
			return operator, nil
		},
	})

	executeAuth(h, "Bearer  abc.def.ghi ", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	assert.Equal(t, "abc.def.ghi", got)
}
