package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-lead-keeper/internal/crypto"
	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validators.NewParameterError(validators.LocationQuery, "page", "bad", "int_parsing"), http.StatusUnprocessableEntity},
		{"wrapped validation", fmt.Errorf("create: %w", validators.NewValidationError()), http.StatusUnprocessableEntity},
		{"invalid credentials", fmt.Errorf("%w: %w", service.ErrInvalidCredentials, crypto.ErrInvalidToken), http.StatusUnauthorized},
		{"incorrect credentials", service.ErrIncorrectCredentials, http.StatusUnauthorized},
		{"empty batch", service.ErrEmptyBatch, http.StatusBadRequest},
		{"bulk insert", fmt.Errorf("%w: %v", service.ErrBulkInsertFailed, store.ErrConflict), http.StatusBadRequest},
		{"invalid json", fmt.Errorf("%w: eof", ErrInvalidJSON), http.StatusBadRequest},
		{"user exists", store.ErrUserAlreadyExists, http.StatusConflict},
		{"conflict", fmt.Errorf("%w: %w", store.ErrConflict, errors.New("fk")), http.StatusConflict},
		{"lead not found", store.ErrLeadNotFound, http.StatusNotFound},
		{"storage", fmt.Errorf("%w: %w", store.ErrExecutingQuery, errors.New("io")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestDetailFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want any
	}{
		{"lead not found", store.ErrLeadNotFound, "Lead not found"},
		{"conflict", store.ErrConflict, "Conflict: duplicate or invalid data"},
		{"user exists", store.ErrUserAlreadyExists, "Username or email already exists"},
		{"bulk insert", fmt.Errorf("%w: %v", service.ErrBulkInsertFailed, "NOT NULL constraint failed"), "Bulk insert failed: NOT NULL constraint failed"},
		{"unknown", errors.New("boom"), "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detailFromError(tt.err))
		})
	}
}

func TestDetailFromError_ValidationFields(t *testing.T) {
	err := validators.NewParameterError(validators.LocationPath, "lead_id", "bad", "int_parsing")

	detail := detailFromError(err)

	assert.Equal(t, err.Fields, detail)
}

func TestWriteError_BearerChallengeOnlyForAuthGate(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantChallenge bool
	}{
		{"auth gate", service.ErrInvalidCredentials, true},
		{"missing header", ErrEmptyAuthorizationHeader, true},
		{"login failure", service.ErrIncorrectCredentials, false},
		{"not found", store.ErrLeadNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err, "test")

			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantChallenge {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			} else {
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Bulk insert failed", capitalize("bulk insert failed"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Éa", capitalize("éa"))
}
