// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// Each method field can be overridden per test case; calling a method whose
// field is nil panics, which fails the test.

type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.UserCreate) (models.User, error)
	loginFn        func(ctx context.Context, credentials models.Credentials) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	authenticateFn func(ctx context.Context, token string) (models.User, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.UserCreate) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	return m.loginFn(ctx, credentials)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (models.User, error) {
	return m.authenticateFn(ctx, token)
}

type mockLeadService struct {
	searchLeadsFn func(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error)
	createLeadsFn func(ctx context.Context, leads models.Batch[models.LeadCreate]) ([]models.Lead, error)
	getLeadFn     func(ctx context.Context, leadID int64) (models.Lead, error)
	updateLeadFn  func(ctx context.Context, leadID int64, update models.LeadUpdate) (models.Lead, error)
	deleteLeadFn  func(ctx context.Context, leadID int64) error
}

func (m *mockLeadService) SearchLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	return m.searchLeadsFn(ctx, filter)
}

func (m *mockLeadService) CreateLeads(ctx context.Context, leads models.Batch[models.LeadCreate]) ([]models.Lead, error) {
	return m.createLeadsFn(ctx, leads)
}

func (m *mockLeadService) GetLead(ctx context.Context, leadID int64) (models.Lead, error) {
	return m.getLeadFn(ctx, leadID)
}

func (m *mockLeadService) UpdateLead(ctx context.Context, leadID int64, update models.LeadUpdate) (models.Lead, error) {
	return m.updateLeadFn(ctx, leadID, update)
}

func (m *mockLeadService) DeleteLead(ctx context.Context, leadID int64) error {
	return m.deleteLeadFn(ctx, leadID)
}

type mockActivityService struct {
	addActivitiesFn  func(ctx context.Context, leadID int64, actor models.User, activities models.Batch[models.ActivityCreate]) ([]models.Activity, error)
	listActivitiesFn func(ctx context.Context, leadID int64) ([]models.Activity, error)
}

func (m *mockActivityService) AddActivities(ctx context.Context, leadID int64, actor models.User, activities models.Batch[models.ActivityCreate]) ([]models.Activity, error) {
	return m.addActivitiesFn(ctx, leadID, actor, activities)
}

func (m *mockActivityService) ListActivities(ctx context.Context, leadID int64) ([]models.Activity, error) {
	return m.listActivitiesFn(ctx, leadID)
}

type mockDashboardService struct {
	getDashboardFn func(ctx context.Context) (models.DashboardStats, error)
}

func (m *mockDashboardService) GetDashboard(ctx context.Context) (models.DashboardStats, error) {
	return m.getDashboardFn(ctx)
}

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testToken = "valid.jwt.token"

var operator = models.User{
	ID:        7,
	Username:  "alice",
	Email:     "alice@example.com",
	FirstName: "Alice",
	LastName:  "Smith",
	CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
}

// acceptingAuth returns an AuthService that resolves testToken to operator.
func acceptingAuth() *mockAuthService {
	return &mockAuthService{
		authenticateFn: func(_ context.Context, token string) (models.User, error) {
			if token != testToken {
				return models.User{}, service.ErrInvalidCredentials
			}
			return operator, nil
		},
	}
}

// newTestHandler builds a Handler over svcs with a Nop logger. Nil services
// are filled with empty mocks.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AuthService == nil {
		svcs.AuthService = acceptingAuth()
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, config.Server{}, logger.Nop())
}

// serve runs one request through the full router. A non-empty token is
// sent as a bearer credential.
func serve(t *testing.T, h *Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// withOperator stores operator in the request context the way the auth
// middleware does.
func withOperator(r *http.Request) *http.Request {
	return r.WithContext(utils.WithUser(r.Context(), operator))
}

// decodeDetail returns the "detail" member of an error body.
func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func ptr[T any](v T) *T {
	return &v
}
