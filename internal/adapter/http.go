package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

type httpCRMClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPCRMClient constructs a REST implementation of [CRMClient]. address
// may omit the scheme, in which case http is assumed.
func NewHTTPCRMClient(address string, timeout time.Duration, logger *logger.Logger) (CRMClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	return &httpCRMClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpCRMClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpCRMClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register posts to POST /api/users/register.
func (h *httpCRMClient) Register(ctx context.Context, user models.UserCreate) (models.User, error) {
	var registered models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(user).
		SetResult(&registered).
		Post("/api/users/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return registered, nil
}

// Login posts to POST /api/users/login and stores the issued token.
func (h *httpCRMClient) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	var token models.Token

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&token).
		Post("/api/users/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	h.SetToken(token.AccessToken)
	h.logger.Debug().Str("username", credentials.Username).Msg("logged in")

	return token, nil
}

func (h *httpCRMClient) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).
		SetResult(&user).
		Get("/api/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpCRMClient) CreateLeads(ctx context.Context, leads []models.LeadCreate) ([]models.Lead, error) {
	var created []models.Lead

	resp, err := h.authedRequest(ctx).
		SetBody(leads).
		SetResult(&created).
		Post("/api/leads")
	if err != nil {
		return nil, fmt.Errorf("create leads request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return created, nil
}

func (h *httpCRMClient) AddActivities(ctx context.Context, leadID int64, activities []models.ActivityCreate) ([]models.Activity, error) {
	var created []models.Activity

	resp, err := h.authedRequest(ctx).
		SetPathParam("leadID", strconv.FormatInt(leadID, 10)).
		SetBody(activities).
		SetResult(&created).
		Post("/api/leads/{leadID}/activities")
	if err != nil {
		return nil, fmt.Errorf("add activities request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return created, nil
}

func (h *httpCRMClient) Dashboard(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	resp, err := h.authedRequest(ctx).
		SetResult(&stats).
		Get("/api/dashboard")
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("dashboard request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DashboardStats{}, err
	}

	return stats, nil
}

func (h *httpCRMClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return resp.String(), nil
}

func (h *httpCRMClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
