// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the CRM HTTP API.
//
// The primary abstraction is [CRMClient]; [NewHTTPCRMClient] implements it
// over REST. Non-2xx responses are mapped to the sentinel errors in
// errors.go, so callers can branch with [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrUnauthorized] for 401) and read the server's detail from the
// wrapped message.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-lead-keeper/models"
)

// CRMClient talks to a running CRM server on behalf of one operator.
// Implementations attach the stored bearer token to every protected call.
type CRMClient interface {
	// SetToken stores the bearer token used by subsequent protected calls.
	SetToken(token string)

	// Token returns the stored bearer token, or "" before Login.
	Token() string

	Register(ctx context.Context, user models.UserCreate) (models.User, error)

	// Login exchanges credentials for a token and stores it via SetToken.
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)

	Me(ctx context.Context) (models.User, error)

	// CreateLeads sends the leads as one list request.
	CreateLeads(ctx context.Context, leads []models.LeadCreate) ([]models.Lead, error)

	// AddActivities sends the activities of one lead as one list request.
	AddActivities(ctx context.Context, leadID int64, activities []models.ActivityCreate) ([]models.Activity, error)

	Dashboard(ctx context.Context) (models.DashboardStats, error)

	Version(ctx context.Context) (string, error)
}
