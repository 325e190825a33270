package crypto

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, cfg config.App) TokenService {
	t.Helper()
	if cfg.TokenSignKey == "" {
		cfg.TokenSignKey = "test-secret"
	}
	if cfg.TokenAlgorithm == "" {
		cfg.TokenAlgorithm = "HS256"
	}
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = time.Hour
	}

	svc, err := NewTokenService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_UnsupportedAlgorithm(t *testing.T) {
	svc, err := NewTokenService(config.App{TokenSignKey: "k", TokenAlgorithm: "none", TokenDuration: time.Hour})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t, config.App{})

	token, err := svc.Issue("alice", 0)
	require.NoError(t, err)
	assert.Equal(t, models.TokenTypeBearer, token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	subject, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_IssueWithExplicitTTL(t *testing.T) {
	svc := newTestTokenService(t, config.App{})

	token, err := svc.Issue("alice", 5*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), token.ExpiresAt, 5*time.Second)
}

func TestTokenService_Validate_Failures(t *testing.T) {
	svc := newTestTokenService(t, config.App{})
	otherKey := newTestTokenService(t, config.App{TokenSignKey: "other-secret"})
	otherAlg := newTestTokenService(t, config.App{TokenAlgorithm: "HS512"})
	withIssuer := newTestTokenService(t, config.App{TokenIssuer: "crm"})
	otherIssuer := newTestTokenService(t, config.App{TokenIssuer: "elsewhere"})

	forged, err := otherKey.Issue("alice", 0)
	require.NoError(t, err)
	wrongAlg, err := otherAlg.Issue("alice", 0)
	require.NoError(t, err)
	wrongIss, err := otherIssuer.Issue("alice", 0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   TokenService
		token string
	}{
		{"bad signature", svc, forged.AccessToken},
		{"wrong algorithm", svc, wrongAlg.AccessToken},
		{"wrong issuer", withIssuer, wrongIss.AccessToken},
		{"malformed", svc, "not-a-jwt"},
		{"empty", svc, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := tt.svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := newTestTokenService(t, config.App{})

	token, err := svc.Issue("alice", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = svc.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
