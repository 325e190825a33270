package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, resolves it to a
// user via [service.AuthService.Authenticate] and stores that user in the
// request context under [utils.UserCtxKey] before delegating to the next
// handler.
//
// Every rejection is answered with 401, a "WWW-Authenticate: Bearer"
// challenge and the detail "Could not validate credentials", whether the
// header is missing, malformed, the token is invalid or expired, or its
// subject no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader, "*Handler.auth")
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidCredentials, err), "*Handler.auth")
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			writeError(w, r, err, "*Handler.auth")
			return
		}

		log.Debug().Int64("user_id", user.ID).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, user)))
	})
}

// currentUser returns the user stored by [Handler.auth].
func currentUser(r *http.Request) (models.User, error) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		return models.User{}, ErrNoUserInContext
	}
	return user, nil
}
