package http

import (
	"net/http"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var userCreate models.UserCreate
	if err := decodeJSON(r, &userCreate); err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, userCreate)
	if err != nil {
		writeError(w, r, err, "*Handler.register")
		return
	}

	log.Info().Int64("user_id", registeredUser.ID).Msg("user registered")

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

// token is the OAuth2 password-flow endpoint; it reads a form-encoded body.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	credentials, err := decodeCredentialsForm(r)
	if err != nil {
		writeError(w, r, err, "*Handler.token")
		return
	}

	h.issueToken(w, r, credentials, "*Handler.token")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(r, &credentials); err != nil {
		writeError(w, r, err, "*Handler.login")
		return
	}

	h.issueToken(w, r, credentials, "*Handler.login")
}

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, credentials models.Credentials, funcName string) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	foundUser, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err, funcName)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		writeError(w, r, err, funcName)
		return
	}

	log.Debug().Int64("user_id", foundUser.ID).Time("expires_at", token.ExpiresAt).Msg("token issued")

	utils.WriteJSON(w, token, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		writeError(w, r, err, "*Handler.me")
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}
