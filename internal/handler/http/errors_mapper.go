package http

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/internal/service"
	"github.com/MKhiriev/go-lead-keeper/internal/store"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/internal/validators"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// Every error reaching a handler must match at most one key of these maps.
var errorStatusMap = map[error]int{
	ErrEmptyAuthorizationHeader: http.StatusUnauthorized,
	ErrNoUserInContext:          http.StatusUnauthorized,
	ErrInvalidJSON:              http.StatusBadRequest,
	ErrInvalidForm:              http.StatusBadRequest,

	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrIncorrectCredentials:  http.StatusUnauthorized,
	service.ErrEmptyBatch:            http.StatusBadRequest,
	service.ErrBulkInsertFailed:      http.StatusBadRequest,
	service.ErrPasswordHashing:       http.StatusInternalServerError,
	service.ErrTokenCreationFailed:   http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrConflict:          http.StatusConflict,
	store.ErrLeadNotFound:      http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
}

var errorDetailMap = map[error]string{
	ErrEmptyAuthorizationHeader: "Could not validate credentials",
	ErrNoUserInContext:          "Could not validate credentials",
	ErrInvalidJSON:              "Invalid JSON was passed",
	ErrInvalidForm:              "Invalid form data was passed",

	service.ErrInvalidCredentials:   "Could not validate credentials",
	service.ErrIncorrectCredentials: "Invalid username or password",
	service.ErrEmptyBatch:           "Empty list provided",

	store.ErrUserAlreadyExists: "Username or email already exists",
	store.ErrConflict:          "Conflict: duplicate or invalid data",
	store.ErrLeadNotFound:      "Lead not found",
}

func statusFromError(err error) int {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// detailFromError returns the "detail" member of the error body: the field
// list of a validation error or a human readable message.
func detailFromError(err error) any {
	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}

	// the cause of a failed list insert is part of the message
	if errors.Is(err, service.ErrBulkInsertFailed) {
		return capitalize(err.Error())
	}

	for target, detail := range errorDetailMap {
		if errors.Is(err, target) {
			return detail
		}
	}
	return http.StatusText(statusFromError(err))
}

// writeError logs err and renders it as an [models.ErrorResponse]. Auth gate
// failures carry the bearer challenge.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName string) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	if isAuthGateError(err) {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	utils.WriteJSON(w, models.ErrorResponse{Detail: detailFromError(err)}, status)
}

func isAuthGateError(err error) bool {
	return errors.Is(err, service.ErrInvalidCredentials) ||
		errors.Is(err, ErrEmptyAuthorizationHeader) ||
		errors.Is(err, ErrNoUserInContext)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToUpper(r))
	b.WriteString(s[size:])
	return b.String()
}
