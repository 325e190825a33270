package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-lead-keeper/internal/validators"
	"github.com/MKhiriev/go-lead-keeper/models"
)

const leadIDParam = "leadID"

// decodeJSON reads the request body into dst. Malformed JSON yields
// [ErrInvalidJSON]; well-formed JSON of the wrong shape yields a
// [validators.ValidationError] located under "body".
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	case errors.Is(err, io.EOF):
		return validators.NewValidationError(models.FieldError{
			Loc:  []any{validators.LocationBody},
			Msg:  "Field required",
			Type: "missing",
		})
	case errors.As(err, &typeErr):
		loc := []any{validators.LocationBody}
		if typeErr.Field != "" {
			for _, part := range strings.Split(typeErr.Field, ".") {
				loc = append(loc, part)
			}
		}
		return validators.NewValidationError(models.FieldError{
			Loc:  loc,
			Msg:  fmt.Sprintf("Input should be a valid %s", typeErr.Type.Kind()),
			Type: "type_error",
		})
	default:
		return validators.NewValidationError(models.FieldError{
			Loc:  []any{validators.LocationBody},
			Msg:  capitalize(err.Error()),
			Type: "value_error",
		})
	}
}

// decodeCredentialsForm reads the OAuth2 password-flow form.
func decodeCredentialsForm(r *http.Request) (models.Credentials, error) {
	if err := r.ParseForm(); err != nil {
		return models.Credentials{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}
	return models.Credentials{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}, nil
}

// leadIDFromPath parses the {leadID} URL parameter.
func leadIDFromPath(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, leadIDParam)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validators.NewParameterError(validators.LocationPath, "lead_id",
			"Input should be a valid integer, unable to parse string as an integer", "int_parsing")
	}
	return id, nil
}

// leadFilterFromQuery builds a search filter from the query string. Every
// invalid parameter is reported at once.
func leadFilterFromQuery(r *http.Request) (models.LeadFilter, error) {
	query := r.URL.Query()
	filter := models.LeadFilter{
		Query:  query.Get("q"),
		Status: query.Get("status"),
		Source: query.Get("source"),
		Page:   models.DefaultPage,
		Size:   models.DefaultPageSize,
	}

	result := validators.NewValidationError()

	parseInt := func(name string) (int64, bool) {
		raw := query.Get(name)
		if raw == "" {
			return 0, false
		}
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			result.Merge(validators.NewParameterError(validators.LocationQuery, name,
				"Input should be a valid integer, unable to parse string as an integer", "int_parsing"))
			return 0, false
		}
		return v, true
	}

	if v, ok := parseInt("min_budget"); ok {
		filter.MinBudget = &v
	}
	if v, ok := parseInt("max_budget"); ok {
		filter.MaxBudget = &v
	}

	positive := func(name string, dst *uint64) {
		v, ok := parseInt(name)
		if !ok {
			return
		}
		if v < 1 {
			result.Merge(validators.NewParameterError(validators.LocationQuery, name,
				"Input should be greater than or equal to 1", "greater_than_equal"))
			return
		}
		*dst = uint64(v)
	}
	positive("page", &filter.Page)
	positive("size", &filter.Size)

	if len(result.Fields) > 0 {
		return models.LeadFilter{}, result
	}
	return filter, nil
}
