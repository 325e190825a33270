package validators

import (
	"errors"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-lead-keeper/models"
)

var ErrUnsupportedType = errors.New("unsupported type for validation")

// Location roots of a [models.FieldError].
const (
	LocationBody  = "body"
	LocationQuery = "query"
	LocationPath  = "path"
)

// ValidationError carries every failed rule of one request. Handlers render
// it as 422 with the field list as detail.
type ValidationError struct {
	Fields []models.FieldError
}

// NewValidationError builds a [ValidationError] from field errors.
func NewValidationError(fields ...models.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewParameterError reports a single invalid query or path parameter.
func NewParameterError(location, name, msg, errType string) *ValidationError {
	return NewValidationError(models.FieldError{
		Loc:  []any{location, name},
		Msg:  msg,
		Type: errType,
	})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if len(f.Loc) == 0 {
			parts = append(parts, f.Msg)
			continue
		}
		parts = append(parts, joinLocation(f.Loc)+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Merge appends the fields of other to e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	e.Fields = append(e.Fields, other.Fields...)
}

func joinLocation(loc []any) string {
	var b strings.Builder
	for i, part := range loc {
		if i > 0 {
			b.WriteByte('.')
		}
		switch v := part.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}
