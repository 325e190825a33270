package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// RequestValidator implements [Validator] on top of go-playground/validator
// struct tags. Field errors are located by JSON names under the "body" root;
// slice elements get their index in the location.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs a [RequestValidator] reporting JSON field
// names.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notnull", notNull)
	v.RegisterStructValidation(leadCreatePresence, models.LeadCreate{})

	return &RequestValidator{validate: v}
}

// notNull fails an optional field that was sent as an explicit null.
func notNull(fl validator.FieldLevel) bool {
	field, ok := fl.Field().Interface().(interface{ IsNull() bool })
	return !ok || !field.IsNull()
}

// leadCreatePresence reports the keys a decoded lead payload left out or
// sent as null.
func leadCreatePresence(sl validator.StructLevel) {
	lead, ok := sl.Current().Interface().(models.LeadCreate)
	if !ok {
		return
	}
	for _, rule := range lead.Invalid() {
		sl.ReportError("", rule.Field, rule.Field, rule.Rule, "")
	}
}

// Validate checks a struct, a pointer to one, or a slice of them. When
// fields are given only those Go struct fields are validated.
func (r *RequestValidator) Validate(ctx context.Context, value any, fields ...string) error {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrUnsupportedType
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return r.validateStruct(ctx, rv.Interface(), []any{LocationBody}, fields)
	case reflect.Slice, reflect.Array:
		result := NewValidationError()
		for i := range rv.Len() {
			err := r.validateStruct(ctx, rv.Index(i).Interface(), []any{LocationBody, i}, fields)
			if err == nil {
				continue
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				return err
			}
			result.Merge(vErr)
		}
		if len(result.Fields) > 0 {
			return result
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (r *RequestValidator) validateStruct(ctx context.Context, value any, location []any, fields []string) error {
	var err error
	if len(fields) > 0 {
		err = r.validate.StructPartialCtx(ctx, value, fields...)
	} else {
		err = r.validate.StructCtx(ctx, value)
	}
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		logger.FromContext(ctx).Err(err).Str("func", "RequestValidator.Validate").Msg("unexpected validation failure")
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	result := NewValidationError()
	for _, fe := range fieldErrs {
		loc := append(append(make([]any, 0, len(location)+1), location...), fe.Field())
		msg, errType := describe(fe)
		result.Fields = append(result.Fields, models.FieldError{Loc: loc, Msg: msg, Type: errType})
	}
	return result
}

// describe renders a failed rule as a client-facing message and error type.
func describe(fe validator.FieldError) (string, string) {
	switch fe.Tag() {
	case "required":
		return "Field required", "missing"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String should have at least %s characters", fe.Param()), "string_too_short"
		}
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), "greater_than_equal"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String should have at most %s characters", fe.Param()), "string_too_long"
		}
		return fmt.Sprintf("Input should be less than or equal to %s", fe.Param()), "less_than_equal"
	case "gte":
		return fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()), "greater_than_equal"
	case "notnull":
		switch valueKind(fe) {
		case reflect.Bool:
			return "Input should be a valid boolean", "bool_type"
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return "Input should be a valid integer", "int_type"
		default:
			return "Input should be a valid string", "string_type"
		}
	default:
		return fmt.Sprintf("Value failed the %q rule", fe.Tag()), "value_error"
	}
}

// valueKind returns the kind held by an optional field, or the field's own
// kind for plain values.
func valueKind(fe validator.FieldError) reflect.Kind {
	rv := reflect.ValueOf(fe.Value())
	if rv.Kind() != reflect.Struct {
		return fe.Kind()
	}
	if held := rv.FieldByName("Value"); held.IsValid() && held.Kind() == reflect.Pointer {
		return held.Type().Elem().Kind()
	}
	return fe.Kind()
}
