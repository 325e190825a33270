package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-lead-keeper/models"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrValidation,
	http.StatusInternalServerError: ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	detail := responseDetail(resp)

	if sentinel, ok := statusErrors[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), detail)
}

// responseDetail renders the "detail" member of an error body, falling back
// to the raw body and then to the status text.
func responseDetail(resp *resty.Response) string {
	var errResp models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Detail != nil {
		if s, ok := errResp.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(errResp.Detail); err == nil {
			return string(b)
		}
	}

	if body := strings.TrimSpace(string(resp.Body())); body != "" {
		return body
	}
	return http.StatusText(resp.StatusCode())
}
