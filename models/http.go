package models

// ErrorResponse is the body of every error response. Detail is either a
// human readable message or a list of [FieldError].
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// HealthStatus is the liveness payload served at the root path.
type HealthStatus struct {
	Status string `json:"status"`
}
