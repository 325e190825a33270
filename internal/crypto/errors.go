package crypto

import "errors"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMalformedHash = errors.New("malformed password hash")
)
