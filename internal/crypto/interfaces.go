package crypto

import (
	"time"

	"github.com/MKhiriev/go-lead-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordPolicy hashes and verifies user passwords and decides when a
// stored hash must be re-hashed with the current scheme and parameters.
//
// Schemes are ranked argon2id > bcrypt. New hashes are always argon2id in
// PHC string format; bcrypt hashes are accepted for verification only.
type PasswordPolicy interface {
	// Hash returns an argon2id PHC string for password using a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether plain matches hash. Unknown schemes and
	// malformed hashes never verify.
	Verify(plain, hash string) bool

	// NeedsUpgrade reports whether hash uses a deprecated scheme, weaker
	// parameters than the current ones, or cannot be parsed at all.
	NeedsUpgrade(hash string) bool
}

// TokenService issues and validates signed bearer tokens. Validation is
// purely cryptographic: it never touches storage and has no revocation list.
type TokenService interface {
	// Issue signs a token for subject. A non-positive ttl selects the
	// configured default lifetime.
	Issue(subject string, ttl time.Duration) (models.Token, error)

	// Validate checks signature, algorithm, expiry and issuer and returns the
	// subject. Every failure wraps [ErrInvalidToken].
	Validate(token string) (string, error)
}
