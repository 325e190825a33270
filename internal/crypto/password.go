// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	schemeArgon2id = "argon2id"

	argon2idPrefix = "$" + schemeArgon2id + "$"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// argon2Params is the cost of one argon2id hash. The zero value is invalid.
type argon2Params struct {
	time    uint32
	memory  uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// passwordPolicy is the private implementation of [PasswordPolicy].
type passwordPolicy struct {
	params argon2Params
}

// NewPasswordPolicy constructs a [PasswordPolicy] with the argon2id
// parameters used for every new hash:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - salt length: 16 bytes
//   - key length:  32 bytes (256 bits)
func NewPasswordPolicy() PasswordPolicy {
	return &passwordPolicy{
		params: argon2Params{
			time:    3,
			memory:  64 * 1024, // 64 MiB
			threads: 4,
			saltLen: 16,
			keyLen:  32,
		},
	}
}

// Hash implements [PasswordPolicy]. The output has the form
// $argon2id$v=19$m=65536,t=3,p=4$<salt>$<key> with unpadded standard base64.
func (p *passwordPolicy) Hash(password string) (string, error) {
	salt := make([]byte, p.params.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.params.time, p.params.memory, p.params.threads, p.params.keyLen)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		schemeArgon2id,
		argon2.Version,
		p.params.memory,
		p.params.time,
		p.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [PasswordPolicy].
func (p *passwordPolicy) Verify(plain, hash string) bool {
	switch {
	case strings.HasPrefix(hash, argon2idPrefix):
		decoded, err := decodeArgon2id(hash)
		if err != nil {
			return false
		}
		key := argon2.IDKey([]byte(plain), decoded.salt, decoded.params.time, decoded.params.memory, decoded.params.threads, uint32(len(decoded.key)))
		return subtle.ConstantTimeCompare(key, decoded.key) == 1
	case isBcrypt(hash):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	default:
		return false
	}
}

// NeedsUpgrade implements [PasswordPolicy].
func (p *passwordPolicy) NeedsUpgrade(hash string) bool {
	if !strings.HasPrefix(hash, argon2idPrefix) {
		// bcrypt is deprecated; anything else cannot be verified at all
		return true
	}

	decoded, err := decodeArgon2id(hash)
	if err != nil {
		return true
	}

	return decoded.version < argon2.Version ||
		decoded.params.memory < p.params.memory ||
		decoded.params.time < p.params.time ||
		decoded.params.threads < p.params.threads ||
		uint32(len(decoded.key)) < p.params.keyLen
}

type argon2idHash struct {
	version int
	params  argon2Params
	salt    []byte
	key     []byte
}

// decodeArgon2id parses a PHC argon2id string.
func decodeArgon2id(hash string) (argon2idHash, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != schemeArgon2id {
		return argon2idHash{}, ErrMalformedHash
	}

	var decoded argon2idHash
	if _, err := fmt.Sscanf(parts[2], "v=%d", &decoded.version); err != nil {
		return argon2idHash{}, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return argon2idHash{}, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if memory == 0 || time == 0 || threads == 0 {
		return argon2idHash{}, ErrMalformedHash
	}
	decoded.params = argon2Params{memory: memory, time: time, threads: threads}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argon2idHash{}, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return argon2idHash{}, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if len(salt) == 0 || len(key) == 0 {
		return argon2idHash{}, ErrMalformedHash
	}

	decoded.salt = salt
	decoded.key = key
	decoded.params.saltLen = uint32(len(salt))
	decoded.params.keyLen = uint32(len(key))

	return decoded, nil
}

func isBcrypt(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
