package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheapPolicy keeps argon2id cost low so the suite stays fast.
func cheapPolicy() *passwordPolicy {
	return &passwordPolicy{
		params: argon2Params{time: 1, memory: 1024, threads: 1, saltLen: 16, keyLen: 32},
	}
}

func TestHash_PHCFormat(t *testing.T) {
	policy := NewPasswordPolicy()

	hash, err := policy.Hash("correct horse battery staple")
	require.NoError(t, err)

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6)
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Equal(t, "m=65536,t=3,p=4", parts[3])
	assert.NotContains(t, hash, "=$", "base64 must be unpadded")

	assert.True(t, policy.Verify("correct horse battery staple", hash))
	assert.False(t, policy.NeedsUpgrade(hash))
}

func TestHash_SaltedPerCall(t *testing.T) {
	policy := cheapPolicy()

	h1, err := policy.Hash("password123")
	require.NoError(t, err)
	h2, err := policy.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, policy.Verify("password123", h1))
	assert.True(t, policy.Verify("password123", h2))
}

func TestVerify_WrongPassword(t *testing.T) {
	policy := cheapPolicy()

	hash, err := policy.Hash("password123")
	require.NoError(t, err)

	assert.False(t, policy.Verify("password124", hash))
	assert.False(t, policy.Verify("", hash))
}

func TestVerify_Bcrypt(t *testing.T) {
	policy := cheapPolicy()

	raw, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	hash := string(raw)

	assert.True(t, policy.Verify("legacy-pass", hash))
	assert.False(t, policy.Verify("other-pass", hash))

	// $2y$ is the PHP spelling of the same algorithm
	y := "$2y$" + strings.TrimPrefix(hash, hash[:4])
	assert.True(t, policy.Verify("legacy-pass", y))
}

func TestVerify_UnknownOrMalformed(t *testing.T) {
	policy := cheapPolicy()

	tests := []string{
		"",
		"plaintext",
		"$pbkdf2-sha256$29000$abc$def",
		"$argon2id$v=19$m=1024,t=1,p=1$onlysalt",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5a2V5",
	}

	for _, hash := range tests {
		t.Run(hash, func(t *testing.T) {
			assert.False(t, policy.Verify("anything", hash))
			assert.True(t, policy.NeedsUpgrade(hash))
		})
	}
}

func TestNeedsUpgrade(t *testing.T) {
	current := NewPasswordPolicy()

	weak, err := cheapPolicy().Hash("password123")
	require.NoError(t, err)

	raw, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name string
		hash string
		want bool
	}{
		{"bcrypt is deprecated", string(raw), true},
		{"weaker argon2id parameters", weak, true},
		{"old argon2 version", "$argon2id$v=16$m=65536,t=3,p=4$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2U", true},
		{"current parameters", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2U", false},
		{"stronger parameters", "$argon2id$v=19$m=131072,t=4,p=8$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2U", false},
		{"short key", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, current.NeedsUpgrade(tt.hash))
		})
	}
}

func TestVerify_HashFromWeakerPolicy(t *testing.T) {
	// hashes keep verifying after the policy parameters are raised
	weak, err := cheapPolicy().Hash("password123")
	require.NoError(t, err)

	assert.True(t, NewPasswordPolicy().Verify("password123", weak))
}
