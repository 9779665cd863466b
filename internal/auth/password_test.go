package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArgon2Params() Argon2Params {
	// small parameters to keep the suite fast
	return Argon2Params{Memory: 8 * 1024, Time: 1, Threads: 1, SaltLength: 16, KeyLength: 32}
}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params())

	encoded, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotContains(t, encoded, "secret123")

	assert.True(t, hasher.Verify("secret123", encoded))
	assert.False(t, hasher.Verify("secret124", encoded))
}

func TestArgon2Hasher_EncodingIsSalted(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params())

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash must use a fresh salt")
	assert.True(t, hasher.Verify("secret123", first))
	assert.True(t, hasher.Verify("secret123", second))
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher(testArgon2Params())

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong scheme", "$pbkdf2$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{"truncated", "$argon2id$v=19$m=8192"},
		{"bad params", "$argon2id$v=19$m=abc,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("secret123", tt.encoded))
		})
	}
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	encoded, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("secret123", encoded))
	assert.False(t, hasher.Verify("wrong", encoded))
	assert.False(t, hasher.Verify("secret123", "malformed"))
}

func TestMultiHasher_DispatchesOnPrefix(t *testing.T) {
	multi := NewMultiHasher("argon2id", testArgon2Params(), 4)

	argonHash, err := NewArgon2Hasher(testArgon2Params()).Hash("secret123")
	require.NoError(t, err)
	bcryptHash, err := NewBcryptHasher(4).Hash("secret123")
	require.NoError(t, err)

	assert.True(t, multi.Verify("secret123", argonHash))
	assert.True(t, multi.Verify("secret123", bcryptHash))
	assert.False(t, multi.Verify("secret123", "plain-text-stored"))
}

func TestMultiHasher_PrimaryScheme(t *testing.T) {
	argonFirst := NewMultiHasher("argon2id", testArgon2Params(), 4)
	hash, err := argonFirst.Hash("pw")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	bcryptFirst := NewMultiHasher("bcrypt", testArgon2Params(), 4)
	hash, err = bcryptFirst.Hash("pw")
	require.NoError(t, err)
	assert.Contains(t, hash, "$2")
}
