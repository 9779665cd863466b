package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies one-way password hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, encoded string) bool
}

// Argon2Params tunes the argon2id hasher.
type Argon2Params struct {
	Memory     uint32
	Time       uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultArgon2Params are sized for interactive logins.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Memory: 64 * 1024, Time: 1, Threads: 4, SaltLength: 16, KeyLength: 32}
}

// Argon2Hasher hashes with argon2id and encodes in PHC string format.
type Argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher builds a hasher, falling back to defaults for zero params.
func NewArgon2Hasher(params Argon2Params) *Argon2Hasher {
	def := DefaultArgon2Params()
	if params.Memory == 0 {
		params.Memory = def.Memory
	}
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}
	if params.SaltLength == 0 {
		params.SaltLength = def.SaltLength
	}
	if params.KeyLength == 0 {
		params.KeyLength = def.KeyLength
	}
	return &Argon2Hasher{params: params}
}

// Hash derives an argon2id key over a fresh random salt.
func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify recomputes the key from the encoded parameters and compares in
// constant time. Malformed input yields false, never an error.
func (h *Argon2Hasher) Verify(plaintext, encoded string) bool {
	params, salt, key, err := decodeArgon2(encoded)
	if err != nil {
		return false
	}
	computed := argon2.IDKey([]byte(plaintext), salt, params.Time, params.Memory, params.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Argon2Params{}, nil, nil, errors.New("not an argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Argon2Params{}, nil, nil, err
	}
	if version != argon2.Version {
		return Argon2Params{}, nil, nil, errors.New("unsupported argon2 version")
	}

	var params Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return Argon2Params{}, nil, nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Argon2Params{}, nil, nil, err
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Argon2Params{}, nil, nil, err
	}
	return params, salt, key, nil
}

// BcryptHasher verifies hashes provisioned by external tooling.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the configured cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes a plaintext password with configured cost.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares a password against its hashed value.
func (h *BcryptHasher) Verify(plaintext, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext)) == nil
}

// MultiHasher hashes with a primary scheme and verifies against whichever
// scheme the stored hash was produced with.
type MultiHasher struct {
	primary Hasher
	argon2  *Argon2Hasher
	bcrypt  *BcryptHasher
}

// NewMultiHasher selects the primary scheme by name ("argon2id" or "bcrypt").
func NewMultiHasher(scheme string, argonParams Argon2Params, bcryptCost int) *MultiHasher {
	m := &MultiHasher{
		argon2: NewArgon2Hasher(argonParams),
		bcrypt: NewBcryptHasher(bcryptCost),
	}
	if strings.EqualFold(scheme, "bcrypt") {
		m.primary = m.bcrypt
	} else {
		m.primary = m.argon2
	}
	return m
}

// Hash delegates to the primary scheme.
func (m *MultiHasher) Hash(plaintext string) (string, error) {
	return m.primary.Hash(plaintext)
}

// Verify dispatches on the hash prefix. Unrecognized or malformed hashes
// verify false.
func (m *MultiHasher) Verify(plaintext, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return m.argon2.Verify(plaintext, encoded)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return m.bcrypt.Verify(plaintext, encoded)
	default:
		return false
	}
}
