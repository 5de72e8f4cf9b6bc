// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLength   = 16

	argonPrefix = "argon2id"
)

var errMalformedHash = errors.New("malformed password hash")

// passwordHash is a decoded PHC-style argon2id string:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
type passwordHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func (h passwordHash) derive(password string) []byte {
	//nolint:gosec // G115: key length is argonKeyLen or read back from a stored hash
	return argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
}

func (h passwordHash) String() string {
	enc := base64.RawStdEncoding
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix, argon2.Version, h.memory, h.time, h.threads,
		enc.EncodeToString(h.salt), enc.EncodeToString(h.key))
}

func parsePasswordHash(encoded string) (passwordHash, error) {
	var h passwordHash

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return h, errMalformedHash
	}
	if parts[1] != argonPrefix {
		return h, fmt.Errorf("%w: algorithm %q", errMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return h, fmt.Errorf("%w: version %q", errMalformedHash, parts[2])
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return h, fmt.Errorf("%w: params %q", errMalformedHash, parts[3])
	}

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return h, fmt.Errorf("%w: salt: %w", errMalformedHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return h, fmt.Errorf("%w: key: %w", errMalformedHash, err)
	}
	if len(h.key) == 0 {
		return h, fmt.Errorf("%w: empty key", errMalformedHash)
	}

	return h, nil
}

// HashPassword returns an argon2id hash with a fresh random salt.
func HashPassword(password string) (string, error) {
	h := passwordHash{
		memory:  argonMemory,
		time:    argonTime,
		threads: argonThreads,
		salt:    make([]byte, saltLength),
		key:     make([]byte, argonKeyLen),
	}
	if _, err := rand.Read(h.salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	h.key = h.derive(password)
	return h.String(), nil
}

// VerifyPassword reports whether password matches encoded. The parameters
// stored in encoded are used, so older hashes keep verifying.
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parsePasswordHash(encoded)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(h.key, h.derive(password)) == 1, nil
}

var dummyHash = sync.OnceValue(func() string {
	hash, err := HashPassword("timing-equalizer")
	if err != nil {
		panic(fmt.Sprintf("security: dummy hash: %v", err))
	}
	return hash
})

// VerifyPasswordTimingSafe verifies against a dummy hash when encoded is
// empty so that unknown accounts cost as much as wrong passwords.
func VerifyPasswordTimingSafe(password, encoded string) (bool, error) {
	if encoded == "" {
		_, _ = VerifyPassword(password, dummyHash()) //nolint:errcheck // only the work matters
		return false, nil
	}
	return VerifyPassword(password, encoded)
}

// SecretsEqual compares two shared secrets without leaking their contents
// through timing.
func SecretsEqual(given, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(expected)) == 1
}
