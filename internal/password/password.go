// Package password hashes and verifies credentials with PBKDF2-SHA256.
//
// Hashes use the werkzeug string format "pbkdf2:sha256:<iterations>$<salt>$<hex digest>",
// so credentials created by werkzeug based deployments verify unchanged.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations matches the werkzeug default for pbkdf2.
	DefaultIterations = 600000

	method     = "pbkdf2"
	digest     = "sha256"
	saltLength = 16
	keyLength  = sha256.Size

	saltChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ErrMalformedHash is returned when a stored hash can't be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// Hasher creates and verifies password hashes.
type Hasher struct {
	iterations int
}

// New returns a Hasher using the given iteration count for new hashes.
// A non-positive count falls back to DefaultIterations.
func New(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// Hash returns a salted hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	salt, err := genSalt(saltLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := derive(password, salt, h.iterations)
	return fmt.Sprintf("%s:%s:%d$%s$%s", method, digest, h.iterations, salt, hex.EncodeToString(key)), nil
}

// Verify reports whether password matches the stored hash.
// Malformed or unsupported hashes never match.
func (h *Hasher) Verify(stored, password string) bool {
	iterations, salt, want, err := parse(stored)
	if err != nil {
		return false
	}
	got := derive(password, salt, iterations)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func derive(password, salt string, iterations int) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
}

func parse(stored string) (int, string, []byte, error) {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, ErrMalformedHash
	}
	header, salt, hexKey := parts[0], parts[1], parts[2]

	fields := strings.Split(header, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != method || fields[1] != digest {
		return 0, "", nil, fmt.Errorf("%w: unsupported method %q", ErrMalformedHash, header)
	}

	iterations := DefaultIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return 0, "", nil, fmt.Errorf("%w: invalid iterations %q", ErrMalformedHash, fields[2])
		}
		iterations = n
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) == 0 {
		return 0, "", nil, fmt.Errorf("%w: invalid digest", ErrMalformedHash)
	}
	return iterations, salt, key, nil
}

func genSalt(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	max := big.NewInt(int64(len(saltChars)))
	for range n {
		i, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(saltChars[i.Int64()])
	}
	return sb.String(), nil
}
