// Package credential converts plaintext passwords into stored digests and back-checks them.
package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new digests.
const Cost = 12

// maxLen is the longest input bcrypt consumes; longer input would be silently truncated.
const maxLen = 72

var (
	ErrEmpty   = errors.New("password is empty")
	ErrTooLong = fmt.Errorf("password is longer than %d bytes", maxLen)
)

// Hash returns a salted bcrypt digest of plain.
func Hash(plain string) (string, error) {
	return hashWithCost(plain, Cost)
}

func hashWithCost(plain string, cost int) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	if len(plain) > maxLen {
		return "", ErrTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. Malformed digests never match.
func Verify(digest, plain string) bool {
	if digest == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
