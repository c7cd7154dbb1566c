package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// ConfirmationTTL bounds how long an issued confirmation code stays
// exchangeable. Codes are single-use: the stored hash is cleared after
// a successful token exchange.
const ConfirmationTTL = 24 * time.Hour

// NewConfirmationCode returns an opaque one-time code.
func NewConfirmationCode() string {
	return uuid.New().String()
}

// HashConfirmationCode hashes a code for at-rest storage.
func HashConfirmationCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckConfirmationCode reports whether code matches the stored hash
// and was issued within the TTL window.
func CheckConfirmationCode(hash string, issuedAt time.Time, code string) bool {
	if time.Since(issuedAt) > ConfirmationTTL {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
