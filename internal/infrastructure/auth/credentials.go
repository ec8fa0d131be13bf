package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/slippery-operator/pos-sub001/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
// A single error for both cases so responses do not leak which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialVerifier checks operator logins against the configured
// username and bcrypt password hash.
type CredentialVerifier struct {
	username     string
	passwordHash []byte
}

// NewCredentialVerifier creates a verifier from the auth configuration
func NewCredentialVerifier(cfg config.AuthConfig) *CredentialVerifier {
	return &CredentialVerifier{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
	}
}

// Verify checks the supplied credentials
func (v *CredentialVerifier) Verify(username, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(v.username), []byte(username)) == 1

	if err := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	if !usernameMatch {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash for storing in configuration
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
