package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines behavior for hashing and comparing passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// BcryptPasswordHasher is a PasswordHasher implementation using bcrypt.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a new BcryptPasswordHasher with default cost.
func NewBcryptPasswordHasher() *BcryptPasswordHasher {
	return &BcryptPasswordHasher{
		cost: bcrypt.DefaultCost,
	}
}

// NewBcryptPasswordHasherWithCost allows you to specify a custom bcrypt cost.
func NewBcryptPasswordHasherWithCost(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{
		cost: cost,
	}
}

// Hash hashes the given plain password string using bcrypt.
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Compare compares a bcrypt hashed password with its possible plaintext equivalent.
// Returns nil on success, or an error on failure.
func (h *BcryptPasswordHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

var errCredentialMismatch = errors.New("credential mismatch")

// AdminCredential checks a login attempt against the configured admin
// account. A bcrypt hash is preferred; the plain password fallback is
// compared in constant time for dev setups.
type AdminCredential struct {
	Username     string
	PasswordHash string
	Password     string
	Hasher       PasswordHasher
}

// Verify returns nil when the username/password pair matches the
// configured credential.
func (a *AdminCredential) Verify(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) != 1 {
		return errCredentialMismatch
	}

	if a.PasswordHash != "" {
		return a.Hasher.Compare(a.PasswordHash, password)
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) != 1 {
		return errCredentialMismatch
	}
	return nil
}
