package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminCredential is the single administrative identity. It is built once at
// startup and never mutated.
type AdminCredential struct {
	email string
	hash  []byte
}

// NewAdminCredential hashes the configured plaintext password with bcrypt.
func NewAdminCredential(email, password string) (*AdminCredential, error) {
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminCredential{email: email, hash: hash}, nil
}

func (a *AdminCredential) Email() string {
	return a.email
}

// Authenticate matches the email exactly and compares the password hash.
func (a *AdminCredential) Authenticate(email, password string) error {
	if email != a.email {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
