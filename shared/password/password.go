package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past this many bytes, so longer secrets are
// refused instead of silently truncated.
const maxLength = 72

var (
	ErrEmpty    = errors.New("password cannot be empty")
	ErrTooLong  = fmt.Errorf("password must be at most %d bytes", maxLength)
	ErrMismatch = errors.New("password does not match")
)

// Cost is the bcrypt work factor used by Hash.
var Cost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > maxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrMismatch for a wrong password. Any other error means
// hashed is not a bcrypt hash.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}

	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
