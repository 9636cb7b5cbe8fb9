package security

import (
	"fmt"
	"sync"
	"unicode"

	"document-management-server/internal/common"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword : at least MinPasswordLength characters with a letter and a digit
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return common.Validation(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return common.Validation("Password must contain at least one letter and one number")
	}
	if len(password) > 72 {
		return common.Validation("Password must be at most 72 bytes")
	}
	return nil
}

// DummyCheck spends the same bcrypt cost as a real comparison so unknown
// emails cannot be told apart by timing.
func DummyCheck(password string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password-1"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)
