package services

import (
	"errors"
	"strings"
	"unicode"
)

var ErrWeakPassword = errors.New("weak password")

const minPasswordLength = 12
const passwordSpecialSet = "@$!%*?&._-"

func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrWeakPassword
	}

	hasUpper, hasLower, hasDigit, hasSpecial := scanPasswordClasses(password)
	if hasUpper && hasLower && hasDigit && hasSpecial {
		return nil
	}
	return ErrWeakPassword
}

// PasswordScore grades a candidate password 0..4 for strength meters.
func PasswordScore(password string) int {
	score := 0
	if len([]rune(password)) >= minPasswordLength {
		score++
	}

	hasUpper, hasLower, hasDigit, hasSpecial := scanPasswordClasses(password)
	if hasUpper && hasLower {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSpecial {
		score++
	}
	return score
}

func scanPasswordClasses(password string) (hasUpper, hasLower, hasDigit, hasSpecial bool) {
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialSet, char):
			hasSpecial = true
		}
	}
	return hasUpper, hasLower, hasDigit, hasSpecial
}
