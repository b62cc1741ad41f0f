package cli

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerChars   = "abcdefghijkmnopqrstuvwxyz"
	digitChars   = "23456789"
	specialChars = "@$!%*?&._-"
)

var errPasswordTooShort = errors.New("temporary password length must be at least 12")

// GenerateTemporaryPassword builds a random password that satisfies the
// password policy by construction: one character from each required class,
// the rest drawn from the full alphabet, then shuffled.
func GenerateTemporaryPassword(length int) (string, error) {
	if length < 12 {
		return "", errPasswordTooShort
	}

	fullAlphabet := upperChars + lowerChars + digitChars + specialChars
	password := make([]byte, 0, length)

	for _, class := range []string{upperChars, lowerChars, digitChars, specialChars} {
		char, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	for len(password) < length {
		char, err := randomChar(fullAlphabet)
		if err != nil {
			return "", err
		}
		password = append(password, char)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func randomChar(alphabet string) (byte, error) {
	position, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, err
	}
	return alphabet[position.Int64()], nil
}

func shuffle(value []byte) error {
	for index := len(value) - 1; index > 0; index-- {
		swap, err := rand.Int(rand.Reader, big.NewInt(int64(index+1)))
		if err != nil {
			return err
		}
		value[index], value[swap.Int64()] = value[swap.Int64()], value[index]
	}
	return nil
}
