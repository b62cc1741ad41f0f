// Package cli holds the admin commands that run against the database file
// directly, without the HTTP surface.
package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/avelinec/wayfarer/internal/db"
	"github.com/avelinec/wayfarer/internal/services"
	"golang.org/x/term"
)

// RunResetPasswordCommand rewrites the stored password digest for one
// account. On a terminal it prompts for the new password; otherwise it
// generates a temporary one and prints it.
func RunResetPasswordCommand(dbPath string, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	identity := services.NewIdentityService(db.NewKVRepository(database))

	password, generated, err := resolveNewPassword()
	if err != nil {
		return err
	}

	if err := identity.ResetPassword(email, password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Println("Password reset successful")
	if generated {
		fmt.Printf("Temporary password: %s\n", password)
	}
	return nil
}

func resolveNewPassword() (string, bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := GenerateTemporaryPassword(16)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	fmt.Print("New password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", false, errors.New("passwords do not match")
	}
	if err := services.ValidatePasswordStrength(string(first)); err != nil {
		return "", false, err
	}
	return string(first), false, nil
}
