package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/focusmode/focusmode/internal/security"
)

type PasswordResetter interface {
	ResetPassword(ctx context.Context, email string, password string) error
}

type ResetPasswordOptions struct {
	// Generate skips the prompt and prints a random temporary password.
	Generate bool
	Prompt   PasswordPrompt
	Out      io.Writer
}

func RunResetPasswordCommand(ctx context.Context, resetter PasswordResetter, email string, options ResetPasswordOptions) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if options.Out == nil {
		options.Out = io.Discard
	}

	var password string
	if options.Generate {
		generated, err := generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
		password = generated
	} else {
		if options.Prompt == nil {
			return errors.New("password prompt unavailable")
		}
		entered, err := promptNewPassword(options.Prompt)
		if err != nil {
			return err
		}
		password = entered
	}

	if err := resetter.ResetPassword(ctx, email, password); err != nil {
		return fmt.Errorf("reset password for %s: %w", email, err)
	}

	fmt.Fprintln(options.Out, "✅ Password reset successful")
	if options.Generate {
		fmt.Fprintf(options.Out, "Temporary password: %s\n", password)
	}
	return nil
}

func promptNewPassword(prompt PasswordPrompt) (string, error) {
	password, err := prompt("New password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	confirmation, err := prompt("Repeat password: ")
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}
	if password != confirmation {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.TemporaryPassword(length)
}
