package ui

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"
)

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == 0 || (r < 32 && r != '\t') || r == 127 {
			return -1
		}
		return r
	}, s))
}

func validateName(s string) error {
	if sanitizeInput(s) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

func validateEmail(s string) error {
	s = sanitizeInput(s)
	if s == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// PromptForIdentity asks for the name and email used to log in.
// Values already known are used as the form defaults.
func PromptForIdentity(name, email string) (string, string, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your Name").
				Description("Used to start a session with the dog catalog").
				Placeholder("Jane Doe").
				Value(&name).
				Validate(validateName),
			huh.NewInput().
				Title("Your Email").
				Placeholder("jane@example.com").
				Value(&email).
				Validate(validateEmail),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return "", "", fmt.Errorf("prompt cancelled: %w", err)
	}
	return sanitizeInput(name), sanitizeInput(email), nil
}

// ConfirmClear asks before wiping the saved favorites
func ConfirmClear(count int) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear %d saved favorites?", count)).
				Description("This cannot be undone").
				Affirmative("Yes, clear them").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}
