package client

import (
	"fmt"
	"syscall"

	"golang.org/x/term"
)

// Prompter collects login credentials from the user.
type Prompter interface {
	Username() (string, error)
	Password() (string, error)
}

// TerminalPrompter reads the username as a visible line and the password with
// terminal echo disabled.
type TerminalPrompter struct{}

// Username prompts for and reads the username.
func (TerminalPrompter) Username() (string, error) {
	fmt.Print("Username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return username, nil
}

// Password prompts for and reads the password without echoing it.
func (TerminalPrompter) Password() (string, error) {
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}

// StaticPrompter returns fixed credentials. It backs the --username/--password
// flags and scripted logins in tests.
type StaticPrompter struct {
	User string
	Pass string
}

func (p StaticPrompter) Username() (string, error) { return p.User, nil }

func (p StaticPrompter) Password() (string, error) { return p.Pass, nil }
