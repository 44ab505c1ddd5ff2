package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"shopctl/internal/client"
)

func newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
		Long:  `Manage the stored access/refresh token pair for the shop API`,
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthLogoutCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthTokenCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the shop API",
		Long: `Exchange a username and password for a fresh token pair.

Prompts interactively unless both --username and --password are given.
The password prompt does not echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			var prompter client.Prompter
			if username != "" && password != "" {
				prompter = client.StaticPrompter{User: username, Pass: password}
			}

			sess, err := newSession(cc.Config, prompter)
			if err != nil {
				return err
			}

			if err := sess.Login(); err != nil {
				var authErr *client.AuthError
				if errors.As(err, &authErr) {
					return fmt.Errorf("login rejected: %s", authErr.Body)
				}
				return err
			}

			fmt.Println("✓ Successfully logged in")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (if not provided, will prompt)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (if not provided, will prompt)")

	return cmd
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			sess, err := newSession(cc.Config, nil)
			if err != nil {
				return err
			}

			if err := sess.Clear(); err != nil {
				return fmt.Errorf("failed to remove credentials: %w", err)
			}

			fmt.Println("✓ Successfully logged out")
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			credPath, err := cc.Config.CredentialsPath()
			if err != nil {
				return err
			}

			creds, err := client.LoadCredentials(credPath)
			if err != nil {
				fmt.Println("Not logged in")
				return nil
			}

			fmt.Printf("Logged in (context %q)\n", cc.Config.CurrentContext)

			// The access token is an unverified JWT; the exp claim is
			// still useful for a local readout.
			if expiresAt, err := tokenExpiry(creds.Access); err == nil {
				local := expiresAt.Local()
				fmt.Printf("Access token expires: %s\n", local.Format("2006-01-02 15:04:05 MST"))

				now := time.Now()
				if now.After(expiresAt) {
					fmt.Printf("⚠  Token expired %s ago - it will be refreshed on next use\n", formatDuration(now.Sub(expiresAt)))
				} else {
					fmt.Printf("✓  Valid for %s\n", formatDuration(expiresAt.Sub(now)))
				}
			}

			if remote {
				sess, err := newSession(cc.Config, nil)
				if err != nil {
					return err
				}
				if err := sess.Init(); err != nil {
					return err
				}
				fmt.Println("✓  Server accepts the access token")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Also verify the token against the server, refreshing or re-logging in as needed")

	return cmd
}

func newAuthTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Display the current access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			credPath, err := cc.Config.CredentialsPath()
			if err != nil {
				return err
			}

			creds, err := client.LoadCredentials(credPath)
			if err != nil {
				return fmt.Errorf("not logged in: %w", err)
			}

			fmt.Println(creds.Access)
			return nil
		},
	}
}

// tokenExpiry extracts the exp claim from a JWT without verifying its
// signature (the client has no signing key).
func tokenExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}

	return exp.Time, nil
}

// formatDuration formats a duration as e.g. "2 days, 3 hours and 45 minutes".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	units := []struct {
		name  string
		value int
	}{
		{"day", int(d.Hours() / 24)},
		{"hour", int(d.Hours()) % 24},
		{"minute", int(d.Minutes()) % 60},
	}

	var parts []string
	for _, u := range units {
		switch {
		case u.value == 1:
			parts = append(parts, "1 "+u.name)
		case u.value > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", u.value, u.name))
		}
	}

	if len(parts) == 0 {
		seconds := int(d.Seconds())
		if seconds == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", seconds)
	}
	if len(parts) == 1 {
		return parts[0]
	}

	result := ""
	for i := 0; i < len(parts)-1; i++ {
		if i > 0 {
			result += ", "
		}
		result += parts[i]
	}
	return result + " and " + parts[len(parts)-1]
}
