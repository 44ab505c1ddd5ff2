package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"shopctl/internal/client"
	"shopctl/internal/config"
	"shopctl/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const cliContextKey contextKey = "cliContext"

// CliContext holds shared CLI state built in the root PersistentPreRunE.
type CliContext struct {
	Config *config.Config
	Logger *slog.Logger
}

// Global logging flags
var (
	logLevel  string
	logFile   string
	logFormat string
)

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	var ctx CliContext

	rootCmd := &cobra.Command{
		Use:           "shopctl",
		Short:         "CLI for a token-authenticated shop API",
		Long:          `A command line client that manages access/refresh token credentials for a remote JSON API and calls its authenticated endpoints.`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors (main.go handles it)
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(); err != nil {
				return fmt.Errorf("failed to setup logging: %w", err)
			}

			ctx.Logger = slog.Default().With("component", "cli")
			ctx.Logger.Debug("CLI started", "command", cmd.Name())

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			ctx.Config = cfg

			cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey, &ctx))
			return nil
		},
	}

	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newProductsCommand())
	rootCmd.AddCommand(newConfigCommand())

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Log file path (if specified, logs to file instead of stderr)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format (text, json)")

	return rootCmd
}

// setupLogging configures the global logger based on CLI flags
func setupLogging() error {
	cfg := logger.Config{
		Level:       logger.ParseLevel(logLevel),
		LogFile:     logFile,
		LogToStderr: logFile == "",
		Format:      logFormat,
	}

	globalLogger, err := logger.Setup(cfg)
	if err != nil {
		return err
	}

	slog.SetDefault(globalLogger)
	return nil
}

// getCliContext extracts the CLI context from the command context
func getCliContext(cmd *cobra.Command) *CliContext {
	return cmd.Context().Value(cliContextKey).(*CliContext)
}

// newSession builds a Session for the current context. A non-nil prompter
// overrides the interactive terminal prompt.
func newSession(cfg *config.Config, prompter client.Prompter) (*client.Session, error) {
	ctx, err := cfg.GetCurrentContext()
	if err != nil {
		return nil, err
	}

	credPath, err := cfg.CredentialsPath()
	if err != nil {
		return nil, err
	}

	return client.NewSession(client.Options{
		BaseEndpoint: ctx.API.BaseURL,
		CredPath:     credPath,
		HeaderScheme: ctx.API.Scheme,
		Transport:    client.NewHTTPTransport(time.Duration(ctx.API.TimeoutSeconds) * time.Second),
		Prompter:     prompter,
	}), nil
}
