package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"shopctl/internal/config"
)

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// renderMarkdown renders markdown for terminal output via glamour, falling
// back to the plain text when styling fails.
func renderMarkdown(markdown string, theme string) string {
	rendered, err := glamour.Render(markdown, theme)
	if err != nil {
		return markdown
	}
	return rendered
}

// printMarkdown renders and prints markdown using the current context's theme.
func printMarkdown(cfg *config.Config, markdown string) error {
	_, err := fmt.Print(renderMarkdown(markdown, getTheme(cfg)))
	return err
}

// getTheme returns the theme from the current context, or "auto".
func getTheme(cfg *config.Config) string {
	if cfg == nil {
		return "auto"
	}

	ctx, err := cfg.GetCurrentContext()
	if err != nil {
		return "auto"
	}

	return ctx.Rendering.Theme
}
