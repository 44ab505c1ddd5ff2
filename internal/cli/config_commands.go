package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopctl/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration and contexts",
		Long:  `Manage CLI configuration including API contexts, similar to kubectl contexts.`,
	}

	cmd.AddCommand(newCurrentContextCommand())
	cmd.AddCommand(newUseContextCommand())
	cmd.AddCommand(newListContextsCommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newCurrentContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "current-context",
		Short: "Display the current context",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)
			fmt.Println(cc.Config.CurrentContext)
			return nil
		},
	}
}

func newUseContextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use-context CONTEXT_NAME",
		Short: "Switch to a different context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			if err := cc.Config.SetCurrentContext(args[0]); err != nil {
				return err
			}

			if err := config.Save(cc.Config); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("Switched to context %q\n", args[0])
			return nil
		},
	}
}

func newListContextsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list-contexts",
		Aliases: []string{"get-contexts"},
		Short:   "List all available contexts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			names := make([]string, 0, len(cc.Config.Contexts))
			for name := range cc.Config.Contexts {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CURRENT\tNAME\tAPI\tSCHEME")
			for _, name := range names {
				ctx := cc.Config.Contexts[name]
				marker := ""
				if name == cc.Config.CurrentContext {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, name, ctx.API.BaseURL, ctx.API.Scheme)
			}
			return w.Flush()
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current context's configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			ctx, err := cc.Config.GetCurrentContext()
			if err != nil {
				return err
			}

			credPath, err := cc.Config.CredentialsPath()
			if err != nil {
				return err
			}

			fmt.Printf("Context:      %s\n", cc.Config.CurrentContext)
			fmt.Printf("API base:     %s\n", ctx.API.BaseURL)
			fmt.Printf("Auth scheme:  %s\n", ctx.API.Scheme)
			fmt.Printf("Timeout:      %ds\n", ctx.API.TimeoutSeconds)
			fmt.Printf("Theme:        %s\n", ctx.Rendering.Theme)
			fmt.Printf("Credentials:  %s\n", credPath)
			return nil
		},
	}
}
