package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"shopctl/internal/client"
	"shopctl/internal/config"
)

func newProductsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Product catalog commands",
	}

	cmd.AddCommand(newProductsListCommand())

	return cmd
}

func newProductsListCommand() *cobra.Command {
	var (
		limit    int
		endpoint string
		all      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products from the shop API",
		Long: `Fetch the paginated product listing.

Runs the credential startup flow first: stored tokens are verified and
refreshed as needed, and a login prompt appears when neither works.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := getCliContext(cmd)

			sess, err := newSession(cc.Config, nil)
			if err != nil {
				return err
			}
			if err := sess.Init(); err != nil {
				return err
			}

			page, err := sess.ListResource(endpoint, limit)
			if err != nil {
				return err
			}

			results, _ := page["results"].([]any)
			if all {
				for {
					next, _ := page["next"].(string)
					if next == "" {
						break
					}
					page, err = sess.ListResource(next, limit)
					if err != nil {
						return err
					}
					more, _ := page["results"].([]any)
					results = append(results, more...)
				}
			}

			return printResults(cc.Config, results)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", client.DefaultListLimit, "Page size for the listing")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Explicit listing URL (must belong to the configured API base)")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination and fetch every page")

	return cmd
}

// printResults renders the result set as a styled table on a terminal and as
// plain JSON otherwise, so piped output stays machine readable.
func printResults(cfg *config.Config, results []any) error {
	if !isTerminal() {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Printf("%d result(s)\n", len(results))
	return printMarkdown(cfg, resultsMarkdown(results))
}

// resultsMarkdown builds a markdown table from a list of JSON objects.
// Columns come from the first object's keys, sorted for a stable layout.
func resultsMarkdown(results []any) string {
	if len(results) == 0 {
		return "_no results_\n"
	}

	first, ok := results[0].(map[string]any)
	if !ok {
		var b strings.Builder
		for _, item := range results {
			fmt.Fprintf(&b, "- %v\n", item)
		}
		return b.String()
	}

	columns := make([]string, 0, len(first))
	for name := range first {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	var b strings.Builder
	b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(columns)) + "\n")
	for _, item := range results {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		cells := make([]string, len(columns))
		for i, name := range columns {
			cells[i] = fmt.Sprintf("%v", row[name])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}
