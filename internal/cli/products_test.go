package cli

import (
	"strings"
	"testing"
)

func TestResultsMarkdownTable(t *testing.T) {
	results := []any{
		map[string]any{"id": float64(1), "title": "Widget", "price": "9.99"},
		map[string]any{"id": float64(2), "title": "Gadget", "price": "19.99"},
	}

	md := resultsMarkdown(results)

	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and two rows, got:\n%s", md)
	}
	// Columns are sorted for a stable layout.
	if lines[0] != "| id | price | title |" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "Widget") || !strings.Contains(lines[3], "Gadget") {
		t.Errorf("rows missing data:\n%s", md)
	}
}

func TestResultsMarkdownEmpty(t *testing.T) {
	if got := resultsMarkdown(nil); !strings.Contains(got, "no results") {
		t.Errorf("empty listing = %q", got)
	}
}

func TestResultsMarkdownNonObjectItems(t *testing.T) {
	md := resultsMarkdown([]any{"a", "b"})
	if !strings.HasPrefix(md, "- a") {
		t.Errorf("non-object items should render as a list, got %q", md)
	}
}
