// Shared helpers for fieldcase CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/quietriot-sec/fieldcase/internal/observability"
	"github.com/quietriot-sec/fieldcase/internal/project"
	"github.com/quietriot-sec/fieldcase/internal/store"
)

// openStore resolves the base directory and project name and returns a
// store for it. The project must already exist.
func openStore() (*store.Store, error) {
	baseDir, err := resolveBaseDir()
	if err != nil {
		return nil, fmt.Errorf("resolve base dir: %w", err)
	}

	name := flagProject
	if name == "" {
		name = configDefaultProject
	}
	if name == "" {
		return nil, fmt.Errorf("no project selected; use --project or set default_project in config.yaml")
	}

	p, err := project.Open(baseDir, name)
	if err != nil {
		return nil, err
	}
	return store.New(p, observability.Logger()), nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// newTable returns a tabwriter for aligned list output. The caller must
// Flush it.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// parseID converts a positional ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid ID %q", arg)
	}
	return id, nil
}

// splitCSV splits a comma-separated flag value into trimmed, non-empty
// parts.
func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// formatDate renders a timestamp for table output.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// truncate shortens s for table output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
