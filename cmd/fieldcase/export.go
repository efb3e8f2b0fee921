// Export command writes collection snapshots for external tooling.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/sqlite"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export project data",
}

var exportSqliteCmd = &cobra.Command{
	Use:   "sqlite",
	Short: "Export all collections to a SQLite database",
	Long: `Sqlite writes a fresh snapshot of every collection to a SQLite file
for ad-hoc querying. The JSON files stay the source of truth; the
snapshot is regenerated in full on every run.

Example:
  fieldcase export sqlite
  fieldcase export sqlite --out /tmp/acme.db`,
	Args: cobra.NoArgs,
	RunE: runExportSqlite,
}

func init() {
	exportSqliteCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: <project>/fieldcase.db)")
	exportCmd.AddCommand(exportSqliteCmd)
}

func runExportSqlite(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = s.Project().Path("fieldcase.db")
	}
	if err := sqlite.Export(s, out); err != nil {
		return err
	}
	fmt.Printf("Exported project %s to %s\n", s.Project().Name, out)
	return nil
}
