// Import command ingests tool-generated findings from JSONL files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/importer"
	"github.com/quietriot-sec/fieldcase/internal/observability"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import findings from a JSONL file",
	Long: `Import reads one JSON object per line from FILE and appends each
valid one to the findings collection. Lines that fail to parse or lack
required fields are skipped with a warning; the rest import normally, so
a partially malformed file can be fixed and re-run.

Imported findings whose target context matches an asset's identifier,
IP, or hostname are linked to that asset automatically.

Example:
  fieldcase import scans/nuclei_insights.jsonl
  fieldcase import scans/nuclei_insights.jsonl --json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	report, err := importer.New(s, observability.Logger()).Run(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}
	fmt.Printf("Imported %d finding(s), skipped %d, linked %d finding(s) to assets\n",
		report.Imported, report.Skipped, report.Linked)
	return nil
}
