// Finding commands manage tool-generated and manually entered findings.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

var (
	findingTarget         string
	findingSourceTool     string
	findingCategory       string
	findingType           string
	findingDescription    string
	findingSeverity       string
	findingConfidence     string
	findingStatus         string
	findingRecommendation string
	findingDataPoints     string
	findingTags           string
	findingNotes          string
	findingSort           string
)

var findingCmd = &cobra.Command{
	Use:   "finding",
	Short: "Manage findings",
}

var findingAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Record a finding manually",
	Long: `Add records a finding entered by hand. The insight ID is generated,
source type defaults to ManualEntry, severity to Informational, and
status to Open. Use import for tool-generated findings.

Example:
  fieldcase finding add "Directory listing on /backups" --target 10.0.0.5 --severity Medium
  fieldcase finding add "Default creds on Tomcat" --target app.example.com --severity High --tags creds,quickwin`,
	Args: cobra.ExactArgs(1),
	RunE: runFindingAdd,
}

var findingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List findings",
	Long: `List shows findings newest first by event time. Use --sort severity
or --sort title for the other orders. All filter flags combine; --tags
requires every given tag.

Example:
  fieldcase finding list --severity Critical --status Open
  fieldcase finding list --target blog.example.com --sort severity`,
	Args: cobra.NoArgs,
	RunE: runFindingList,
}

var findingGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one finding",
	Args:  cobra.ExactArgs(1),
	RunE:  runFindingGet,
}

var findingUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of a finding",
	Args:  cobra.ExactArgs(1),
	RunE:  runFindingUpdate,
}

var findingRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove a finding",
	Args:    cobra.ExactArgs(1),
	RunE:    runFindingRemove,
}

func init() {
	findingAddCmd.Flags().StringVar(&findingTarget, "target", "", "target context (host, URL, or N/A)")
	findingAddCmd.Flags().StringVar(&findingSourceTool, "tool", "", "tool or origin of the finding (default: UnknownTool)")
	findingAddCmd.Flags().StringVar(&findingCategory, "category", "", "category (default: General)")
	findingAddCmd.Flags().StringVar(&findingType, "type", "", "finding type (default: Observation)")
	findingAddCmd.Flags().StringVar(&findingDescription, "description", "", "detailed description")
	findingAddCmd.Flags().StringVar(&findingSeverity, "severity", "", "severity assessment (default: Informational)")
	findingAddCmd.Flags().StringVar(&findingConfidence, "confidence", "", "confidence (default: Medium)")
	findingAddCmd.Flags().StringVar(&findingRecommendation, "recommendation", "", "actionable recommendation")
	findingAddCmd.Flags().StringVar(&findingDataPoints, "data", "", "key data points as a JSON object")
	findingAddCmd.Flags().StringVar(&findingTags, "tags", "", "comma-separated tags (stored lowercase)")
	findingAddCmd.Flags().StringVar(&findingNotes, "notes", "", "free-form notes")

	findingListCmd.Flags().StringVar(&findingTarget, "target", "", "filter by target context")
	findingListCmd.Flags().StringVar(&findingSourceTool, "tool", "", "filter by source tool")
	findingListCmd.Flags().StringVar(&findingCategory, "category", "", "filter by category")
	findingListCmd.Flags().StringVar(&findingType, "type", "", "filter by type")
	findingListCmd.Flags().StringVar(&findingSeverity, "severity", "", "filter by severity")
	findingListCmd.Flags().StringVar(&findingStatus, "status", "", "filter by status")
	findingListCmd.Flags().StringVar(&findingTags, "tags", "", "comma-separated tags, all required")
	findingListCmd.Flags().StringVar(&findingSort, "sort", "", "sort order (date, severity, title; default: date)")

	findingUpdateCmd.Flags().StringVar(&findingSeverity, "severity", "", "new severity assessment")
	findingUpdateCmd.Flags().StringVar(&findingConfidence, "confidence", "", "new confidence")
	findingUpdateCmd.Flags().StringVar(&findingStatus, "status", "", "new status")
	findingUpdateCmd.Flags().StringVar(&findingRecommendation, "recommendation", "", "new recommendation")
	findingUpdateCmd.Flags().StringVar(&findingTags, "tags", "", "comma-separated tags (replaces existing)")
	findingUpdateCmd.Flags().StringVar(&findingNotes, "notes", "", "new notes")

	findingCmd.AddCommand(findingAddCmd)
	findingCmd.AddCommand(findingListCmd)
	findingCmd.AddCommand(findingGetCmd)
	findingCmd.AddCommand(findingUpdateCmd)
	findingCmd.AddCommand(findingRemoveCmd)
}

func runFindingAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	var points types.DataPoints
	if findingDataPoints != "" {
		if err := json.Unmarshal([]byte(findingDataPoints), &points); err != nil {
			return fmt.Errorf("parse --data: %w", err)
		}
	}

	finding, err := s.AddFinding(types.Finding{
		Title:          args[0],
		TargetContext:  findingTarget,
		SourceToolName: findingSourceTool,
		Category:       findingCategory,
		Type:           findingType,
		Description:    findingDescription,
		Severity:       findingSeverity,
		Confidence:     findingConfidence,
		Recommendation: findingRecommendation,
		KeyDataPoints:  points,
		Tags:           splitCSV(findingTags),
		Notes:          findingNotes,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(finding)
	}
	fmt.Printf("Added finding %d: %s\n", finding.ID, finding.Title)
	return nil
}

func runFindingList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	findings := s.ListFindings(query.FindingFilter{
		Target:     findingTarget,
		SourceTool: findingSourceTool,
		Category:   findingCategory,
		Type:       findingType,
		Severity:   findingSeverity,
		Status:     findingStatus,
		Tags:       types.LowercaseSet(splitCSV(findingTags)),
	}, findingSort)

	if flagJSON {
		return printJSON(findings)
	}
	if len(findings) == 0 {
		fmt.Println("No findings found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tSEVERITY\tSTATUS\tTARGET\tEVENT\tTITLE")
	for _, f := range findings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.Severity, f.Status, f.TargetContext,
			formatDate(f.EventTime), truncate(f.Title, 50))
	}
	return w.Flush()
}

func runFindingGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	f, err := s.FindingByID(id)
	if err != nil {
		return err
	}
	return printJSON(f)
}

func runFindingUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	f, err := s.FindingByID(id)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("severity") {
		f.Severity = findingSeverity
	}
	if flags.Changed("confidence") {
		f.Confidence = findingConfidence
	}
	if flags.Changed("status") {
		f.Status = findingStatus
	}
	if flags.Changed("recommendation") {
		f.Recommendation = findingRecommendation
	}
	if flags.Changed("tags") {
		f.Tags = splitCSV(findingTags)
	}
	if flags.Changed("notes") {
		f.Notes = findingNotes
	}

	updated, err := s.UpdateFinding(f)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated finding %d\n", updated.ID)
	return nil
}

func runFindingRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.RemoveFinding(id); err != nil {
		return err
	}
	fmt.Printf("Removed finding %d\n", id)
	return nil
}
