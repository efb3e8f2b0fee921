// Ajax commands track discovered AJAX actions and their test state.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

var (
	ajaxTargetHost string
	ajaxPluginSlug string
	ajaxPrivilege  string
	ajaxStatus     string
	ajaxMethods    string
	ajaxParams     string
	ajaxCVEs       string
	ajaxSource     string
	ajaxNotes      string
	ajaxListName   string
)

var ajaxCmd = &cobra.Command{
	Use:   "ajax",
	Short: "Manage discovered AJAX actions",
}

var ajaxAddCmd = &cobra.Command{
	Use:   "add ACTION_NAME",
	Short: "Record a discovered AJAX action",
	Long: `Add records an AJAX action endpoint. HTTP methods default to GET
and POST; privilege level defaults to Unknown and test status to
Pending Test.

Example:
  fieldcase ajax add wpforms_submit --host blog.example.com --privilege nopriv
  fieldcase ajax add export_users --host blog.example.com --plugin-slug user-export --params "uid,format"`,
	Args: cobra.ExactArgs(1),
	RunE: runAjaxAdd,
}

var ajaxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List AJAX actions",
	Args:  cobra.NoArgs,
	RunE:  runAjaxList,
}

var ajaxGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one AJAX action",
	Args:  cobra.ExactArgs(1),
	RunE:  runAjaxGet,
}

var ajaxUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of an AJAX action",
	Args:  cobra.ExactArgs(1),
	RunE:  runAjaxUpdate,
}

var ajaxRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove an AJAX action",
	Args:    cobra.ExactArgs(1),
	RunE:    runAjaxRemove,
}

func init() {
	ajaxAddCmd.Flags().StringVar(&ajaxTargetHost, "host", "", "target host serving the action")
	ajaxAddCmd.Flags().StringVar(&ajaxPluginSlug, "plugin-slug", "", "plugin the action belongs to")
	ajaxAddCmd.Flags().StringVar(&ajaxPrivilege, "privilege", "", "privilege level (nopriv, auth, admin, specific_capability, Unknown)")
	ajaxAddCmd.Flags().StringVar(&ajaxMethods, "methods", "", "comma-separated HTTP methods (default: GET,POST)")
	ajaxAddCmd.Flags().StringVar(&ajaxParams, "params", "", "comma-separated interesting parameters")
	ajaxAddCmd.Flags().StringVar(&ajaxCVEs, "cves", "", "comma-separated related CVE IDs")
	ajaxAddCmd.Flags().StringVar(&ajaxSource, "source", "", "where the action was discovered")
	ajaxAddCmd.Flags().StringVar(&ajaxNotes, "notes", "", "free-form notes")

	ajaxListCmd.Flags().StringVar(&ajaxListName, "name", "", "filter by action name substring")
	ajaxListCmd.Flags().StringVar(&ajaxTargetHost, "host", "", "filter by target host")
	ajaxListCmd.Flags().StringVar(&ajaxStatus, "status", "", "filter by test status")
	ajaxListCmd.Flags().StringVar(&ajaxPrivilege, "privilege", "", "filter by privilege level")

	ajaxUpdateCmd.Flags().StringVar(&ajaxPrivilege, "privilege", "", "new privilege level")
	ajaxUpdateCmd.Flags().StringVar(&ajaxStatus, "status", "", "new test status")
	ajaxUpdateCmd.Flags().StringVar(&ajaxMethods, "methods", "", "comma-separated HTTP methods (replaces existing)")
	ajaxUpdateCmd.Flags().StringVar(&ajaxParams, "params", "", "comma-separated interesting parameters (replaces existing)")
	ajaxUpdateCmd.Flags().StringVar(&ajaxCVEs, "cves", "", "comma-separated related CVE IDs (replaces existing)")
	ajaxUpdateCmd.Flags().StringVar(&ajaxNotes, "notes", "", "new notes")

	ajaxCmd.AddCommand(ajaxAddCmd)
	ajaxCmd.AddCommand(ajaxListCmd)
	ajaxCmd.AddCommand(ajaxGetCmd)
	ajaxCmd.AddCommand(ajaxUpdateCmd)
	ajaxCmd.AddCommand(ajaxRemoveCmd)
}

func runAjaxAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	action, err := s.AddAjaxAction(types.AjaxAction{
		Name:              args[0],
		TargetHost:        ajaxTargetHost,
		PluginSourceSlug:  ajaxPluginSlug,
		PrivilegeLevel:    ajaxPrivilege,
		HTTPMethods:       splitCSV(ajaxMethods),
		InterestingParams: splitCSV(ajaxParams),
		CVEIDs:            splitCSV(ajaxCVEs),
		Source:            ajaxSource,
		Notes:             ajaxNotes,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(action)
	}
	fmt.Printf("Added AJAX action %d: %s\n", action.ID, action.Name)
	return nil
}

func runAjaxList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	actions := s.ListAjaxActions(query.AjaxFilter{
		Name:       ajaxListName,
		TargetHost: ajaxTargetHost,
		Status:     ajaxStatus,
		Privilege:  ajaxPrivilege,
	})

	if flagJSON {
		return printJSON(actions)
	}
	if len(actions) == 0 {
		fmt.Println("No AJAX actions found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tACTION\tHOST\tPRIVILEGE\tSTATUS")
	for _, a := range actions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.TargetHost, a.PrivilegeLevel, a.TestStatus)
	}
	return w.Flush()
}

func runAjaxGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	a, err := s.AjaxActionByID(id)
	if err != nil {
		return err
	}
	return printJSON(a)
}

func runAjaxUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	a, err := s.AjaxActionByID(id)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("privilege") {
		a.PrivilegeLevel = ajaxPrivilege
	}
	if flags.Changed("status") {
		a.TestStatus = ajaxStatus
	}
	if flags.Changed("methods") {
		a.HTTPMethods = splitCSV(ajaxMethods)
	}
	if flags.Changed("params") {
		a.InterestingParams = splitCSV(ajaxParams)
	}
	if flags.Changed("cves") {
		a.CVEIDs = splitCSV(ajaxCVEs)
	}
	if flags.Changed("notes") {
		a.Notes = ajaxNotes
	}

	updated, err := s.UpdateAjaxAction(a)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated AJAX action %d\n", updated.ID)
	return nil
}

func runAjaxRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.RemoveAjaxAction(id); err != nil {
		return err
	}
	fmt.Printf("Removed AJAX action %d\n", id)
	return nil
}
