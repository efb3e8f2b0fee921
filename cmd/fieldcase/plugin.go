// Plugin commands track discovered WordPress plugins per target host.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

var (
	pluginHosts         string
	pluginVersion       string
	pluginOldestVersion string
	pluginStatus        string
	pluginCVEs          string
	pluginSourcePath    string
	pluginReadme        string
	pluginNotes         string
	pluginTargetHost    string
	pluginHasCVE        string
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Manage discovered plugins",
}

var pluginAddCmd = &cobra.Command{
	Use:   "add SLUG",
	Short: "Record a discovered plugin",
	Long: `Add records one plugin record per target host. The slug is
lowercased. With no --hosts the record gets target host "N/A".

Example:
  fieldcase plugin add contact-form-7 --hosts blog.example.com --version 5.7.2
  fieldcase plugin add akismet --hosts "a.example.com,b.example.com" --cves CVE-2021-24867`,
	Args: cobra.ExactArgs(1),
	RunE: runPluginAdd,
}

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plugin records",
	Args:  cobra.NoArgs,
	RunE:  runPluginList,
}

var pluginGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one plugin record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPluginGet,
}

var pluginUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of a plugin record",
	Args:  cobra.ExactArgs(1),
	RunE:  runPluginUpdate,
}

var pluginRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove a plugin record",
	Args:    cobra.ExactArgs(1),
	RunE:    runPluginRemove,
}

func init() {
	pluginAddCmd.Flags().StringVar(&pluginHosts, "hosts", "", "comma-separated target hosts (one record each)")
	pluginAddCmd.Flags().StringVar(&pluginVersion, "version", "", "version observed on the target")
	pluginAddCmd.Flags().StringVar(&pluginOldestVersion, "oldest-version", "", "oldest version known from changelog or readme")
	pluginAddCmd.Flags().StringVar(&pluginStatus, "status", "", "investigation status (default: To Investigate)")
	pluginAddCmd.Flags().StringVar(&pluginCVEs, "cves", "", "comma-separated CVE IDs")
	pluginAddCmd.Flags().StringVar(&pluginSourcePath, "source", "", "path or URL where the plugin was discovered")
	pluginAddCmd.Flags().StringVar(&pluginReadme, "readme", "", "readme content snippet")
	pluginAddCmd.Flags().StringVar(&pluginNotes, "notes", "", "free-form notes")

	pluginListCmd.Flags().StringVar(&pluginTargetHost, "host", "", "filter by target host")
	pluginListCmd.Flags().StringVar(&pluginStatus, "status", "", "filter by status")
	pluginListCmd.Flags().StringVar(&pluginHasCVE, "has-cve", "", "filter by CVE presence (y or n)")

	pluginUpdateCmd.Flags().StringVar(&pluginVersion, "version", "", "new observed version")
	pluginUpdateCmd.Flags().StringVar(&pluginOldestVersion, "oldest-version", "", "new oldest known version")
	pluginUpdateCmd.Flags().StringVar(&pluginStatus, "status", "", "new status")
	pluginUpdateCmd.Flags().StringVar(&pluginCVEs, "cves", "", "comma-separated CVE IDs (replaces existing)")
	pluginUpdateCmd.Flags().StringVar(&pluginNotes, "notes", "", "new notes")

	pluginCmd.AddCommand(pluginAddCmd)
	pluginCmd.AddCommand(pluginListCmd)
	pluginCmd.AddCommand(pluginGetCmd)
	pluginCmd.AddCommand(pluginUpdateCmd)
	pluginCmd.AddCommand(pluginRemoveCmd)
}

func runPluginAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	added, err := s.AddPlugin(types.Plugin{
		Slug:               args[0],
		VersionObserved:    pluginVersion,
		OldestVersionKnown: pluginOldestVersion,
		Status:             pluginStatus,
		CVEIDs:             splitCSV(pluginCVEs),
		SourcePath:         pluginSourcePath,
		ReadmeSnippet:      pluginReadme,
		Notes:              pluginNotes,
	}, splitCSV(pluginHosts))
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(added)
	}
	for _, p := range added {
		fmt.Printf("Added plugin %d: %s on %s\n", p.ID, p.Slug, p.TargetHost)
	}
	return nil
}

func runPluginList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	plugins := s.ListPlugins(query.PluginFilter{
		TargetHost: pluginTargetHost,
		Status:     pluginStatus,
		HasCVE:     pluginHasCVE,
	})

	if flagJSON {
		return printJSON(plugins)
	}
	if len(plugins) == 0 {
		fmt.Println("No plugins found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tSLUG\tHOST\tVERSION\tSTATUS\tCVES")
	for _, p := range plugins {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Slug, p.TargetHost, p.VersionObserved, p.Status,
			strings.Join(p.CVEIDs, ","))
	}
	return w.Flush()
}

func runPluginGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	p, err := s.PluginByID(id)
	if err != nil {
		return err
	}
	return printJSON(p)
}

func runPluginUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	p, err := s.PluginByID(id)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("version") {
		p.VersionObserved = pluginVersion
	}
	if flags.Changed("oldest-version") {
		p.OldestVersionKnown = pluginOldestVersion
	}
	if flags.Changed("status") {
		p.Status = pluginStatus
	}
	if flags.Changed("cves") {
		p.CVEIDs = splitCSV(pluginCVEs)
	}
	if flags.Changed("notes") {
		p.Notes = pluginNotes
	}

	updated, err := s.UpdatePlugin(p)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated plugin %d\n", updated.ID)
	return nil
}

func runPluginRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.RemovePlugin(id); err != nil {
		return err
	}
	fmt.Printf("Removed plugin %d\n", id)
	return nil
}
