// Project commands create and list engagement workspaces.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/project"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage engagement projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new project",
	Long: `Create makes a new project directory under the base directory with
the standard layout (findings/, logs/, notes/, crawl_outputs/).

Project names may only contain letters, digits, underscores, and hyphens.

Example:
  fieldcase project create acme-q3
  fieldcase project create acme-q3 --base-dir /engagements`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects under the base directory",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

func init() {
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	baseDir, err := resolveBaseDir()
	if err != nil {
		return fmt.Errorf("resolve base dir: %w", err)
	}

	p, err := project.Create(baseDir, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(p)
	}
	fmt.Printf("Created project %s at %s\n", p.Name, p.Root)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	baseDir, err := resolveBaseDir()
	if err != nil {
		return fmt.Errorf("resolve base dir: %w", err)
	}

	names, err := project.List(baseDir)
	if err != nil {
		return err
	}

	if flagJSON {
		if names == nil {
			names = []string{}
		}
		return printJSON(names)
	}
	if len(names) == 0 {
		fmt.Println("No projects found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
