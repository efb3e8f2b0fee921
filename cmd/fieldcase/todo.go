// Todo commands manage the engagement task list.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietriot-sec/fieldcase/internal/query"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

var (
	todoDescription string
	todoPriority    string
	todoSeverity    string
	todoStatus      string
	todoCategory    string
	todoTarget      string
	todoNotes       string

	todoListNewest bool
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage engagement todos",
}

var todoAddCmd = &cobra.Command{
	Use:   "add DESCRIPTION",
	Short: "Add a todo",
	Long: `Add creates a new todo. Priority defaults to Triage, severity to
None, and status to Pending.

Example:
  fieldcase todo add "Test wp-admin login rate limiting" --priority High
  fieldcase todo add "Review nmap output" --target 10.0.0.5 --category Recon`,
	Args: cobra.ExactArgs(1),
	RunE: runTodoAdd,
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Long: `List shows todos ordered by priority, or newest first with
--newest. All filter flags combine.

Example:
  fieldcase todo list --status Pending
  fieldcase todo list --priority High --target 10.0.0.5`,
	Args: cobra.NoArgs,
	RunE: runTodoList,
}

var todoGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoGet,
}

var todoUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update fields of a todo",
	Long: `Update changes only the fields whose flags are given. Setting status
to Done stamps the completion date; moving it away clears it.

Example:
  fieldcase todo update 3 --status "In Progress"
  fieldcase todo update 3 --priority Medium --notes "blocked on creds"`,
	Args: cobra.ExactArgs(1),
	RunE: runTodoUpdate,
}

var todoDoneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Mark a todo as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoDone,
}

var todoRemoveCmd = &cobra.Command{
	Use:     "remove ID",
	Aliases: []string{"rm"},
	Short:   "Remove a todo",
	Args:    cobra.ExactArgs(1),
	RunE:    runTodoRemove,
}

func init() {
	todoAddCmd.Flags().StringVar(&todoPriority, "priority", "", "priority (High, Medium, Low, Triage)")
	todoAddCmd.Flags().StringVar(&todoSeverity, "severity", "", "severity (Critical, High, Medium, Low, Informational, None)")
	todoAddCmd.Flags().StringVar(&todoCategory, "category", "", "free-form category (default: General)")
	todoAddCmd.Flags().StringVar(&todoTarget, "target", "", "host, URL, or scope this todo applies to")
	todoAddCmd.Flags().StringVar(&todoNotes, "notes", "", "free-form notes")

	todoListCmd.Flags().StringVar(&todoStatus, "status", "", "filter by status")
	todoListCmd.Flags().StringVar(&todoPriority, "priority", "", "filter by priority")
	todoListCmd.Flags().StringVar(&todoSeverity, "severity", "", "filter by severity")
	todoListCmd.Flags().StringVar(&todoCategory, "category", "", "filter by category")
	todoListCmd.Flags().StringVar(&todoTarget, "target", "", "filter by target")
	todoListCmd.Flags().BoolVar(&todoListNewest, "newest", false, "sort newest first instead of by priority")

	todoUpdateCmd.Flags().StringVar(&todoDescription, "description", "", "new description")
	todoUpdateCmd.Flags().StringVar(&todoPriority, "priority", "", "new priority")
	todoUpdateCmd.Flags().StringVar(&todoSeverity, "severity", "", "new severity")
	todoUpdateCmd.Flags().StringVar(&todoStatus, "status", "", "new status (Pending, In Progress, Done)")
	todoUpdateCmd.Flags().StringVar(&todoCategory, "category", "", "new category")
	todoUpdateCmd.Flags().StringVar(&todoTarget, "target", "", "new target")
	todoUpdateCmd.Flags().StringVar(&todoNotes, "notes", "", "new notes")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoGetCmd)
	todoCmd.AddCommand(todoUpdateCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoRemoveCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	todo, err := s.AddTodo(types.Todo{
		Description: args[0],
		Priority:    todoPriority,
		Severity:    todoSeverity,
		Category:    todoCategory,
		Target:      todoTarget,
		Notes:       todoNotes,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(todo)
	}
	fmt.Printf("Added todo %d: %s\n", todo.ID, todo.Description)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	todos := s.ListTodos(query.TodoFilter{
		Status:   todoStatus,
		Priority: todoPriority,
		Severity: todoSeverity,
		Category: todoCategory,
		Target:   todoTarget,
	}, todoListNewest)

	if flagJSON {
		return printJSON(todos)
	}
	if len(todos) == 0 {
		fmt.Println("No todos found")
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tPRIORITY\tSTATUS\tTARGET\tDESCRIPTION")
	for _, t := range todos {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.ID, t.Priority, t.Status, t.Target, truncate(t.Description, 60))
	}
	return w.Flush()
}

func runTodoGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	todo, err := s.TodoByID(id)
	if err != nil {
		return err
	}
	return printJSON(todo)
}

func runTodoUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	todo, err := s.TodoByID(id)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("description") {
		todo.Description = todoDescription
	}
	if flags.Changed("priority") {
		todo.Priority = todoPriority
	}
	if flags.Changed("severity") {
		todo.Severity = todoSeverity
	}
	if flags.Changed("status") {
		todo.Status = todoStatus
	}
	if flags.Changed("category") {
		todo.Category = todoCategory
	}
	if flags.Changed("target") {
		todo.Target = todoTarget
	}
	if flags.Changed("notes") {
		todo.Notes = todoNotes
	}

	updated, err := s.UpdateTodo(todo)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(updated)
	}
	fmt.Printf("Updated todo %d\n", updated.ID)
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	todo, err := s.MarkTodoDone(id)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(todo)
	}
	fmt.Printf("Completed todo %d: %s\n", todo.ID, todo.Description)
	return nil
}

func runTodoRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}

	if err := s.RemoveTodo(id); err != nil {
		return err
	}
	fmt.Printf("Removed todo %d\n", id)
	return nil
}
