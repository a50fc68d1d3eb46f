package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/nissyi-gh/daytrack/internal/app"
	"github.com/nissyi-gh/daytrack/internal/filter"
	"github.com/nissyi-gh/daytrack/internal/importer"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/report"
	"github.com/nissyi-gh/daytrack/internal/stats"
	"github.com/spf13/cobra"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task",
		Long: `Add a task with status Pending.

Example:
  daytrack add "Write weekly report" --category Work --priority High --due 2024-05-10 --at 09:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := app.NewTask{Name: args[0]}
			n.Category, _ = cmd.Flags().GetString("category")
			n.Priority, _ = cmd.Flags().GetString("priority")
			n.DueDate, _ = cmd.Flags().GetString("due")
			n.ScheduledStart, _ = cmd.Flags().GetString("at")
			n.Description, _ = cmd.Flags().GetString("desc")

			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := tracker.Start()
			if err != nil {
				return err
			}
			st, err = tracker.Submit(st, n)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task added (#%d)\n", len(st.Tasks))
			return nil
		},
	}
	cmd.Flags().String("category", string(model.CategoryOther), "Category: Work, Personal, Shopping, Health or Other")
	cmd.Flags().String("priority", string(model.PriorityNormal), "Priority: Urgent, High, Normal or Low")
	cmd.Flags().String("due", "", "Due date YYYY-MM-DD (default today)")
	cmd.Flags().String("at", "", "Scheduled start HH:MM or \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().String("desc", "", "Description")
	return cmd
}

// parseStatusArg accepts a status in any case, with "-" or "_" for spaces.
func parseStatusArg(s string) (model.Status, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range model.Statuses {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return model.ParseStatus(s)
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [number] [status]",
		Short: "Change the status of a task",
		Long: `Change the status of the task with the given number, as shown by "daytrack list".

Starting a task records its start time; completing it records the completion
time and the minutes spent.

Example:
  daytrack status 3 in-progress
  daytrack status 3 completed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task number %q", args[0])
			}
			status, err := parseStatusArg(args[1])
			if err != nil {
				return err
			}

			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := tracker.Start()
			if err != nil {
				return err
			}
			st, err = tracker.SetStatus(st, number-1, status)
			if err != nil {
				return err
			}

			t := st.Tasks[number-1]
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %q is now %s\n", t.Name, t.Status)
			if t.Status == model.StatusCompleted && t.CompletedAt != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "  Time spent: %.1f min\n", t.TimeSpent)
			}
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, five per page",
		Long: `List tasks matching the filters, five per page. Each filter flag may be
repeated; "All" or no flag means no restriction.

Example:
  daytrack list --category Work --category Health --status Pending
  daytrack list --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var c filter.Criteria
			c.Categories, _ = cmd.Flags().GetStringArray("category")
			c.Priorities, _ = cmd.Flags().GetStringArray("priority")
			c.Statuses, _ = cmd.Flags().GetStringArray("status")
			page, _ := cmd.Flags().GetInt("page")

			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := tracker.Start()
			if err != nil {
				return err
			}
			st = st.WithFilter(c).GoToPage(page)

			out := cmd.OutOrStdout()
			rows := st.Visible()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No tasks found.")
				return nil
			}
			now := tracker.Now()
			for _, r := range rows {
				fmt.Fprintf(out, "%3d %s\n", r.Index+1, report.Line(r.Task, now))
			}
			fmt.Fprintf(out, "Page %d of %d (%d tasks)\n", st.Pager.Page, st.Pager.Total(), st.Pager.N)
			return nil
		},
	}
	cmd.Flags().StringArray("category", nil, "Category filter (repeatable)")
	cmd.Flags().StringArray("priority", nil, "Priority filter (repeatable)")
	cmd.Flags().StringArray("status", nil, "Status filter (repeatable)")
	cmd.Flags().Int("page", 1, "Page number")
	return cmd
}

func printDistribution(cmd *cobra.Command, title string, d stats.Distribution) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", title)
	for _, b := range d {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %3d  %5.1f%%\n", b.Label, b.Count, b.Percent)
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := tracker.Start()
			if err != nil {
				return err
			}
			s := st.Summary(tracker.Now())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total: %d  Overdue: %d  Minutes spent: %.1f\n", s.Total, s.Overdue, s.MinutesSpent)
			printDistribution(cmd, "By category", s.Categories)
			printDistribution(cmd, "By priority", s.Priorities)
			printDistribution(cmd, "By status", s.Statuses)
			fmt.Fprintf(out, "Completion rate: %.1f%%\n", s.Rates.Completed)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Add tasks from a YAML file",
		Long: `Add every task listed in a YAML file. The whole file is validated first,
so an invalid entry means nothing is added.

Example file:
  tasks:
    - name: Buy groceries
      category: Shopping
      due_date: 2024-05-10
    - name: Morning run
      category: Health
      priority: High
      scheduled_start: "07:00"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := tracker.Start()
			if err != nil {
				return err
			}
			_, count, err := importer.Import(tracker, st, data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d tasks\n", count)
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a Markdown summary of all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := tracker.Start()
			if err != nil {
				return err
			}
			md := report.Render(st, tracker.Now())

			if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
				if err := copyToClipboard(md); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Report copied to clipboard")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().Bool("copy", false, "Copy to the clipboard instead of printing")
	return cmd
}
