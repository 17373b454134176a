package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listSince string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved blueprints",
	Long: `List saved blueprints, newest first.

--since accepts natural language ("yesterday", "last week", "3 days ago")
or a date (2025-01-31).

Examples:
  kapro list
  kapro list --limit 5
  kapro list --since "last week"`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of blueprints to display")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only blueprints created after this date")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sessions := a.ctrl.Sessions()
	if listSince != "" {
		since, ok := parseDate(listSince, time.Now())
		if !ok {
			return fmt.Errorf("could not understand date %q", listSince)
		}
		sessions = history.Since(sessions, since)
	}

	// Apply limit (interface concern - pagination)
	if listLimit > 0 && len(sessions) > listLimit {
		sessions = sessions[:listLimit]
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No blueprints found. Run 'kapro architect <file>' or 'kapro' to create one.")
		return nil
	}

	fmt.Fprintf(out, "Showing %d blueprint(s)\n\n", len(sessions))
	for i, s := range sessions {
		fmt.Fprintf(out, "[%d] %s\n", i+1, s.ID)
		fmt.Fprintf(out, "    Title: %s\n", truncate(s.Title, 80))
		fmt.Fprintf(out, "    One Move: %s\n", truncate(s.Data.TheOneMove.Action, 80))
		fmt.Fprintf(out, "    Created: %s\n", formatTimestamp(s.CreatedAt()))
		fmt.Fprintln(out)
	}
	return nil
}

// parseDate tries common layouts, then natural language
func parseDate(s string, now time.Time) (time.Time, bool) {
	formats := []string{
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"01/02/2006",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, s, now.Location()); err == nil {
			return t, true
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if result, err := w.Parse(s, now); err == nil && result != nil {
		return result.Time, true
	}
	return time.Time{}, false
}

// truncate collapses whitespace and shortens at a word boundary
func truncate(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}

	truncated := s[:maxLen]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > maxLen-20 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

// formatTimestamp renders "2 days ago (Jan 2, 2006 15:04)"
func formatTimestamp(t time.Time) string {
	return fmt.Sprintf("%s (%s)", humanize.Time(t), t.Format("Jan 2, 2006 15:04"))
}
