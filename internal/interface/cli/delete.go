package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <blueprint-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved blueprint",
	Long: `Delete a saved blueprint. Asks for confirmation unless --yes is given.

Examples:
  kapro delete 3f2a
  kapro delete 3f2a --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := history.Find(a.ctrl.Sessions(), args[0])
	if err != nil {
		return err
	}

	confirm := promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
	if deleteYes {
		confirm = nil
	}

	removed, err := a.ctrl.Remove(sess.ID, confirm)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%s)\n", sess.Title, sess.ID)
	return nil
}

// promptConfirm asks on out and reads y/n from in. Anything but yes declines.
func promptConfirm(in io.Reader, out io.Writer) controller.ConfirmFunc {
	return func(s models.Session) bool {
		fmt.Fprintf(out, "Delete this blueprint?\n  %s\n  %s\n[y/N]: ", s.Title, formatTimestamp(s.CreatedAt()))
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
