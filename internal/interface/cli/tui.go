package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/kapro/internal/interface/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long:  "Launch the terminal UI: paste a transcript, architect it, and browse every view of your saved blueprints",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p := tea.NewProgram(
		tui.New(a.ctrl),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
