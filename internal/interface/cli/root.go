package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath      string
	configDir   string
	debug       bool
	version     = "dev"
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(v, commit, date string) {
	version = v
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kapro",
	Short: "Knowledge Architect: turn transcripts into execution blueprints",
	Long: `kapro - turn a raw transcript or brain-dump into a structured blueprint

One model call decomposes the transcript into an executive summary, a theme
map, a NOW/NEXT/LATER roadmap, a decision board, project modules, automation
blueprints, content ideas, open loops and The One Move. Every blueprint is
saved locally and can be browsed, exported or served over MCP.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: <config dir>/kapro.db)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Config directory (default: $KAPRO_CONFIG_DIR or ~/.config/kapro)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log at debug level, including rejected model output")
}
