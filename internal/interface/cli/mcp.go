package cli

import (
	"fmt"

	"github.com/neilberkman/kapro/cmd/kapro/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server exposing saved blueprints",
	Long: `Start an MCP (Model Context Protocol) server over stdio that lets an
assistant list your saved blueprints and read any of their views.

Tools: list_blueprints, get_blueprint

Configure in your MCP client's config file:
  {
    "mcpServers": {
      "kapro": {
        "command": "kapro",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// The store re-reads the slot on every call so new blueprints show up
	if err := mcp.StartServer(version, a.store); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
