package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/neilberkman/kapro/internal/core/document"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema the model must follow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(document.SchemaJSON()), "", "  "); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
