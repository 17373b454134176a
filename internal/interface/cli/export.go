package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/neilberkman/kapro/internal/core/views"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <blueprint-id>",
	Short: "Export a blueprint to markdown, JSON or YAML",
	Long: `Export a saved blueprint with every view to a file.

By default exports to current directory as blueprint-<id>.md.
Use --output to specify a custom path, or "-" for stdout.

Examples:
  kapro export 3f2a
  kapro export 3f2a --format json -o plan.json
  kapro export 3f2a --format yaml
  kapro export 3f2a -o -`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: blueprint-<id>.<ext> in current directory)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "markdown", "Output format: markdown, json or yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := history.Find(a.ctrl.Sessions(), args[0])
	if err != nil {
		return err
	}

	content, ext, err := renderExport(sess, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "-" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	outputPath := exportOutput
	if outputPath == "" {
		shortID := sess.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		outputPath = fmt.Sprintf("blueprint-%s.%s", shortID, ext)
	}
	if !filepath.IsAbs(outputPath) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		outputPath = filepath.Join(cwd, outputPath)
	}

	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", sess.Title, outputPath)
	return nil
}

func renderExport(sess models.Session, format string) ([]byte, string, error) {
	switch format {
	case "markdown", "md":
		return []byte(views.Markdown(sess)), "md", nil
	case "json":
		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode blueprint: %w", err)
		}
		return append(data, '\n'), "json", nil
	case "yaml", "yml":
		// Round-trip through JSON so keys keep their JSON names
		data, err := json.Marshal(sess)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode blueprint: %w", err)
		}
		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, "", fmt.Errorf("failed to encode blueprint: %w", err)
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode blueprint: %w", err)
		}
		return out, "yaml", nil
	default:
		return nil, "", fmt.Errorf("unknown format %q (want markdown, json or yaml)", format)
	}
}
