package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/llm"
	"github.com/neilberkman/kapro/internal/core/views"
	"github.com/spf13/cobra"
)

var (
	architectView    string
	architectJSON    bool
	architectTimeout time.Duration
)

var architectCmd = &cobra.Command{
	Use:   "architect [file]",
	Short: "Architect a transcript and save the blueprint",
	Long: `Send a transcript to the model, validate the structured blueprint it
returns, save it to history and print it.

Reads the transcript from the file argument, or from stdin when the argument
is omitted or "-".

Examples:
  kapro architect meeting.txt
  pbpaste | kapro architect --view roadmap
  kapro architect notes.md --view all
  kapro architect notes.md --json > blueprint.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArchitect,
}

func init() {
	rootCmd.AddCommand(architectCmd)
	architectCmd.Flags().StringVar(&architectView, "view", string(views.Default), "View to print (summary, mindmap, roadmap, decisions, modules, automations, content, loops, all)")
	architectCmd.Flags().BoolVar(&architectJSON, "json", false, "Print the saved session as JSON")
	architectCmd.Flags().DurationVar(&architectTimeout, "timeout", 0, "Give up after this long (default: no timeout)")
}

func runArchitect(cmd *cobra.Command, args []string) error {
	transcript, err := readTranscript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	view, all, err := parseViewFlag(architectView)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if architectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, architectTimeout)
		defer cancel()
	}

	spin := newSpinner("Architecting your system...")
	spin.Start()
	sess, err := a.ctrl.Submit(ctx, transcript)
	spin.Stop()

	if err != nil {
		if errors.Is(err, controller.ErrEmptyInput) {
			return errors.New("transcript is empty")
		}
		if msg := a.ctrl.Snapshot().Error; msg != "" {
			return errors.New(msg)
		}
		return errors.New(llm.UserMessage(err))
	}

	out := cmd.OutOrStdout()
	if architectJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sess)
	}

	fmt.Fprintf(out, "✓ Saved %q (%s)\n\n", sess.Title, sess.ID)
	if all {
		fmt.Fprint(out, views.Markdown(sess))
		return nil
	}
	fmt.Fprint(out, views.Render(&sess.Data, view, terminalWidth()))
	return nil
}

// readTranscript reads the file named in args, or stdin
func readTranscript(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

// parseViewFlag resolves --view; "all" selects every view
func parseViewFlag(s string) (views.ID, bool, error) {
	if s == "all" {
		return views.Default, true, nil
	}
	id, ok := views.Parse(s)
	if !ok {
		return "", false, fmt.Errorf("unknown view %q", s)
	}
	return id, false, nil
}

// terminalWidth reads $COLUMNS, defaulting to 100
func terminalWidth() int {
	var w int
	if _, err := fmt.Sscanf(os.Getenv("COLUMNS"), "%d", &w); err == nil && w > 0 {
		return w
	}
	return 100
}
