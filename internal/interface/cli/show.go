package cli

import (
	"fmt"

	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/views"
	"github.com/spf13/cobra"
)

var showView string

var showCmd = &cobra.Command{
	Use:   "show <blueprint-id>",
	Short: "Print one view of a saved blueprint",
	Long: `Print a saved blueprint. The id may be a unique prefix.

Examples:
  kapro show 3f2a
  kapro show 3f2a --view roadmap
  kapro show 3f2a --view all`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showView, "view", string(views.Default), "View to print (summary, mindmap, roadmap, decisions, modules, automations, content, loops, all)")
}

func runShow(cmd *cobra.Command, args []string) error {
	view, all, err := parseViewFlag(showView)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := history.Find(a.ctrl.Sessions(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if all {
		fmt.Fprint(out, views.Markdown(sess))
		return nil
	}
	fmt.Fprintf(out, "%s · %s · %s\n\n", sess.Title, views.Label(view), formatTimestamp(sess.CreatedAt()))
	fmt.Fprint(out, views.Render(&sess.Data, view, terminalWidth()))
	return nil
}
