package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/catalog"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [id]",
	Short: "List starter code templates, or print one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			t, ok := catalog.LookupTemplate(args[0])
			if !ok {
				return fmt.Errorf("template not found: %q", args[0])
			}
			fmt.Fprintf(out, "// %s (%s)\n", t.Title, strings.Join(t.Stack, ", "))
			fmt.Fprintln(out, t.CodeSnippet)
			return nil
		}

		for _, t := range catalog.CodeTemplates() {
			fmt.Fprintf(out, "%-14s  %-28s  %s\n", t.ID, t.Title, strings.Join(t.Stack, ", "))
		}
		return nil
	},
}

var troubleshootCmd = &cobra.Command{
	Use:   "troubleshoot [area]",
	Short: "Show common failures with their cause and fix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		areas := catalog.AllTroubleAreas()
		if len(args) == 1 {
			a, ok := catalog.ParseTroubleArea(args[0])
			if !ok {
				return fmt.Errorf("unknown area %q (want connectivity, compute or storage)", args[0])
			}
			areas = []catalog.TroubleArea{a}
		}

		out := cmd.OutOrStdout()
		for _, a := range areas {
			fmt.Fprintln(out, a)
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, s := range catalog.Troubleshooting(a) {
				fmt.Fprintf(out, "  ✗ %s\n    cause: %s\n    fix:   %s\n", s.Symptom, s.Cause, s.Fix)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
