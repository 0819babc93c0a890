package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/progress"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show rank, level, coverage and recent services",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		p := rt.tracker.Profile()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Rank:      %s\n", p.Rank)
		fmt.Fprintf(out, "Level:     %d\n", p.Level)
		fmt.Fprintf(out, "Coverage:  %.1f%% of %d services\n", p.Coverage, rt.catalog.Size())
		if next, req, ok := progress.NextRank(p.Rank); ok {
			fmt.Fprintf(out, "Next rank: %s (%s)\n", next, req)
		}

		if p.Quiz != nil {
			when := time.UnixMilli(p.Quiz.Timestamp).Local().Format("2006-01-02 15:04")
			fmt.Fprintf(out, "Quiz:      %d / %d on %s\n", p.Quiz.Score, p.Quiz.Total, when)
		} else {
			fmt.Fprintln(out, "Quiz:      not taken")
		}

		if len(p.Recents) > 0 {
			fmt.Fprintln(out, "\nRecently viewed")
			for i, id := range p.Recents {
				title := id
				if t, ok := rt.catalog.Lookup(id); ok {
					title = t.Title
				}
				fmt.Fprintf(out, "  %2d. %-18s %s\n", i+1, id, title)
			}
		}
		return nil
	},
}
