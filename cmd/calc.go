package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/quota"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Estimate free-tier usage for a planned workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		u := quota.DefaultUsage()
		u.Requests, _ = cmd.Flags().GetFloat64("requests")
		u.StorageGB, _ = cmd.Flags().GetFloat64("storage")
		u.Neurons, _ = cmd.Flags().GetFloat64("neurons")

		r, err := quota.Evaluate(u)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %12s  %12s  %7s  %s\n", "Resource", "Planned", "Limit", "Usage", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, l := range r.Lines {
			fmt.Fprintf(out, "%-10s  %12.1f  %12.1f  %6.1f%%  %s\n", l.Resource, l.Value, l.Limit, l.Percent, l.Label)
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "Overall load %.1f%% (%s)\n", r.Total, r.Severity)
		return nil
	},
}

func init() {
	d := quota.DefaultUsage()
	calcCmd.Flags().Float64("requests", d.Requests, "Worker requests per day")
	calcCmd.Flags().Float64("storage", d.StorageGB, "Stored data in GB")
	calcCmd.Flags().Float64("neurons", d.Neurons, "Workers AI neurons per day")
}
