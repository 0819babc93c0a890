package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/llm"
	"github.com/abhisek/cfdroid/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded assistant requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assistant requests",
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		opts := store.QueryOpts{}
		opts.Limit, _ = flags.GetInt("limit")
		opts.Purpose, _ = flags.GetString("purpose")
		opts.Failed, _ = flags.GetBool("failed")
		mine, _ := flags.GetBool("mine")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if mine {
			opts.SessionID = rt.sessionID
		}
		events, err := rt.store.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing recorded yet.")
			return nil
		}

		t := newTable("ID", "When", "Purpose", "Model", "In", "Out", "Ms", "")
		for _, e := range events {
			status := "ok"
			if !e.Success {
				status = "failed"
			}
			t.Row(
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				clip(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				status,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its prompt and reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event id must be a number, got %q", args[0])
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		e, err := rt.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		switch {
		case err != nil:
			return fmt.Errorf("load event %d: %w", id, err)
		case e == nil:
			return fmt.Errorf("no event with id %d", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func printEvent(w io.Writer, e *store.LLMEventRecord) {
	field := func(k, v string) { fmt.Fprintf(w, "%-9s %s\n", k+":", v) }

	field("ID", strconv.Itoa(e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	if e.SessionID != "" {
		field("Session", e.SessionID)
	}
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms, streamed=%t", e.LatencyMs, e.Streamed))
	if e.Success {
		field("Result", "ok")
	} else {
		field("Result", "failed: "+e.ErrorMessage)
	}
	if c := llm.LookupCost(e.Model); c != nil {
		field("Cost", usd(c.Cost(e.InputTokens, e.OutputTokens)))
	}

	section := func(title, body string) {
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n── %s %s\n%s\n", title, strings.Repeat("─", 50-len(title)), body)
	}
	section("request", e.RequestBody)
	section("response", e.ResponseBody)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, repo, out := cmd.Context(), rt.store.EventRepo(), cmd.OutOrStdout()

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "Nothing recorded yet.")
			return nil
		}

		var calls, in, outTok int
		pt := newTable("Purpose", "Calls", "Input", "Output", "Avg ms")
		for _, s := range byPurpose {
			pt.Row(s.Purpose, strconv.Itoa(s.Calls), strconv.Itoa(s.InputTokens),
				strconv.Itoa(s.OutputTokens), strconv.FormatInt(s.AvgLatencyMs, 10))
			calls += s.Calls
			in += s.InputTokens
			outTok += s.OutputTokens
		}
		pt.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), "")
		fmt.Fprintln(out, pt.Render())

		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		var total float64
		var unpriced []string
		mt := newTable("Model", "Calls", "Input", "Output", "Cost")
		for _, m := range byModel {
			cost := "?"
			if c := llm.LookupCost(m.Model); c != nil {
				v := c.Cost(m.InputTokens, m.OutputTokens)
				total += v
				cost = usd(v)
			} else {
				unpriced = append(unpriced, m.Model)
			}
			mt.Row(clip(m.Model, 32), strconv.Itoa(m.Calls), strconv.Itoa(m.InputTokens), strconv.Itoa(m.OutputTokens), cost)
		}
		label := "total"
		if len(unpriced) > 0 {
			label = "total (partial)"
		}
		mt.Row(label, "", "", "", usd(total))

		fmt.Fprintln(out)
		fmt.Fprintln(out, mt.Render())
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "No pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n-1] + "…"
	}
	return s
}

func usd(v float64) string {
	if v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	f := llmListCmd.Flags()
	f.IntP("limit", "n", 20, "how many events to show")
	f.StringP("purpose", "p", "", "only this purpose, e.g. chat or topic-chat")
	f.Bool("failed", false, "only failed requests")
	f.Bool("mine", false, "only requests made by this install")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
