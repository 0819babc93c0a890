package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/config"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List services (optionally filtered by category or search text)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		query, _ := cmd.Flags().GetString("search")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		topics := cat.Search(query)

		if category != "" {
			c, ok := catalog.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			topics = slices.DeleteFunc(topics, func(t catalog.Topic) bool { return t.Category != c })
		}
		if len(topics) == 0 {
			return fmt.Errorf("no services match")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-18s  %-24s  %-9s  %s\n", "ID", "Title", "Category", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, t := range topics {
			fmt.Fprintf(out, "%-18s  %-24s  %-9s  %s\n", t.ID, t.Title, t.Category, t.Description)
		}
		fmt.Fprintf(out, "\n%d of %d services\n", len(topics), cat.Size())
		return nil
	},
}

var topicCmd = &cobra.Command{
	Use:   "topic <id>",
	Short: "Show one service and record the visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		t, err := rt.catalog.Get(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printTopic(out, rt.catalog, t)

		if _, err := rt.tracker.RecordView(cmd.Context(), t.ID); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "\nwarning: progress not saved: %v\n", err)
		}
		return nil
	},
}

func printTopic(out io.Writer, cat *catalog.Catalog, t catalog.Topic) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(out, "%s  %s\n", t.Icon.Glyph(), t.Title)
	fmt.Fprintf(out, "%s · %s\n\n", t.Category, t.Description)
	fmt.Fprintln(out, t.Overview)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Free tier limits")
	fmt.Fprintln(out, sep)
	for _, l := range t.Limits {
		fmt.Fprintf(out, "  • %s\n", l)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Setup")
	fmt.Fprintln(out, sep)
	for i, step := range t.SetupSteps {
		if catalog.IsCommand(step) {
			step = "$ " + step
		}
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}

	if len(t.Specs) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Specs")
		fmt.Fprintln(out, sep)
		keys := make([]string, 0, len(t.Specs))
		for k := range t.Specs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %-16s %s\n", k, t.Specs[k])
		}
	}

	if len(t.CommonErrors) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Common errors")
		fmt.Fprintln(out, sep)
		for _, e := range t.CommonErrors {
			fmt.Fprintf(out, "  %s  %s\n      fix: %s\n", e.Code, e.Message, e.Fix)
		}
	}

	if related := cat.Related(t.ID); len(related) > 0 {
		ids := make([]string, len(related))
		for i, r := range related {
			ids[i] = r.ID
		}
		fmt.Fprintf(out, "\nRelated: %s\n", strings.Join(ids, ", "))
	}
}

func init() {
	topicsCmd.Flags().StringP("category", "c", "", "Filter by category (e.g. storage, ai)")
	topicsCmd.Flags().StringP("search", "s", "", "Match title or description")
}
