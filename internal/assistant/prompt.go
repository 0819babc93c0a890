package assistant

import (
	"fmt"
	"strings"

	"github.com/abhisek/cfdroid/internal/catalog"
)

const baseSystemPrompt = `You are CF Droid, a concise guide to the Cloudflare developer platform free tier. Answer in plain text suitable for a terminal. Prefer concrete limits, wrangler commands and short code snippets. If a question is outside the platform, say so briefly.`

// buildSystemPrompt adds the catalog index, and the full topic brief when
// the conversation is scoped to one topic.
func buildSystemPrompt(cat *catalog.Catalog, topicID string) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)

	if cat == nil {
		return b.String()
	}

	b.WriteString("\n\nKnown services:\n")
	for _, t := range cat.Topics() {
		fmt.Fprintf(&b, "- %s (%s): %s\n", t.Title, t.Category, t.Description)
	}

	if topicID == "" {
		return b.String()
	}
	t, ok := cat.Lookup(topicID)
	if !ok {
		return b.String()
	}

	fmt.Fprintf(&b, "\nThe user is reading about %s.\n%s\n", t.Title, t.Overview)
	b.WriteString("\nFree tier limits:\n")
	for _, l := range t.Limits {
		fmt.Fprintf(&b, "- %s\n", l)
	}
	if len(t.CommonErrors) > 0 {
		b.WriteString("\nCommon errors:\n")
		for _, e := range t.CommonErrors {
			fmt.Fprintf(&b, "- %s: %s Fix: %s\n", e.Code, e.Message, e.Fix)
		}
	}
	return b.String()
}
