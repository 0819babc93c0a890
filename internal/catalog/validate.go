package catalog

import (
	"fmt"
	"strings"
)

// validateTopics performs the structural checks that make a catalog
// unusable. Returns a combined error describing all problems found.
func validateTopics(topics []Topic) error {
	var errs []string

	seen := make(map[string]bool, len(topics))
	for i, t := range topics {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("topic #%d has an empty ID", i))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		seen[t.ID] = true

		if t.Title == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no title", t.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("topic catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// danglingRelated reports related ids that do not resolve. These are
// tolerated: lookups skip them.
func danglingRelated(topics []Topic, byID map[string]*Topic) []string {
	var warnings []string
	for _, t := range topics {
		for _, relID := range t.Related {
			if _, ok := byID[relID]; !ok {
				warnings = append(warnings, fmt.Sprintf("topic %q references unknown related topic %q", t.ID, relID))
			}
		}
	}
	return warnings
}

// ValidateQuestions checks a question set. Every question needs at least
// two options and a correct index inside them.
func ValidateQuestions(questions []QuizQuestion) error {
	var errs []string

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		label := q.ID
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		} else if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		seen[q.ID] = true

		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("question %s: needs at least 2 options, got %d", label, len(q.Options)))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("question %s: correct index %d out of range", label, q.CorrectIndex))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("quiz validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
