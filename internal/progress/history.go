// Package progress tracks recently viewed topics and derives the profile
// rank and level from them.
package progress

// MaxRecents is the cap on the recently viewed topic list.
const MaxRecents = 10

// RecordView returns recents with topicID moved to the front. Any earlier
// occurrence is removed and the result is truncated to MaxRecents. The
// input slice is not modified.
func RecordView(recents []string, topicID string) []string {
	out := make([]string, 0, min(len(recents)+1, MaxRecents))
	out = append(out, topicID)
	for _, id := range recents {
		if len(out) == MaxRecents {
			break
		}
		if id == topicID {
			continue
		}
		out = append(out, id)
	}
	return out
}

// ComputeCoverage returns the share of the catalog covered by recents as
// a percentage in [0, 100]. A non-positive catalog size yields 0.
func ComputeCoverage(recents []string, catalogSize int) float64 {
	if catalogSize <= 0 {
		return 0
	}
	return min(100, float64(len(recents))/float64(catalogSize)*100)
}
