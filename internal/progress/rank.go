package progress

import "math"

// Rank is the profile title derived from coverage and quiz score.
type Rank string

const (
	RankGuest           Rank = "Guest"
	RankCloudBuilder    Rank = "Cloud Builder"
	RankSeniorArchitect Rank = "Senior Architect"
	RankEdgeMaster      Rank = "Edge Master"
	RankEdgeGrandmaster Rank = "Edge Grandmaster"
)

// RankFor evaluates the rank ladder from the top down. The top rank also
// requires a perfect quiz; a quizTotal of 0 means no quiz was taken.
func RankFor(coverage float64, quizScore, quizTotal int) Rank {
	switch {
	case coverage >= 90 && quizTotal > 0 && quizScore >= quizTotal:
		return RankEdgeGrandmaster
	case coverage > 70:
		return RankEdgeMaster
	case coverage > 40:
		return RankSeniorArchitect
	case coverage > 10:
		return RankCloudBuilder
	default:
		return RankGuest
	}
}

// Level is n/2 + floor(s*1.5) + 1 over the recents count n and the quiz
// score s. Negative inputs count as 0, so the result is always >= 1.
func Level(recentsCount, quizScore int) int {
	n := max(recentsCount, 0)
	s := max(quizScore, 0)
	return n/2 + int(math.Floor(float64(s)*1.5)) + 1
}

// NextRank returns the rank above r and what it takes to reach it. ok is
// false at the top of the ladder.
func NextRank(r Rank) (next Rank, requirement string, ok bool) {
	switch r {
	case RankGuest:
		return RankCloudBuilder, "more than 10% coverage", true
	case RankCloudBuilder:
		return RankSeniorArchitect, "more than 40% coverage", true
	case RankSeniorArchitect:
		return RankEdgeMaster, "more than 70% coverage", true
	case RankEdgeMaster:
		return RankEdgeGrandmaster, "90% coverage and a perfect quiz", true
	default:
		return "", "", false
	}
}
