package catalog

import "slices"

var quizQuestions = []QuizQuestion{
	{
		ID:           "workers-cpu",
		Question:     "How much CPU time does a free-tier Worker get per request?",
		Options:      []string{"1ms", "10ms", "50ms", "Unlimited"},
		CorrectIndex: 1,
		Explanation:  "The free plan allows 10ms of CPU time per invocation. Waiting on I/O does not count.",
	},
	{
		ID:           "r2-egress",
		Question:     "What does R2 charge for egress bandwidth?",
		Options:      []string{"$0.09 per GB", "$0.01 per GB", "Nothing", "Only above 10 GB"},
		CorrectIndex: 2,
		Explanation:  "R2 has zero egress fees; you pay only for storage and operations beyond the free tier.",
	},
	{
		ID:           "d1-engine",
		Question:     "Which database engine is D1 built on?",
		Options:      []string{"PostgreSQL", "MySQL", "SQLite", "DynamoDB"},
		CorrectIndex: 2,
		Explanation:  "D1 is serverless SQLite, so standard SQLite SQL and tooling apply.",
	},
	{
		ID:           "kv-consistency",
		Question:     "What consistency model does Workers KV provide?",
		Options:      []string{"Strong", "Eventual", "Linearizable", "Causal"},
		CorrectIndex: 1,
		Explanation:  "KV is eventually consistent; writes can take up to a minute to reach every location.",
	},
	{
		ID:           "do-coordination",
		Question:     "Which product gives a single-threaded, strongly consistent home for state?",
		Options:      []string{"KV", "Queues", "Durable Objects", "Pages"},
		CorrectIndex: 2,
		Explanation:  "Each Durable Object runs in one place at a time with transactional storage.",
	},
	{
		ID:           "pages-builds",
		Question:     "How many builds per month does the Pages free tier include?",
		Options:      []string{"100", "500", "5,000", "Unlimited"},
		CorrectIndex: 1,
		Explanation:  "Pages includes 500 builds per month with one concurrent build.",
	},
}

// QuizQuestions returns the built-in question set.
func QuizQuestions() []QuizQuestion {
	return slices.Clone(quizQuestions)
}
