// Package catalog holds the static knowledge base: platform topics, quiz
// questions, code templates and troubleshooting guides.
package catalog

import "strings"

// Category groups topics by platform area.
type Category string

const (
	CategoryCompute  Category = "Compute"
	CategoryStorage  Category = "Storage"
	CategoryAI       Category = "AI"
	CategoryNetwork  Category = "Network"
	CategorySecurity Category = "Security"
	CategoryMedia    Category = "Media"
	CategoryDevOps   Category = "DevOps"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryCompute,
		CategoryStorage,
		CategoryAI,
		CategoryNetwork,
		CategorySecurity,
		CategoryMedia,
		CategoryDevOps,
	}
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for _, c := range AllCategories() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// CommonError is a known failure mode for a topic and how to fix it.
type CommonError struct {
	Code    string
	Message string
	Fix     string
}

// Topic is one knowledge-base entry describing a platform service.
type Topic struct {
	ID          string
	Title       string
	Description string
	Icon        Icon
	Color       string
	Category    Category
	Overview    string
	Limits      []string
	SetupSteps  []string

	// Optional sections.
	Specs         map[string]string
	Related       []string
	BestPractices []string
	CommonErrors  []CommonError
}

// IsCommand reports whether a setup step is a shell command that can be
// copied and run as is.
func IsCommand(step string) bool {
	return strings.HasPrefix(step, "wrangler") || strings.HasPrefix(step, "npm")
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	ID           string
	Question     string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// CodeTemplate is a copyable boilerplate snippet.
type CodeTemplate struct {
	ID          string
	Title       string
	Stack       []string
	CodeSnippet string
}

// TroubleArea groups troubleshooting entries.
type TroubleArea string

const (
	AreaConnectivity TroubleArea = "Connectivity"
	AreaCompute      TroubleArea = "Compute"
	AreaStorage      TroubleArea = "Storage"
)

// AllTroubleAreas returns the troubleshooting areas in display order.
func AllTroubleAreas() []TroubleArea {
	return []TroubleArea{AreaConnectivity, AreaCompute, AreaStorage}
}

// Solution is a symptom with its likely cause and recovery step.
type Solution struct {
	Symptom string
	Cause   string
	Fix     string
}
