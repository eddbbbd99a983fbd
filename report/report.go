// Package report scores an analysis, renders the text report, and
// persists the JSON artifact.
package report

// Scoring: every issue costs IssuePenalty points off MaxScore, floored
// at zero.
const (
	MaxScore     = 100
	IssuePenalty = 10
)

// Report is the scored outcome of an analysis.
type Report struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Build derives the report from the evaluated issues and
// recommendations. Nil slices become empty so the JSON artifact always
// carries arrays.
func Build(issues, recommendations []string) *Report {
	if issues == nil {
		issues = []string{}
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	score := MaxScore - IssuePenalty*len(issues)
	if score < 0 {
		score = 0
	}

	return &Report{
		Score:           score,
		Issues:          issues,
		Recommendations: recommendations,
	}
}
