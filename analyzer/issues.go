package analyzer

import (
	"fmt"
	"strings"
)

// Title and meta description length bounds, in characters.
const (
	TitleMinLength = 30
	TitleMaxLength = 60

	MetaDescMinLength = 120
	MetaDescMaxLength = 160

	// MinWordCount is the fewest words a page should carry.
	MinWordCount = 300

	// topKeywordWindow is how many ranked terms the target-keyword
	// check looks at.
	topKeywordWindow = 10

	// maxSuggestedKeywords caps how many missing targets are listed
	// in the recommendation.
	maxSuggestedKeywords = 5
)

// Evaluator applies the fixed threshold checks to an analysis and
// produces issues and recommendations.
type Evaluator struct {
	targetKeywords []string
}

// NewEvaluator creates an Evaluator. targetKeywords are the terms the
// page is expected to rank for; pass nil to skip the keyword-gap check.
func NewEvaluator(targetKeywords []string) *Evaluator {
	return &Evaluator{targetKeywords: targetKeywords}
}

// Evaluate runs every check in a fixed order and returns the resulting
// issues and recommendations. Both slices are non-nil, and the same
// analysis always yields the same output.
func (e *Evaluator) Evaluate(a *PageAnalysis) (issues, recommendations []string) {
	issues = []string{}
	recommendations = []string{}

	if a.Title == "" {
		issues = append(issues, "Missing title tag")
	} else if a.TitleLength < TitleMinLength {
		issues = append(issues, fmt.Sprintf("Title too short (%d chars). Aim for 30-60 characters", a.TitleLength))
	} else if a.TitleLength > TitleMaxLength {
		issues = append(issues, fmt.Sprintf("Title too long (%d chars). Aim for 30-60 characters", a.TitleLength))
	}

	if a.MetaDescription == "" {
		issues = append(issues, "Missing meta description")
	} else if a.MetaDescLength < MetaDescMinLength {
		issues = append(issues, fmt.Sprintf("Meta description too short (%d chars). Aim for 120-160 characters", a.MetaDescLength))
	} else if a.MetaDescLength > MetaDescMaxLength {
		issues = append(issues, fmt.Sprintf("Meta description too long (%d chars). Aim for 120-160 characters", a.MetaDescLength))
	}

	h1Count := len(a.Headings.H1)
	if h1Count == 0 {
		issues = append(issues, "Missing H1 tag")
	} else if h1Count > 1 {
		issues = append(issues, fmt.Sprintf("Multiple H1 tags (%d). Use only one H1 per page", h1Count))
	}

	if a.ImagesWithoutAlt > 0 {
		issues = append(issues, fmt.Sprintf("%d images missing alt text", a.ImagesWithoutAlt))
	}

	if a.WordCount < MinWordCount {
		issues = append(issues, fmt.Sprintf("Low word count (%d). Aim for at least 300 words", a.WordCount))
	}

	if !a.HasStructuredData {
		recommendations = append(recommendations, "Add structured data (JSON-LD) for better search visibility")
	}

	if missing := e.missingTargets(a); len(missing) > 0 {
		if len(missing) > maxSuggestedKeywords {
			missing = missing[:maxSuggestedKeywords]
		}
		recommendations = append(recommendations, "Consider adding IT-related keywords: "+strings.Join(missing, ", "))
	}

	return issues, recommendations
}

// missingTargets returns the target keywords that do not occur, as
// substrings, in the space-joined top ranked terms.
func (e *Evaluator) missingTargets(a *PageAnalysis) []string {
	top := a.Keywords
	if len(top) > topKeywordWindow {
		top = top[:topKeywordWindow]
	}
	terms := make([]string, 0, len(top))
	for _, k := range top {
		terms = append(terms, k.Term)
	}
	joined := strings.Join(terms, " ")

	var missing []string
	for _, target := range e.targetKeywords {
		if !strings.Contains(joined, target) {
			missing = append(missing, target)
		}
	}
	return missing
}
