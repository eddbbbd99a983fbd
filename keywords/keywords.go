// Package keywords ranks the most frequent terms in visible page text.
package keywords

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// DefaultMinLength is the minimum token length considered a keyword.
	DefaultMinLength = 3

	// DefaultMaxKeywords caps how many ranked terms are kept.
	DefaultMaxKeywords = 50
)

// Keyword is a ranked term and how often it occurred.
type Keyword struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Options configures a Ranker. Zero values fall back to the defaults;
// a nil StopWords slice disables stop-word filtering entirely.
type Options struct {
	MinLength   int
	MaxKeywords int
	StopWords   []string
}

// Ranker tokenizes text and returns terms ordered by frequency.
type Ranker struct {
	minLength   int
	maxKeywords int
	stopWords   map[string]struct{}
	tokens      *regexp.Regexp
}

// Strip anything that still looks like markup before tokenizing, so
// entity-decoded fragments of HTML never surface as keywords.
var markupPattern = regexp.MustCompile(`<[^>]+>`)

// New creates a Ranker from opts.
func New(opts Options) *Ranker {
	minLength := opts.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	maxKeywords := opts.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}

	stopWords := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		stopWords[strings.ToLower(w)] = struct{}{}
	}

	return &Ranker{
		minLength:   minLength,
		maxKeywords: maxKeywords,
		stopWords:   stopWords,
		tokens:      regexp.MustCompile(fmt.Sprintf(`\b[a-z]{%d,}\b`, minLength)),
	}
}

// Rank extracts candidate keywords from text and returns at most
// MaxKeywords of them, most frequent first. Ties keep the order in
// which the terms first appeared in the text, so the result is
// deterministic for a given input.
func (r *Ranker) Rank(text string) []Keyword {
	text = markupPattern.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = strings.Join(strings.Fields(text), " ")

	counts := make(map[string]int)
	var order []string // terms in first-occurrence order

	for _, token := range r.tokens.FindAllString(text, -1) {
		if _, stop := r.stopWords[token]; stop {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	ranked := make([]Keyword, 0, len(order))
	for _, term := range order {
		ranked = append(ranked, Keyword{Term: term, Count: counts[term]})
	}

	// Stable sort preserves first-occurrence order among equal counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > r.maxKeywords {
		ranked = ranked[:r.maxKeywords]
	}
	return ranked
}
