package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/seo-analyzer/seo-analyzer/analyzer"
)

const (
	bannerWidth = 70

	// Sections display at most this many headings per level and ranked
	// keywords.
	headingsShown = 3
	keywordsShown = 10

	// headingTextWidth is how many characters of each heading to show.
	headingTextWidth = 60
)

var (
	headerStyle  = color.New(color.FgCyan, color.Bold)
	sectionStyle = color.New(color.FgCyan)
	goodStyle    = color.New(color.FgGreen, color.Bold)
	warnStyle    = color.New(color.FgYellow, color.Bold)
	badStyle     = color.New(color.FgRed, color.Bold)
)

// Renderer writes the human-readable report. Color is opt-in so piped
// and captured output stays plain.
type Renderer struct {
	out     io.Writer
	colored bool
}

// NewRenderer creates a Renderer writing to out.
func NewRenderer(out io.Writer, colored bool) *Renderer {
	return &Renderer{out: out, colored: colored}
}

// Render writes the full report for an analyzed page.
func (r *Renderer) Render(a *analyzer.PageAnalysis, rep *Report) {
	bar := strings.Repeat("=", bannerWidth)

	r.styled(headerStyle, "%s\n", bar)
	r.styled(headerStyle, "SEO ANALYSIS REPORT FOR: %s\n", a.URL)
	r.styled(headerStyle, "%s\n", bar)

	r.styled(sectionStyle, "\nBASIC INFO:\n")
	fmt.Fprintf(r.out, "Title: %s\n", a.Title)
	fmt.Fprintf(r.out, "Title Length: %d characters\n", a.TitleLength)
	fmt.Fprintf(r.out, "Meta Description: %s\n", a.MetaDescription)
	fmt.Fprintf(r.out, "Meta Description Length: %d characters\n", a.MetaDescLength)
	fmt.Fprintf(r.out, "Word Count: %d\n", a.WordCount)

	r.styled(sectionStyle, "\nHEADINGS:\n")
	r.headingLevel("H1", a.Headings.H1)
	r.headingLevel("H2", a.Headings.H2)
	r.headingLevel("H3", a.Headings.H3)

	r.styled(sectionStyle, "\nIMAGES:\n")
	fmt.Fprintf(r.out, "Total Images: %d\n", a.TotalImages)
	fmt.Fprintf(r.out, "Images Without Alt Text: %d\n", a.ImagesWithoutAlt)

	r.styled(sectionStyle, "\nTOP 10 KEYWORDS:\n")
	top := a.Keywords
	if len(top) > keywordsShown {
		top = top[:keywordsShown]
	}
	for i, kw := range top {
		fmt.Fprintf(r.out, "%2d. %s (%d times)\n", i+1, kw.Term, kw.Count)
	}

	r.styled(sectionStyle, "\nSTRUCTURED DATA:\n")
	fmt.Fprintf(r.out, "Has Structured Data: %t\n", a.HasStructuredData)
	fmt.Fprintf(r.out, "Structured Data Blocks: %d\n", a.StructuredDataCount)

	if len(rep.Issues) > 0 {
		r.styled(badStyle, "\nISSUES TO FIX:\n")
		for i, issue := range rep.Issues {
			fmt.Fprintf(r.out, "%2d. %s\n", i+1, issue)
		}
	}

	if len(rep.Recommendations) > 0 {
		r.styled(warnStyle, "\nRECOMMENDATIONS:\n")
		for i, rec := range rep.Recommendations {
			fmt.Fprintf(r.out, "%2d. %s\n", i+1, rec)
		}
	}

	r.styled(scoreStyle(rep.Score), "\nSEO SCORE: %d/100\n", rep.Score)
	r.styled(headerStyle, "%s\n", bar)
}

func (r *Renderer) headingLevel(label string, headings []string) {
	fmt.Fprintf(r.out, "%s: %d tags\n", label, len(headings))
	for i, heading := range headings {
		if i == headingsShown {
			break
		}
		fmt.Fprintf(r.out, "  - %s...\n", truncateRunes(heading, headingTextWidth))
	}
}

func (r *Renderer) styled(style *color.Color, format string, args ...interface{}) {
	if r.colored {
		_, _ = style.Fprintf(r.out, format, args...)
		return
	}
	fmt.Fprintf(r.out, format, args...)
}

func scoreStyle(score int) *color.Color {
	switch {
	case score >= 80:
		return goodStyle
	case score >= 50:
		return warnStyle
	default:
		return badStyle
	}
}

// truncateRunes shortens s to at most n runes without splitting one.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
