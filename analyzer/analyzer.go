// Package analyzer extracts on-page SEO signals from web pages and
// checks them against fixed heuristic thresholds.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/seo-analyzer/seo-analyzer/fetch"
	"github.com/seo-analyzer/seo-analyzer/keywords"
)

// Analyzer fetches pages and extracts their SEO signals.
type Analyzer struct {
	client *fetch.Client
	ranker *keywords.Ranker
}

// New creates an Analyzer that fetches with client and ranks keywords
// with ranker.
func New(client *fetch.Client, ranker *keywords.Ranker) *Analyzer {
	return &Analyzer{
		client: client,
		ranker: ranker,
	}
}

// Analyze fetches url and extracts its SEO signals.
func (a *Analyzer) Analyze(ctx context.Context, url string) (*PageAnalysis, error) {
	result, err := a.client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.Extract(result.HTML, url)
}

// Extract parses markup and pulls out every signal the report needs.
// Malformed markup degrades to absent fields rather than failing; the
// underlying parser accepts anything resembling HTML.
func (a *Analyzer) Extract(markup, url string) (*PageAnalysis, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	analysis := &PageAnalysis{
		URL: url,
		Headings: Headings{
			H1: []string{},
			H2: []string{},
			H3: []string{},
		},
		Images:   []Image{},
		Keywords: []keywords.Keyword{},
	}

	// Title: empty text counts as absent.
	analysis.Title = doc.Find("title").First().Text()
	analysis.TitleLength = utf8.RuneCountInString(analysis.Title)

	analysis.MetaDescription, _ = doc.Find("meta[name='description']").Attr("content")
	analysis.MetaDescLength = utf8.RuneCountInString(analysis.MetaDescription)

	analysis.MetaKeywords, _ = doc.Find("meta[name='keywords']").Attr("content")

	analysis.Headings.H1 = headingTexts(doc, "h1")
	analysis.Headings.H2 = headingTexts(doc, "h2")
	analysis.Headings.H3 = headingTexts(doc, "h3")

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		img := Image{Src: src, Alt: alt, HasAlt: alt != ""}
		analysis.Images = append(analysis.Images, img)
		if !img.HasAlt {
			analysis.ImagesWithoutAlt++
		}
	})
	analysis.TotalImages = len(analysis.Images)

	// Count JSON-LD blocks before stripping scripts below.
	analysis.StructuredDataCount = doc.Find(`script[type="application/ld+json"]`).Length()
	analysis.HasStructuredData = analysis.StructuredDataCount > 0

	// Visible text: everything left after removing script and style
	// subtrees, title text included.
	doc.Find("script, style").Remove()
	text := doc.Text()
	analysis.WordCount = len(strings.Fields(text))
	analysis.Keywords = a.ranker.Rank(text)

	return analysis, nil
}

// headingTexts returns the trimmed text of every matching heading in
// document order. Headings that trim to nothing are kept as empty
// strings so the counts stay honest.
func headingTexts(doc *goquery.Document, level string) []string {
	texts := []string{}
	doc.Find(level).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}
