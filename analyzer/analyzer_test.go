package analyzer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-analyzer/seo-analyzer/fetch"
	"github.com/seo-analyzer/seo-analyzer/keywords"
)

func newTestAnalyzer() *Analyzer {
	ranker := keywords.New(keywords.Options{
		StopWords: []string{"the", "and", "with", "for", "this"},
	})
	return New(fetch.NewClient(nil), ranker)
}

func extract(t *testing.T, markup string) *PageAnalysis {
	t.Helper()
	analysis, err := newTestAnalyzer().Extract(markup, "http://example.com")
	require.NoError(t, err)
	return analysis
}

func TestExtractFullPage(t *testing.T) {
	markup := `<!DOCTYPE html>
<html>
<head>
	<title>Acme Managed IT Services</title>
	<meta name="description" content="Managed IT services and network support.">
	<meta name="keywords" content="it, managed services, support">
	<script type="application/ld+json">{"@context":"https://schema.org"}</script>
</head>
<body>
	<h1>Managed IT Services</h1>
	<h2>Network Support</h2>
	<h2>Security</h2>
	<h3>Contact</h3>
	<img src="/logo.png" alt="Acme logo">
	<img src="/banner.png">
	<p>network support network security network managed services business</p>
	<script>var hidden = "scriptword";</script>
	<style>.hidden { color: red; }</style>
</body>
</html>`

	a := extract(t, markup)

	assert.Equal(t, "http://example.com", a.URL)
	assert.Equal(t, "Acme Managed IT Services", a.Title)
	assert.Equal(t, 24, a.TitleLength)
	assert.Equal(t, "Managed IT services and network support.", a.MetaDescription)
	assert.Equal(t, 40, a.MetaDescLength)
	assert.Equal(t, "it, managed services, support", a.MetaKeywords)

	assert.Equal(t, []string{"Managed IT Services"}, a.Headings.H1)
	assert.Equal(t, []string{"Network Support", "Security"}, a.Headings.H2)
	assert.Equal(t, []string{"Contact"}, a.Headings.H3)

	require.Len(t, a.Images, 2)
	assert.Equal(t, Image{Src: "/logo.png", Alt: "Acme logo", HasAlt: true}, a.Images[0])
	assert.Equal(t, Image{Src: "/banner.png", Alt: "", HasAlt: false}, a.Images[1])
	assert.Equal(t, 1, a.ImagesWithoutAlt)
	assert.Equal(t, 2, a.TotalImages)

	assert.True(t, a.HasStructuredData)
	assert.Equal(t, 1, a.StructuredDataCount)

	// Ranked from visible text only; script and style words never count.
	terms := make([]string, 0, len(a.Keywords))
	for _, k := range a.Keywords {
		terms = append(terms, k.Term)
	}
	assert.Contains(t, terms, "network")
	assert.NotContains(t, terms, "scriptword")
	assert.NotContains(t, terms, "hidden")
	assert.Equal(t, keywords.Keyword{Term: "network", Count: 4}, a.Keywords[0])
}

func TestExtractMissingTitle(t *testing.T) {
	a := extract(t, `<html><head></head><body><p>text</p></body></html>`)

	assert.Equal(t, "", a.Title)
	assert.Equal(t, 0, a.TitleLength)
}

func TestExtractEmptyTitleCountsAsMissing(t *testing.T) {
	a := extract(t, `<html><head><title></title></head><body></body></html>`)

	assert.Equal(t, "", a.Title)
	assert.Equal(t, 0, a.TitleLength)
}

func TestExtractTitleLengthIsRunes(t *testing.T) {
	a := extract(t, `<html><head><title>Café Menü</title></head><body></body></html>`)

	assert.Equal(t, "Café Menü", a.Title)
	assert.Equal(t, 9, a.TitleLength)
}

func TestExtractMetaDescriptionAbsent(t *testing.T) {
	a := extract(t, `<html><head><title>T</title></head><body></body></html>`)

	assert.Equal(t, "", a.MetaDescription)
	assert.Equal(t, 0, a.MetaDescLength)
}

func TestExtractMetaDescriptionEmptyContent(t *testing.T) {
	a := extract(t, `<html><head><meta name="description" content=""></head><body></body></html>`)

	assert.Equal(t, "", a.MetaDescription)
	assert.Equal(t, 0, a.MetaDescLength)
}

func TestExtractMetaDescriptionFirstWins(t *testing.T) {
	markup := `<html><head>
		<meta name="description" content="first description">
		<meta name="description" content="second description">
	</head><body></body></html>`

	a := extract(t, markup)

	assert.Equal(t, "first description", a.MetaDescription)
}

func TestExtractHeadingsKeepDocumentOrder(t *testing.T) {
	markup := `<html><body>
		<h1>First</h1>
		<h2>Between</h2>
		<h1>  Second  </h1>
		<h1></h1>
	</body></html>`

	a := extract(t, markup)

	// Whitespace is trimmed; headings with no text are kept so the
	// count still reflects the markup.
	assert.Equal(t, []string{"First", "Second", ""}, a.Headings.H1)
	assert.Equal(t, []string{"Between"}, a.Headings.H2)
	assert.Empty(t, a.Headings.H3)
}

func TestExtractImageAltSemantics(t *testing.T) {
	markup := `<html><body>
		<img src="a.png" alt="described">
		<img src="b.png" alt="">
		<img src="c.png" alt=" ">
		<img src="d.png">
		<img>
	</body></html>`

	a := extract(t, markup)

	require.Len(t, a.Images, 5)
	assert.True(t, a.Images[0].HasAlt)
	assert.False(t, a.Images[1].HasAlt, "empty alt is missing alt")
	assert.True(t, a.Images[2].HasAlt, "whitespace alt still counts as present")
	assert.False(t, a.Images[3].HasAlt)
	assert.False(t, a.Images[4].HasAlt)
	assert.Equal(t, "", a.Images[4].Src)

	assert.Equal(t, 5, a.TotalImages)
	assert.Equal(t, 3, a.ImagesWithoutAlt)
}

func TestExtractStructuredDataCounting(t *testing.T) {
	markup := `<html><head>
		<script type="application/ld+json">{"@type":"Organization"}</script>
		<script type="application/ld+json">{"@type":"LocalBusiness"}</script>
		<script type="text/javascript">var x = 1;</script>
	</head><body></body></html>`

	a := extract(t, markup)

	assert.True(t, a.HasStructuredData)
	assert.Equal(t, 2, a.StructuredDataCount)
}

func TestExtractNoStructuredData(t *testing.T) {
	a := extract(t, `<html><body><script>var x = 1;</script></body></html>`)

	assert.False(t, a.HasStructuredData)
	assert.Equal(t, 0, a.StructuredDataCount)
}

func TestExtractWordCount(t *testing.T) {
	markup := `<html><head><title>one two</title></head><body>
		<p>three four five</p>
		<script>var not = "counted at all";</script>
		<style>.also { display: none; }</style>
	</body></html>`

	a := extract(t, markup)

	// Title text is document text; script and style bodies are not.
	assert.Equal(t, 5, a.WordCount)
}

func TestExtractEmptyDocument(t *testing.T) {
	a := extract(t, "")

	assert.Equal(t, "", a.Title)
	assert.Equal(t, 0, a.WordCount)
	assert.NotNil(t, a.Images)
	assert.NotNil(t, a.Keywords)
	assert.NotNil(t, a.Headings.H1)
	assert.Empty(t, a.Images)
	assert.Empty(t, a.Keywords)
}

func TestAnalyzeFetchesAndExtracts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Served Page</title></head><body><h1>Served</h1></body></html>`))
	}))
	defer server.Close()

	a, err := newTestAnalyzer().Analyze(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL, a.URL)
	assert.Equal(t, "Served Page", a.Title)
	assert.Equal(t, []string{"Served"}, a.Headings.H1)
}

func TestAnalyzePropagatesFetchErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestAnalyzer().Analyze(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}
