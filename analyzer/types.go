package analyzer

import "github.com/seo-analyzer/seo-analyzer/keywords"

// PageAnalysis represents the complete analysis of a webpage. Lengths
// are rune counts; a missing title or meta description is the empty
// string with length 0.
type PageAnalysis struct {
	URL                 string             `json:"url"`
	Title               string             `json:"title"`
	TitleLength         int                `json:"title_length"`
	MetaDescription     string             `json:"meta_description"`
	MetaDescLength      int                `json:"meta_desc_length"`
	MetaKeywords        string             `json:"meta_keywords"`
	Headings            Headings           `json:"headings"`
	Images              []Image            `json:"images"`
	ImagesWithoutAlt    int                `json:"images_without_alt"`
	TotalImages         int                `json:"total_images"`
	Keywords            []keywords.Keyword `json:"keywords"`
	WordCount           int                `json:"word_count"`
	HasStructuredData   bool               `json:"has_structured_data"`
	StructuredDataCount int                `json:"structured_data_count"`
}

// Headings holds the trimmed text of every h1, h2 and h3 element in
// document order.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// Image describes a single img element. HasAlt is true only when the
// alt attribute is present with a non-empty value.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	HasAlt bool   `json:"has_alt"`
}
