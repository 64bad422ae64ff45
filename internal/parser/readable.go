package parser

import (
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"jobtrail-utils/pkg/utils"
)

// ReadableContent is the clean text view of a page body. Text feeds the
// generic parser's regex heuristics; Markdown feeds the description field.
type ReadableContent struct {
	Text     string
	Markdown string
}

var consecutiveNewlines = regexp.MustCompile(`\n{3,}`)

// ExtractReadable isolates the main article content of sanitized HTML,
// discarding navigation and boilerplate. When the readability pass finds
// nothing it falls back to the whitespace-normalized body text with empty
// markdown, so the caller always gets usable text.
func ExtractReadable(sanitizedHTML, pageURL string) ReadableContent {
	u, err := url.Parse(pageURL)
	if err != nil {
		u = &url.URL{}
	}

	article, err := readability.FromReader(strings.NewReader(sanitizedHTML), u)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		return ReadableContent{Text: bodyText(sanitizedHTML)}
	}

	markdown, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		markdown = ""
	}

	return ReadableContent{
		Text:     utils.CleanText(article.TextContent),
		Markdown: strings.TrimSpace(consecutiveNewlines.ReplaceAllString(markdown, "\n\n")),
	}
}

func bodyText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return utils.CleanText(doc.Text())
	}
	return utils.CleanText(body.Text())
}
