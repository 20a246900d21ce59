package pagefetch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
)

const descriptionFallbackLen = 280

var imageSelectors = []struct {
	selector string
	attr     string
}{
	{`meta[property="og:image"]`, "content"},
	{`meta[name="twitter:image"]`, "content"},
	{`.product-image img`, "src"},
	{`img[id*="product"][src*="http"]`, "src"},
	{`img[src*="product"][src*="http"]`, "src"},
}

// Reader pulls page text and product metadata out of HTML.
type Reader struct{}

var _ analyzer.DocumentReader = Reader{}

// NewReader returns a Reader.
func NewReader() Reader {
	return Reader{}
}

// Read parses page.HTML.
func (Reader) Read(page analyzer.Page) (analyzer.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.HTML))
	if err != nil {
		return analyzer.Document{}, fmt.Errorf("parse html: %w", err)
	}

	out := analyzer.Document{
		Text:        collapse(doc.Find("body").Text()),
		Title:       firstText(doc, "h1", `[class*="title"]`, `[class*="product-name"]`),
		Description: collapse(doc.Find(`[class*="description"]`).Text()),
		DOMBrand:    collapse(doc.Find(`[class*="brand"]`).First().Text()),
		MetaBrand:   metaContent(doc, `meta[property="og:brand"]`),
	}
	if out.Description == "" {
		out.Description = metaContent(doc, `meta[name="description"]`)
	}
	for _, sel := range imageSelectors {
		if v, ok := doc.Find(sel.selector).First().Attr(sel.attr); ok && strings.TrimSpace(v) != "" {
			out.ImageURL = strings.TrimSpace(v)
			break
		}
	}

	if out.Title == "" || out.Description == "" || out.Text == "" {
		fillFromArticle(&out, page)
	}
	return out, nil
}

// fillFromArticle uses readability for pages whose markup carries none of the
// usual product hooks.
func fillFromArticle(out *analyzer.Document, page analyzer.Page) {
	if page.URL == nil {
		return
	}
	article, err := readability.FromReader(bytes.NewReader(page.HTML), page.URL)
	if err != nil {
		return
	}
	text := collapse(article.TextContent)
	if out.Title == "" {
		out.Title = strings.TrimSpace(article.Title)
	}
	if out.Text == "" {
		out.Text = text
	}
	if out.Description == "" && text != "" {
		out.Description = truncate(text, descriptionFallbackLen)
	}
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v := collapse(doc.Find(sel).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
