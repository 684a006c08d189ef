package dashboard

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText turns a job description, which the monitor often copies straight
// from an RSS feed as HTML, into a single line of readable text.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").AppendHtml(" ")
	return cleanText(doc.Text())
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
