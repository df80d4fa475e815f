package mailbox

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const snippetLength = 200

// HTMLToText flattens an HTML body into readable text. Block elements become line breaks.
func HTMLToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, tr, li, h1, h2, h3, h4, h5, h6, blockquote").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Snippet returns a short single-line preview, preferring the plain text body.
func Snippet(text, html string) string {
	body := text
	if strings.TrimSpace(body) == "" {
		body = HTMLToText(html)
	}
	body = strings.Join(strings.Fields(body), " ")
	if utf8.RuneCountInString(body) <= snippetLength {
		return body
	}
	runes := []rune(body)
	return strings.TrimSpace(string(runes[:snippetLength])) + "…"
}
