package google

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Static-HTML fallbacks used when the live selector cascades find nothing.
// Parsing a page snapshot catches containers the in-page queries missed
// after a markup change.

const (
	questionContainers = "div.ULSxyf, div.wQiwMc, div.JlqpRe"
	relatedContainers  = "div.AJLUJb a, div.s6JM6d a, a.gL9Hy, a.k8XOCe"
)

// parseQuestionsFromHTML extracts candidate PAA texts from page HTML.
func parseQuestionsFromHTML(html string) ([]string, error) {
	return parseTexts(html, questionContainers)
}

// parseRelatedFromHTML extracts candidate related-search texts from page HTML.
func parseRelatedFromHTML(html string) ([]string, error) {
	return parseTexts(html, relatedContainers)
}

func parseTexts(html, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	var out []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out, nil
}
