package crawler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML extracts the plain text of an HTML fragment. Descriptions come
// back from the detail endpoint with embedded markup.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
