package email

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML strips markup from an HTML fragment, returning only the visible
// text. Script and style contents are dropped. On parse failure the raw
// input is returned so no body content is lost.
func StripHTML(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
