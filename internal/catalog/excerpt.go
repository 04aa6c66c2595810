package catalog

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ExcerptLength is the rune budget of a post teaser.
const ExcerptLength = 150

const excerptFallback = "Lee el artículo completo en nuestra sección de blog..."

var stripPolicy = bluemonday.StrictPolicy()

// Excerpt returns a plain-text teaser of the post body: markup removed,
// whitespace collapsed, cut at n runes and suffixed with "...".
func Excerpt(p Post, n int) string {
	if strings.TrimSpace(p.Content) == "" {
		return excerptFallback
	}
	if n <= 0 {
		n = ExcerptLength
	}
	text := html.UnescapeString(stripPolicy.Sanitize(p.Content))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

var markdownRewrites = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`(?i)<h[1-6][^>]*>`), "\n\n## "},
	{regexp.MustCompile(`(?i)</h[1-6]>`), "\n\n"},
	{regexp.MustCompile(`(?i)</p>\s*`), "\n\n"},
	{regexp.MustCompile(`(?i)<br\s*/?>`), "\n"},
	{regexp.MustCompile(`(?i)<li[^>]*>`), "\n- "},
	{regexp.MustCompile(`(?i)</?(strong|b)>`), "**"},
	{regexp.MustCompile(`(?i)</?(em|i)>`), "_"},
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// Markdown returns the post body as Markdown. Bodies are authored either in
// Markdown or in simple HTML; the common HTML tags are rewritten and the
// rest is stripped.
func (p Post) Markdown() string {
	body := strings.TrimSpace(p.Content)
	if body == "" {
		return excerptFallback
	}
	if !strings.Contains(body, "<") {
		return body
	}
	for _, rw := range markdownRewrites {
		body = rw.re.ReplaceAllString(body, rw.with)
	}
	body = html.UnescapeString(stripPolicy.Sanitize(body))
	body = blankLines.ReplaceAllString(body, "\n\n")
	return strings.TrimSpace(body)
}
