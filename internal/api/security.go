package api

import (
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// SecurityMiddleware sets headers suited to a read-only JSON API.
func SecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

// InputSanitizationMiddleware reduces every query value to plain text before
// the catalog handlers see it.
func InputSanitizationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clean := make(url.Values)
		for key, values := range r.URL.Query() {
			for _, value := range values {
				clean.Add(key, sanitizeInput(value))
			}
		}
		r.URL.RawQuery = clean.Encode()
		next.ServeHTTP(w, r)
	})
}

var (
	queryPolicy = bluemonday.StrictPolicy()

	// Scheme prefixes survive tag stripping, so they are removed separately.
	scriptSchemes = regexp.MustCompile(`(?i)\b(?:javascript|vbscript|data)\s*:`)
)

// sanitizeInput strips markup and script schemes. Responses are JSON, so the
// result is unescaped back to plain text and re-encoded by the JSON writer.
func sanitizeInput(input string) string {
	if input == "" {
		return input
	}
	text := html.UnescapeString(queryPolicy.Sanitize(input))
	text = scriptSchemes.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// validateInputLength reports whether input fits in maxLength runes.
func validateInputLength(input string, maxLength int) bool {
	return utf8.RuneCountInString(input) <= maxLength
}
