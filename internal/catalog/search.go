package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Results groups search hits by content kind, each in catalog order.
type Results struct {
	Videos []Video `json:"videos"`
	Posts  []Post  `json:"posts"`
	Tools  []Tool  `json:"tools"`
	Agents []Agent `json:"agents"`
}

func (r Results) Len() int {
	return len(r.Videos) + len(r.Posts) + len(r.Tools) + len(r.Agents)
}

func (r Results) Empty() bool { return r.Len() == 0 }

// Fold lowercases s and strips diacritics so "Evaluación" matches "evaluacion".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

func matches(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(Fold(f), needle) {
			return true
		}
	}
	return false
}

// Search matches query against every content kind. A blank query matches nothing.
func (c *Catalog) Search(query string) Results {
	needle := Fold(query)
	if needle == "" {
		return Results{}
	}
	var res Results
	for _, v := range c.doc.Videos {
		fields := append([]string{v.Title, v.Description, v.Instructor, c.CategoryName(v.Category)}, v.Tags...)
		if matches(needle, fields...) {
			res.Videos = append(res.Videos, v)
		}
	}
	for _, p := range c.doc.Posts {
		if matches(needle, p.Title, p.Category, c.CategoryName(p.Category)) {
			res.Posts = append(res.Posts, p)
		}
	}
	for _, t := range c.doc.Tools {
		fields := append([]string{t.Title, t.Summary}, t.Tags...)
		if matches(needle, fields...) {
			res.Tools = append(res.Tools, t)
		}
	}
	for _, a := range c.doc.Agents {
		if matches(needle, a.Title, a.Description) {
			res.Agents = append(res.Agents, a)
		}
	}
	return res
}
