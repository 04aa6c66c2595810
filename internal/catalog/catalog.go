// Package catalog holds the read-only content the portal presents: webinars,
// blog posts, Nemi agents, EduTools and Nemi Studio generators.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// AllCategories is the category filter value that matches every video.
const AllCategories = "all"

// DefaultFeatured is how many items the home page highlights per section.
const DefaultFeatured = 3

var ErrNotFound = errors.New("catalog: not found")

//go:embed data/catalog.yaml
var embedded []byte

// Catalog is immutable once loaded; every accessor returns copies of its slices.
type Catalog struct {
	doc        document
	videos     map[string]int
	posts      map[string]int
	tools      map[string]int
	studio     map[string]int
	categories map[string]int
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, falling back to the embedded data when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(embedded)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates YAML catalog data.
func Parse(b []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	c := &Catalog{doc: doc}
	c.index()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) index() {
	c.videos = make(map[string]int, len(c.doc.Videos))
	for i, v := range c.doc.Videos {
		c.videos[v.ID] = i
	}
	c.posts = make(map[string]int, len(c.doc.Posts))
	for i, p := range c.doc.Posts {
		c.posts[p.ID] = i
	}
	c.tools = make(map[string]int, len(c.doc.Tools))
	for i, t := range c.doc.Tools {
		c.tools[t.ID] = i
	}
	c.studio = make(map[string]int, len(c.doc.StudioTools))
	for i, t := range c.doc.StudioTools {
		c.studio[t.ID] = i
	}
	c.categories = make(map[string]int, len(c.doc.Categories))
	for i, cat := range c.doc.Categories {
		c.categories[cat.ID] = i
	}
}

// Validate reports every structural problem in the catalog joined into one error.
func (c *Catalog) Validate() error {
	var errs []error
	dup := func(kind string, ids []string) {
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if strings.TrimSpace(id) == "" {
				errs = append(errs, fmt.Errorf("%s with empty id", kind))
				continue
			}
			if _, ok := seen[id]; ok {
				errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
			}
			seen[id] = struct{}{}
		}
	}

	var ids []string
	for _, cat := range c.doc.Categories {
		ids = append(ids, cat.ID)
		if cat.ID == AllCategories {
			errs = append(errs, fmt.Errorf("category id %q is reserved", AllCategories))
		}
	}
	dup("category", ids)

	ids = ids[:0]
	for _, v := range c.doc.Videos {
		ids = append(ids, v.ID)
		if _, ok := c.categories[v.Category]; !ok {
			errs = append(errs, fmt.Errorf("video %q references unknown category %q", v.ID, v.Category))
		}
		for i, q := range v.Pedagogical.Quiz {
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				errs = append(errs, fmt.Errorf("video %q quiz %d: correct_index %d out of range", v.ID, i, q.CorrectIndex))
			}
		}
		for _, r := range v.Pedagogical.Resources {
			if !isWebURL(r.URL) {
				errs = append(errs, fmt.Errorf("video %q resource %q: url must be http(s)", v.ID, r.Title))
			}
		}
	}
	dup("video", ids)

	ids = ids[:0]
	for _, p := range c.doc.Posts {
		ids = append(ids, p.ID)
	}
	dup("post", ids)

	ids = ids[:0]
	for _, a := range c.doc.Agents {
		ids = append(ids, a.ID)
		if !isWebURL(a.URL) {
			errs = append(errs, fmt.Errorf("agent %q: url must be http(s)", a.ID))
		}
	}
	dup("agent", ids)

	ids = ids[:0]
	for _, t := range c.doc.Tools {
		ids = append(ids, t.ID)
	}
	dup("tool", ids)

	ids = ids[:0]
	for _, t := range c.doc.StudioTools {
		ids = append(ids, t.ID)
		if _, err := template.New(t.ID).Option("missingkey=zero").Parse(t.Template); err != nil {
			errs = append(errs, fmt.Errorf("studio tool %q: %w", t.ID, err))
		}
	}
	dup("studio tool", ids)

	return errors.Join(errs...)
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.doc.Categories...)
}

// CategoryName returns the display name of id, or id itself when unknown.
func (c *Catalog) CategoryName(id string) string {
	if id == AllCategories {
		return "Todas"
	}
	if i, ok := c.categories[id]; ok {
		return c.doc.Categories[i].Name
	}
	return id
}

func (c *Catalog) HasCategory(id string) bool {
	_, ok := c.categories[id]
	return ok
}

func (c *Catalog) Videos() []Video {
	return append([]Video(nil), c.doc.Videos...)
}

func (c *Catalog) Video(id string) (Video, error) {
	i, ok := c.videos[id]
	if !ok {
		return Video{}, fmt.Errorf("video %q: %w", id, ErrNotFound)
	}
	return c.doc.Videos[i], nil
}

// VideosInCategory filters by category; AllCategories or "" returns every video.
func (c *Catalog) VideosInCategory(category string) []Video {
	if category == "" || category == AllCategories {
		return c.Videos()
	}
	var out []Video
	for _, v := range c.doc.Videos {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out
}

// SeriesVideos returns the episodes of a series ordered by Series.Order.
func (c *Catalog) SeriesVideos(seriesID string) []Video {
	var out []Video
	for _, v := range c.doc.Videos {
		if v.Series != nil && v.Series.ID == seriesID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Series.Order < out[j].Series.Order
	})
	return out
}

// Adjacent returns the episode offset by delta from v within its series.
func (c *Catalog) Adjacent(v Video, delta int) (Video, bool) {
	if v.Series == nil {
		return Video{}, false
	}
	episodes := c.SeriesVideos(v.Series.ID)
	for i, ep := range episodes {
		if ep.ID != v.ID {
			continue
		}
		j := i + delta
		if j < 0 || j >= len(episodes) {
			return Video{}, false
		}
		return episodes[j], true
	}
	return Video{}, false
}

func (c *Catalog) Posts() []Post {
	return append([]Post(nil), c.doc.Posts...)
}

func (c *Catalog) Post(id string) (Post, error) {
	i, ok := c.posts[id]
	if !ok {
		return Post{}, fmt.Errorf("post %q: %w", id, ErrNotFound)
	}
	return c.doc.Posts[i], nil
}

func (c *Catalog) Agents() []Agent {
	return append([]Agent(nil), c.doc.Agents...)
}

func (c *Catalog) Tools() []Tool {
	return append([]Tool(nil), c.doc.Tools...)
}

func (c *Catalog) Tool(id string) (Tool, error) {
	i, ok := c.tools[id]
	if !ok {
		return Tool{}, fmt.Errorf("tool %q: %w", id, ErrNotFound)
	}
	return c.doc.Tools[i], nil
}

func (c *Catalog) StudioTools() []StudioTool {
	return append([]StudioTool(nil), c.doc.StudioTools...)
}

func (c *Catalog) StudioTool(id string) (StudioTool, error) {
	i, ok := c.studio[id]
	if !ok {
		return StudioTool{}, fmt.Errorf("studio tool %q: %w", id, ErrNotFound)
	}
	return c.doc.StudioTools[i], nil
}

func (c *Catalog) FeaturedTools(n int) []Tool   { return firstN(c.doc.Tools, n) }
func (c *Catalog) FeaturedAgents(n int) []Agent { return firstN(c.doc.Agents, n) }
func (c *Catalog) LatestPosts(n int) []Post     { return firstN(c.doc.Posts, n) }

func firstN[T any](items []T, n int) []T {
	if n < 0 || n > len(items) {
		n = len(items)
	}
	return append([]T(nil), items[:n]...)
}

// Compose fills the studio tool's template with values keyed by field name.
// Missing fields render empty.
func (t StudioTool) Compose(values map[string]string) (string, error) {
	tmpl, err := template.New(t.ID).Option("missingkey=zero").Parse(t.Template)
	if err != nil {
		return "", fmt.Errorf("studio tool %q: %w", t.ID, err)
	}
	data := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		data[f] = strings.TrimSpace(values[f])
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("studio tool %q: %w", t.ID, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
