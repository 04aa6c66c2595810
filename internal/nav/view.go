// Package nav owns the portal's navigation state: which top-level view is
// shown, the parameters routed to it, and the overlays stacked above it.
package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ViewID identifies one of the mutually exclusive top-level views.
type ViewID int

const (
	Home ViewID = iota
	Repository
	Webinars
	Blog
	Nemi
	Studio
	EduTools

	viewCount
)

var ErrUnknownView = errors.New("nav: unknown view")

// ParamKind describes how a view interprets the navigation parameter.
type ParamKind int

const (
	ParamNone ParamKind = iota
	ParamCategory
	ParamTool
)

func (k ParamKind) String() string {
	switch k {
	case ParamCategory:
		return "category"
	case ParamTool:
		return "tool"
	default:
		return "none"
	}
}

type viewSpec struct {
	name      string
	title     string
	param     ParamKind
	fullBleed bool
}

var registry = [viewCount]viewSpec{
	Home:       {name: "home", title: "Inicio"},
	Repository: {name: "repository", title: "Repositorio"},
	Webinars:   {name: "webinars", title: "Webinars", param: ParamCategory},
	Blog:       {name: "blog", title: "Blog"},
	Nemi:       {name: "nemi", title: "Nemi Agents", fullBleed: true},
	Studio:     {name: "studio", title: "Nemi Studio", param: ParamTool, fullBleed: true},
	EduTools:   {name: "edutools", title: "EduTools", fullBleed: true},
}

// Valid reports whether v belongs to the closed set of views.
func (v ViewID) Valid() bool {
	return v >= 0 && v < viewCount
}

func (v ViewID) String() string {
	if !v.Valid() {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return registry[v].name
}

// Title is the label shown in menus.
func (v ViewID) Title() string {
	if !v.Valid() {
		return v.String()
	}
	return registry[v].title
}

// Param reports which navigation parameter the view accepts.
func (v ViewID) Param() ParamKind {
	if !v.Valid() {
		return ParamNone
	}
	return registry[v].param
}

// FooterVisible is false for the full-bleed views (nemi, studio, edutools).
func FooterVisible(v ViewID) bool {
	if !v.Valid() {
		return true
	}
	return !registry[v].fullBleed
}

// AllViews lists every view in menu order.
func AllViews() []ViewID {
	out := make([]ViewID, 0, viewCount)
	for v := ViewID(0); v < viewCount; v++ {
		out = append(out, v)
	}
	return out
}

// ParseView resolves a view name case-insensitively.
func ParseView(name string) (ViewID, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for v := ViewID(0); v < viewCount; v++ {
		if registry[v].name == needle {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, name)
}

func (v ViewID) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(v))
	}
	return []byte(v.String()), nil
}

func (v *ViewID) UnmarshalText(b []byte) error {
	parsed, err := ParseView(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
