package nav

// AllCategories is the category channel's default value.
const AllCategories = "all"

// ScrollBehavior selects how the viewport returns to the top.
type ScrollBehavior int

const (
	ScrollSmooth ScrollBehavior = iota
	ScrollInstant
)

// Scroller receives the scroll-to-top side effect of every navigation.
type Scroller interface {
	ScrollToTop(ScrollBehavior)
}

// ScrollFunc adapts a function to Scroller.
type ScrollFunc func(ScrollBehavior)

func (f ScrollFunc) ScrollToTop(b ScrollBehavior) { f(b) }

// ViewState is the navigation snapshot. Category is the webinars filter and
// StudioTool the studio tool id; they are separate channels.
type ViewState struct {
	Current    ViewID
	Category   string
	StudioTool string
}

// Request is a navigation trigger produced by any part of the UI. An empty
// Param means no parameter.
type Request struct {
	Target ViewID
	Param  string
}

type Option func(*Controller)

// WithScroller installs the scroll-to-top side effect.
func WithScroller(s Scroller) Option {
	return func(c *Controller) { c.scroller = s }
}

// WithRetainedChannels makes a navigation rewrite only the parameter channel
// of its own target view; the other channel keeps its last value.
func WithRetainedChannels() Option {
	return func(c *Controller) { c.retain = true }
}

// Controller is the single writer of ViewState.
type Controller struct {
	state    ViewState
	retain   bool
	scroller Scroller
}

func NewController(opts ...Option) *Controller {
	c := &Controller{
		state: ViewState{Current: Home, Category: AllCategories},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Navigate switches to target and routes param into the target's channel.
// Targets outside the closed view set are rejected with ErrUnknownView and
// leave the state untouched. Every accepted call scrolls to the top, even
// when target is already the current view.
func (c *Controller) Navigate(target ViewID, param string) error {
	if !target.Valid() {
		return ErrUnknownView
	}
	c.state.Current = target

	switch {
	case target == Webinars && param != "":
		c.state.Category = param
	case target == Webinars || !c.retain:
		c.state.Category = AllCategories
	}

	switch {
	case target == Studio && param != "":
		c.state.StudioTool = param
	case target == Studio || !c.retain:
		c.state.StudioTool = ""
	}

	if c.scroller != nil {
		c.scroller.ScrollToTop(ScrollSmooth)
	}
	return nil
}

// Apply is Navigate for a Request value.
func (c *Controller) Apply(req Request) error {
	return c.Navigate(req.Target, req.Param)
}

func (c *Controller) CurrentView() ViewID { return c.state.Current }

// CurrentParam returns the parameter meaningful to the current view: the
// category for webinars, the tool id for studio, "" otherwise.
func (c *Controller) CurrentParam() string {
	switch c.state.Current.Param() {
	case ParamCategory:
		return c.state.Category
	case ParamTool:
		return c.state.StudioTool
	default:
		return ""
	}
}

func (c *Controller) Category() string   { return c.state.Category }
func (c *Controller) StudioTool() string { return c.state.StudioTool }

// State returns a copy of the navigation state.
func (c *Controller) State() ViewState { return c.state }
