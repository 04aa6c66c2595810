package nav

import "github.com/SimoKiihamaki/cdaportal/internal/catalog"

// OverlayState is independent of ViewState: overlays stay up across
// navigation until their own close action clears them.
type OverlayState struct {
	SearchOpen bool
	Playing    *catalog.Video
}

// Overlays is the single writer of OverlayState.
type Overlays struct {
	state OverlayState
}

func NewOverlays() *Overlays {
	return &Overlays{}
}

// OpenSearch is idempotent.
func (o *Overlays) OpenSearch()  { o.state.SearchOpen = true }
func (o *Overlays) CloseSearch() { o.state.SearchOpen = false }

// PlayVideo starts v, replacing whatever was playing.
func (o *Overlays) PlayVideo(v catalog.Video) {
	o.state.Playing = &v
}

func (o *Overlays) StopVideo() { o.state.Playing = nil }

func (o *Overlays) IsSearchOpen() bool { return o.state.SearchOpen }

func (o *Overlays) CurrentlyPlaying() (catalog.Video, bool) {
	if o.state.Playing == nil {
		return catalog.Video{}, false
	}
	return *o.state.Playing, true
}

// State returns a copy; the playing video is copied too.
func (o *Overlays) State() OverlayState {
	s := o.state
	if s.Playing != nil {
		v := *s.Playing
		s.Playing = &v
	}
	return s
}
