package gesture

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// OverlayState describes the text entry box a host should show.
// Position is in viewport coordinates; the box may not grow past
// MaxWidth by MaxHeight.
type OverlayState struct {
	Position  r2.Vec
	MaxWidth  float64
	MaxHeight float64
	Text      string
	Color     color.RGBA
	Size      float64
}

// Overlay is the host's text entry widget. Open is called again with a
// new state when the style changes while it is open. The host reports
// typing through Session.OverlayChange and focus loss through
// Session.OverlayBlur.
type Overlay interface {
	Open(OverlayState)
	Close()
}

type nopOverlay struct{}

func (nopOverlay) Open(OverlayState) {}
func (nopOverlay) Close()            {}
