package gesture

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/history"
	"github.com/example/annotator/internal/shape"
)

// beginText starts a new text shape at p and opens the overlay for it.
// Nothing is pushed until the overlay loses focus with some text in it.
func (c *Controller) beginText(p r2.Vec) {
	c.pending = shape.New(shape.Text, c.behavior.seed(p, c.defaults))
	c.state = EditingText
	c.s.overlay.Open(c.overlayState(p, "", c.defaults))
	c.s.log.Debug("gesture text begin", "x", p.X, "y", p.Y)
}

// openEdit reopens an existing text shape in the overlay. The shape is
// hidden while its text is being edited.
func (c *Controller) openEdit(rec *shape.Record, p r2.Vec) {
	if rec.Kind != shape.Text {
		return
	}
	c.s.activate(c)
	c.reset()
	c.s.stack.Select(rec)
	eff := shape.Reduce(rec)
	c.edit = &shape.Edit{Kind: shape.Move, From: p, To: p, Text: eff.Text}
	c.target = rec
	c.state = EditingText
	rec.Data.Hidden = true
	c.s.stack.Refresh()
	c.s.overlay.Open(c.overlayState(eff.Anchor(), eff.Text, eff.Style))
}

func (c *Controller) overlayState(anchor r2.Vec, text string, st shape.Style) OverlayState {
	b := c.s.bounds
	return OverlayState{
		Position:  r2.Vec{X: anchor.X + float64(b.Min.X), Y: anchor.Y + float64(b.Min.Y)},
		MaxWidth:  float64(b.Dx()) - anchor.X,
		MaxHeight: float64(b.Dy()) - anchor.Y,
		Text:      text,
		Color:     st.Color,
		Size:      st.Size,
	}
}

func (c *Controller) textChange(text string) {
	switch {
	case c.pending != nil:
		c.pending.Data.Text = text
	case c.edit != nil:
		c.edit.Text = text
	}
}

// blur commits the overlay's text. An emptied shape is deleted.
func (c *Controller) blur() {
	switch {
	case c.pending != nil:
		if c.pending.Data.Text != "" {
			c.s.stack.Push(history.Creation(c.pending))
		}
	case c.edit != nil && c.target != nil:
		c.edit.Del = c.edit.Text == ""
		c.target.Data.Hidden = false
		c.target.Append(c.edit)
		c.s.stack.Push(history.Modification(c.edit))
	}
	c.reset()
	c.s.overlay.Close()
	c.schedule(c.s.textDelay, c.s.stack.ClearSelect)
	c.s.log.Debug("gesture text commit")
}

// restyleText changes the style of the text open in the overlay.
func (c *Controller) restyleText(change shape.Style) {
	var (
		anchor r2.Vec
		text   string
		st     shape.Style
	)
	switch {
	case c.pending != nil:
		c.pending.Data.Style = merge(c.pending.Data.Style, change)
		c.defaults = merge(c.defaults, change)
		anchor, text, st = c.pending.Data.Start, c.pending.Data.Text, c.pending.Data.Style
	case c.edit != nil && c.target != nil:
		eff := shape.Reduce(c.target)
		if change.Size != 0 && change.Size != eff.Size {
			c.edit.Size = change.Size
		}
		if change.Color.A != 0 && change.Color != eff.Color {
			c.edit.Color = change.Color
		}
		anchor, text = eff.Anchor(), c.edit.Text
		st = merge(eff.Style, shape.Style{Size: c.edit.Size, Color: c.edit.Color})
	default:
		return
	}
	c.s.overlay.Open(c.overlayState(anchor, text, st))
}
