package render

import (
	"image"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/hittest"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/theme"
)

// DefaultHandleRadius is the drawn radius of a drag handle.
const DefaultHandleRadius = 4

// Renderer draws records. Selection decorations are drawn only when
// Decorations is set.
type Renderer struct {
	Theme        *theme.Theme
	HandleRadius float64
	Decorations  bool
}

// NewRenderer returns a renderer that draws decorations with th.
func NewRenderer(th *theme.Theme) *Renderer {
	if th == nil {
		th = theme.Default()
	}
	return &Renderer{Theme: th, HandleRadius: DefaultHandleRadius, Decorations: true}
}

type drawFunc func(r *Renderer, s Surface, e shape.Effective)

var drawers = [...]drawFunc{
	shape.Arrow:     drawArrow,
	shape.Rectangle: drawRectangle,
	shape.Ellipse:   drawEllipse,
	shape.Brush:     drawBrush,
	shape.Text:      drawText,
}

// Draw renders records in creation order.
func (r *Renderer) Draw(s Surface, records []*shape.Record) {
	if s == nil {
		return
	}
	for _, rec := range records {
		r.DrawEffective(s, shape.Reduce(rec))
	}
}

// DrawEffective renders one folded shape. Deleted and hidden shapes draw
// nothing.
func (r *Renderer) DrawEffective(s Surface, e shape.Effective) {
	if e.Deleted || e.Hidden {
		return
	}
	if e.Kind < 0 || int(e.Kind) >= len(drawers) {
		return
	}
	if !r.Decorations {
		e.Selected = false
	}
	drawers[e.Kind](r, s, e)
}

func stroke(s Surface, e shape.Effective, c Cap, j Join) {
	s.SetStrokeWidth(e.Size)
	s.SetLineCap(c)
	s.SetLineJoin(j)
	s.SetColor(e.Color)
	s.Stroke()
}

func drawRectangle(r *Renderer, s Surface, e shape.Effective) {
	x1, y1, x2, y2 := e.Start.X, e.Start.Y, e.End.X, e.End.Y
	s.MoveTo(r2.Vec{X: x1, Y: y1})
	s.LineTo(r2.Vec{X: x2, Y: y1})
	s.LineTo(r2.Vec{X: x2, Y: y2})
	s.LineTo(r2.Vec{X: x1, Y: y2})
	s.ClosePath()
	stroke(s, e, ButtCap, MiterJoin)
	if e.Selected {
		r.drawHandles(s, e)
	}
}

func drawEllipse(r *Renderer, s Surface, e shape.Effective) {
	center := r2.Scale(0.5, r2.Add(e.Start, e.End))
	rx := math.Abs(e.End.X-e.Start.X) / 2
	ry := math.Abs(e.End.Y-e.Start.Y) / 2
	s.Ellipse(center, rx, ry)
	stroke(s, e, ButtCap, RoundJoin)
	if e.Selected {
		r.frame(s, e.Start, e.End)
		r.drawHandles(s, e)
	}
}

func drawArrow(r *Renderer, s Surface, e shape.Effective) {
	left, right := e.ArrowHead()
	s.MoveTo(e.Start)
	s.LineTo(e.End)
	s.MoveTo(left)
	s.LineTo(e.End)
	s.LineTo(right)
	stroke(s, e, RoundCap, RoundJoin)
	if e.Selected {
		r.drawHandles(s, e)
	}
}

func drawBrush(r *Renderer, s Surface, e shape.Effective) {
	path := e.Path()
	if len(path) == 0 {
		return
	}
	if len(path) == 1 {
		s.Ellipse(path[0], e.Size/2, e.Size/2)
		s.SetColor(e.Color)
		s.Fill()
		return
	}
	s.MoveTo(path[0])
	for _, p := range path[1:] {
		s.LineTo(p)
	}
	stroke(s, e, RoundCap, RoundJoin)
	if e.Selected {
		s.MoveTo(path[0])
		for _, p := range path[1:] {
			s.LineTo(p)
		}
		s.SetStrokeWidth(1)
		s.SetColor(r.Theme.Selection)
		s.Stroke()
	}
}

func drawText(r *Renderer, s Surface, e shape.Effective) {
	a := e.Anchor()
	s.SetColor(e.Color)
	for i, line := range strings.Split(e.Text, "\n") {
		s.FillText(line, r2.Vec{X: a.X, Y: a.Y + float64(i)*e.Size}, e.Size)
	}
	if e.Selected {
		w, h := hittest.TextExtent(s, e.Text, e.Size)
		r.frame(s, r2.Vec{X: a.X - 2, Y: a.Y - 2}, r2.Vec{X: a.X + w + 2, Y: a.Y + h + 2})
	}
}

func (r *Renderer) frame(s Surface, lo, hi r2.Vec) {
	s.MoveTo(lo)
	s.LineTo(r2.Vec{X: hi.X, Y: lo.Y})
	s.LineTo(hi)
	s.LineTo(r2.Vec{X: lo.X, Y: hi.Y})
	s.ClosePath()
	s.SetStrokeWidth(1)
	s.SetLineJoin(MiterJoin)
	s.SetColor(r.Theme.Selection)
	s.Stroke()
}

func (r *Renderer) drawHandles(s Surface, e shape.Effective) {
	radius := r.HandleRadius
	if radius <= 0 {
		radius = DefaultHandleRadius
	}
	for _, h := range e.Handles() {
		s.Ellipse(h.At, radius, radius)
		s.SetColor(r.Theme.HandleFill)
		s.Fill()
		s.Ellipse(h.At, radius, radius)
		s.SetStrokeWidth(1)
		s.SetColor(r.Theme.HandleStroke)
		s.Stroke()
	}
}

// Compose returns a copy of base with records drawn on top, without
// selection decorations.
func Compose(base image.Image, records []*shape.Record) *image.RGBA {
	out := Clone(base)
	r := NewRenderer(nil)
	r.Decorations = false
	r.Draw(NewCanvas(out), records)
	return out
}
