// Package render draws effective annotation state onto raster surfaces.
package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cap is the shape drawn at the open ends of a stroked path.
type Cap int

const (
	ButtCap Cap = iota
	RoundCap
	SquareCap
)

// Join is the shape drawn where two stroked segments meet.
type Join int

const (
	MiterJoin Join = iota
	RoundJoin
	BevelJoin
)

// Surface is an immediate-mode drawing target in surface-local pixels,
// (0,0) being the top-left of the annotated region. Stroke and Fill
// consume the current path.
type Surface interface {
	SetStrokeWidth(w float64)
	SetLineCap(c Cap)
	SetLineJoin(j Join)
	SetColor(c color.Color)
	MoveTo(p r2.Vec)
	LineTo(p r2.Vec)
	// Ellipse adds a closed elliptical subpath.
	Ellipse(center r2.Vec, rx, ry float64)
	ClosePath()
	Stroke()
	Fill()
	// FillText draws one line of text with its top-left corner at p.
	FillText(text string, p r2.Vec, size float64)
	MeasureText(text string, size float64) (width, height float64)
}
