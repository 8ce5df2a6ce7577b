// Package hittest resolves pointer positions to shapes and drag handles.
package hittest

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/shape"
)

const (
	// DefaultTolerance is the slack in pixels around a stroke.
	DefaultTolerance = 4
	// DefaultHandleRadius is the radius of a drag handle hotspot.
	DefaultHandleRadius = 6
)

// Measurer reports the rendered extent of a single line of text.
type Measurer interface {
	MeasureText(text string, size float64) (width, height float64)
}

// Tester runs hit tests. The zero value uses the default tolerances and
// estimates text width from the rune count.
type Tester struct {
	Measurer     Measurer
	Tolerance    float64
	HandleRadius float64
}

type hitFunc func(t Tester, e shape.Effective, p r2.Vec) bool

var hitters = [...]hitFunc{
	shape.Arrow:     hitArrow,
	shape.Rectangle: hitRectangle,
	shape.Ellipse:   hitEllipse,
	shape.Brush:     hitBrush,
	shape.Text:      hitText,
}

func (t Tester) tolerance() float64 {
	if t.Tolerance > 0 {
		return t.Tolerance
	}
	return DefaultTolerance
}

func (t Tester) radius() float64 {
	if t.HandleRadius > 0 {
		return t.HandleRadius
	}
	return DefaultHandleRadius
}

// Hit reports whether p touches the drawn shape. Deleted and hidden
// shapes are never hit. Handles of a selected shape count as part of it.
func (t Tester) Hit(e shape.Effective, p r2.Vec) bool {
	if e.Deleted || e.Hidden {
		return false
	}
	if e.Kind < 0 || int(e.Kind) >= len(hitters) {
		return false
	}
	if hitters[e.Kind](t, e, p) {
		return true
	}
	return e.Selected && t.HitHandle(e, p) != shape.Move
}

// HitHandle returns the first handle of e whose hotspot contains p, in
// priority order, or shape.Move when none does.
func (t Tester) HitHandle(e shape.Effective, p r2.Vec) shape.EditKind {
	r := t.radius()
	for _, h := range e.Handles() {
		if HitCircle(h.At, p, r) {
			return h.Kind
		}
	}
	return shape.Move
}

// Pick returns the most recently created record hit by p, or nil.
func (t Tester) Pick(records []*shape.Record, p r2.Vec) *shape.Record {
	for i := len(records) - 1; i >= 0; i-- {
		if t.Hit(shape.Reduce(records[i]), p) {
			return records[i]
		}
	}
	return nil
}

// HitCircle reports whether p lies within radius of center.
func HitCircle(center, p r2.Vec, radius float64) bool {
	return r2.Norm2(r2.Sub(p, center)) <= radius*radius
}

func (t Tester) reach(e shape.Effective) float64 {
	return e.Size/2 + t.tolerance()
}

func hitArrow(t Tester, e shape.Effective, p r2.Vec) bool {
	reach := t.reach(e)
	if SegmentDistance(p, e.Start, e.End) <= reach {
		return true
	}
	left, right := e.ArrowHead()
	return SegmentDistance(p, e.End, left) <= reach || SegmentDistance(p, e.End, right) <= reach
}

func hitRectangle(t Tester, e shape.Effective, p r2.Vec) bool {
	reach := t.reach(e)
	a := e.Start
	b := r2.Vec{X: e.End.X, Y: e.Start.Y}
	c := e.End
	d := r2.Vec{X: e.Start.X, Y: e.End.Y}
	return SegmentDistance(p, a, b) <= reach ||
		SegmentDistance(p, b, c) <= reach ||
		SegmentDistance(p, c, d) <= reach ||
		SegmentDistance(p, d, a) <= reach
}

func hitEllipse(t Tester, e shape.Effective, p r2.Vec) bool {
	reach := t.reach(e)
	center := r2.Scale(0.5, r2.Add(e.Start, e.End))
	rx := math.Abs(e.End.X-e.Start.X) / 2
	ry := math.Abs(e.End.Y-e.Start.Y) / 2
	switch {
	case rx == 0 && ry == 0:
		return HitCircle(center, p, reach)
	case rx == 0 || ry == 0:
		return SegmentDistance(p, e.Start, e.End) <= reach
	}
	v := r2.Sub(p, center)
	n := r2.Norm(v)
	if n == 0 {
		return math.Min(rx, ry) <= reach
	}
	k := math.Hypot(v.X/rx, v.Y/ry)
	// Distance from p to the boundary along the ray from the center.
	return math.Abs(n-n/k) <= reach
}

func hitBrush(t Tester, e shape.Effective, p r2.Vec) bool {
	path := e.Path()
	reach := t.reach(e)
	switch len(path) {
	case 0:
		return false
	case 1:
		return HitCircle(path[0], p, reach)
	}
	for i := 1; i < len(path); i++ {
		if SegmentDistance(p, path[i-1], path[i]) <= reach {
			return true
		}
	}
	return false
}

func hitText(t Tester, e shape.Effective, p r2.Vec) bool {
	w, h := TextExtent(t.Measurer, e.Text, e.Size)
	a := e.Anchor()
	return p.X >= a.X && p.X <= a.X+w && p.Y >= a.Y && p.Y <= a.Y+h
}

// TextExtent measures multi-line text: the widest line by one line height
// per line. Without a measurer the width is estimated.
func TextExtent(m Measurer, text string, size float64) (width, height float64) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		var w float64
		if m != nil {
			w, _ = m.MeasureText(line, size)
		} else {
			w = float64(len([]rune(line))) * size * 0.6
		}
		width = math.Max(width, w)
	}
	return width, float64(len(lines)) * size
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	s := r2.Dot(r2.Sub(p, a), ab) / l2
	s = math.Max(0, math.Min(1, s))
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(s, ab))))
}
