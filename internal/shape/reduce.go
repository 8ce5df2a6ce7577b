package shape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Effective is a record's state after folding its edit log.
type Effective struct {
	Kind Kind
	Style
	Start, End r2.Vec
	// Points are the stored brush samples; Path applies Offset.
	Points []r2.Vec
	// Offset is the summed translation of brush and text edits.
	Offset   r2.Vec
	Text     string
	Font     string
	Hidden   bool
	Deleted  bool
	Selected bool
}

type folder func(e *Effective, edit *Edit)

var folders = [...]folder{
	Arrow:     foldArrow,
	Rectangle: foldBox,
	Ellipse:   foldBox,
	Brush:     foldOffset,
	Text:      foldOffset,
}

// Reduce folds the applied edit log of r.
func Reduce(r *Record) Effective {
	e := Fold(r.Kind, r.Data, r.Edits())
	e.Selected = r.Selected
	return e
}

// Fold computes the effective state of a shape from its creation data and
// an edit log. It does not modify its arguments.
func Fold(kind Kind, data Data, edits []*Edit) Effective {
	e := Effective{
		Kind:   kind,
		Style:  data.Style,
		Start:  data.Start,
		End:    data.End,
		Points: data.Points,
		Text:   data.Text,
		Font:   data.Font,
		Hidden: data.Hidden,
	}
	var geom folder
	if kind >= 0 && int(kind) < len(folders) {
		geom = folders[kind]
	}
	for _, edit := range edits {
		if geom != nil {
			geom(&e, edit)
		}
		if edit.Size != 0 {
			e.Size = edit.Size
		}
		if edit.Color.A != 0 {
			e.Color = edit.Color
		}
		e.Deleted = edit.Del
	}
	if kind == Text && len(edits) > 0 {
		last := edits[len(edits)-1]
		e.Text = last.Text
		if last.Text == "" {
			e.Deleted = true
		}
	}
	return e
}

func foldArrow(e *Effective, edit *Edit) {
	d := edit.Delta()
	switch edit.Kind {
	case MoveStart:
		e.Start = r2.Add(e.Start, d)
	case MoveEnd:
		e.End = r2.Add(e.End, d)
	default:
		e.Start = r2.Add(e.Start, d)
		e.End = r2.Add(e.End, d)
	}
}

func foldBox(e *Effective, edit *Edit) {
	d := edit.Delta()
	switch edit.Kind {
	case ResizeTop:
		e.Start.Y += d.Y
	case ResizeRightTop:
		e.End.X += d.X
		e.Start.Y += d.Y
	case ResizeRight:
		e.End.X += d.X
	case ResizeRightBottom:
		e.End = r2.Add(e.End, d)
	case ResizeBottom:
		e.End.Y += d.Y
	case ResizeLeftBottom:
		e.Start.X += d.X
		e.End.Y += d.Y
	case ResizeLeft:
		e.Start.X += d.X
	case ResizeLeftTop:
		e.Start = r2.Add(e.Start, d)
	default:
		e.Start = r2.Add(e.Start, d)
		e.End = r2.Add(e.End, d)
	}
}

func foldOffset(e *Effective, edit *Edit) {
	e.Offset = r2.Add(e.Offset, edit.Delta())
}

// Path returns the brush samples translated by the accumulated offset.
func (e Effective) Path() []r2.Vec {
	out := make([]r2.Vec, len(e.Points))
	for i, p := range e.Points {
		out[i] = r2.Add(p, e.Offset)
	}
	return out
}

// Anchor returns the translated top-left corner of a text shape.
func (e Effective) Anchor() r2.Vec {
	return r2.Add(e.Start, e.Offset)
}

// Handle is a named drag hotspot.
type Handle struct {
	Kind EditKind
	At   r2.Vec
}

// Handles returns the drag hotspots of e in hit priority order. Brush and
// text shapes have none.
func (e Effective) Handles() []Handle {
	switch e.Kind {
	case Arrow:
		return []Handle{{MoveStart, e.Start}, {MoveEnd, e.End}}
	case Rectangle, Ellipse:
		x1, y1, x2, y2 := e.Start.X, e.Start.Y, e.End.X, e.End.Y
		mx, my := (x1+x2)/2, (y1+y2)/2
		return []Handle{
			{ResizeTop, r2.Vec{X: mx, Y: y1}},
			{ResizeRightTop, r2.Vec{X: x2, Y: y1}},
			{ResizeRight, r2.Vec{X: x2, Y: my}},
			{ResizeRightBottom, r2.Vec{X: x2, Y: y2}},
			{ResizeBottom, r2.Vec{X: mx, Y: y2}},
			{ResizeLeftBottom, r2.Vec{X: x1, Y: y2}},
			{ResizeLeft, r2.Vec{X: x1, Y: my}},
			{ResizeLeftTop, r2.Vec{X: x1, Y: y1}},
		}
	}
	return nil
}

const arrowWing = math.Pi / 6

// ArrowHead returns the two wing tips of an arrow's head. A zero length
// arrow has both tips at its end point.
func (e Effective) ArrowHead() (left, right r2.Vec) {
	back := r2.Sub(e.Start, e.End)
	n := r2.Norm(back)
	if n == 0 {
		return e.End, e.End
	}
	length := math.Min(3*e.Size+8, n)
	tip := r2.Add(e.End, r2.Scale(length/n, back))
	return r2.Rotate(tip, arrowWing, e.End), r2.Rotate(tip, -arrowWing, e.End)
}
