// Package shape holds the event-sourced annotation model: a creation
// record per shape plus the append-only log of edits applied to it.
package shape

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind tags the shape type of a record.
type Kind int

const (
	Arrow Kind = iota
	Rectangle
	Ellipse
	Brush
	Text
)

// Kinds lists every shape kind in toolbar order.
var Kinds = []Kind{Arrow, Rectangle, Ellipse, Brush, Text}

var kindNames = [...]string{
	Arrow:     "arrow",
	Rectangle: "rectangle",
	Ellipse:   "ellipse",
	Brush:     "brush",
	Text:      "text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its name. Short aliases are accepted.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "arrow":
		return Arrow, true
	case "rectangle", "rect":
		return Rectangle, true
	case "ellipse", "circle":
		return Ellipse, true
	case "brush", "pen":
		return Brush, true
	case "text":
		return Text, true
	}
	return 0, false
}

// EditKind names what part of a shape an edit changes.
type EditKind int

const (
	Move EditKind = iota
	ResizeTop
	ResizeRightTop
	ResizeRight
	ResizeRightBottom
	ResizeBottom
	ResizeLeftBottom
	ResizeLeft
	ResizeLeftTop
	MoveStart
	MoveEnd
)

var editKindNames = [...]string{
	Move:              "move",
	ResizeTop:         "resize-top",
	ResizeRightTop:    "resize-right-top",
	ResizeRight:       "resize-right",
	ResizeRightBottom: "resize-right-bottom",
	ResizeBottom:      "resize-bottom",
	ResizeLeftBottom:  "resize-left-bottom",
	ResizeLeft:        "resize-left",
	ResizeLeftTop:     "resize-left-top",
	MoveStart:         "move-start",
	MoveEnd:           "move-end",
}

func (k EditKind) String() string {
	if k < 0 || int(k) >= len(editKindNames) {
		return "unknown"
	}
	return editKindNames[k]
}

// Style is the stroke size and colour shared by every kind. A zero Size
// or a fully transparent Color means "not set".
type Style struct {
	Size  float64
	Color color.RGBA
}

// Data is the geometry and style fixed when a shape is created.
//
// Arrows use Start and End as endpoints, rectangles and ellipses use them
// as the corners (x1,y1) and (x2,y2), and text uses Start as its top-left
// anchor. Brush strokes keep their samples in Points.
type Data struct {
	Style
	Start, End r2.Vec
	Points     []r2.Vec
	Text       string
	Font       string
	// Hidden suppresses drawing while the text is open in an overlay.
	Hidden bool
}

// Clone returns a copy that shares no slices with d.
func (d Data) Clone() Data {
	if d.Points != nil {
		d.Points = append([]r2.Vec(nil), d.Points...)
	}
	return d
}

// Edit is one incremental change to a record. The translation it carries
// is To minus From.
type Edit struct {
	Kind  EditKind
	From  r2.Vec
	To    r2.Vec
	Size  float64
	Color color.RGBA
	Text  string
	Del   bool

	owner *Record
}

// Delta returns the translation carried by the edit.
func (e *Edit) Delta() r2.Vec {
	return r2.Sub(e.To, e.From)
}

// Owner returns the record the edit was appended to, or nil.
func (e *Edit) Owner() *Record {
	return e.owner
}

// Record is a creation record: the shape's initial data, its selection
// flag and its edit log.
//
// The log keeps edits that were undone so they can be redone; only the
// applied prefix contributes to the effective state.
type Record struct {
	Kind     Kind
	Data     Data
	Selected bool

	edits   []*Edit
	applied int
}

// New returns a record of the given kind with no edits.
func New(kind Kind, data Data) *Record {
	return &Record{Kind: kind, Data: data}
}

// Edits returns the applied part of the edit log in causal order.
func (r *Record) Edits() []*Edit {
	return r.edits[:r.applied]
}

// Append adds e to the end of the applied log. Edits previously retracted
// by undo are discarded.
func (r *Record) Append(e *Edit) {
	e.owner = r
	r.edits = append(r.edits[:r.applied], e)
	r.applied = len(r.edits)
}

// Retract un-applies the newest applied edit.
func (r *Record) Retract() bool {
	if r.applied == 0 {
		return false
	}
	r.applied--
	return true
}

// Reinstate re-applies the oldest retracted edit.
func (r *Record) Reinstate() bool {
	if r.applied == len(r.edits) {
		return false
	}
	r.applied++
	return true
}

// Prune drops retracted edits so they can no longer be reinstated.
func (r *Record) Prune() {
	for i := r.applied; i < len(r.edits); i++ {
		r.edits[i] = nil
	}
	r.edits = r.edits[:r.applied]
}
