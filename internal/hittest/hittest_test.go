package hittest

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/shape"
)

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

type fixedMeasurer struct{ perRune float64 }

func (m fixedMeasurer) MeasureText(text string, size float64) (float64, float64) {
	return float64(len([]rune(text))) * m.perRune, size
}

func box(kind shape.Kind, x1, y1, x2, y2 float64) shape.Effective {
	return shape.Fold(kind, shape.Data{
		Style: shape.Style{Size: 2},
		Start: vec(x1, y1),
		End:   vec(x2, y2),
	}, nil)
}

func TestHitRectangleOutline(t *testing.T) {
	var tr Tester
	e := box(shape.Rectangle, 10, 10, 50, 50)
	cases := []struct {
		name string
		p    r2.Vec
		want bool
	}{
		{"top edge", vec(30, 10), true},
		{"near left edge", vec(14, 30), true},
		{"center", vec(30, 30), false},
		{"outside", vec(70, 70), false},
		{"corner", vec(50, 50), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.Hit(e, tc.p); got != tc.want {
				t.Fatalf("Hit(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestHitEllipseBoundary(t *testing.T) {
	var tr Tester
	e := box(shape.Ellipse, 0, 0, 100, 50)
	if !tr.Hit(e, vec(100, 25)) {
		t.Fatalf("expected hit on right vertex")
	}
	if !tr.Hit(e, vec(50, 1)) {
		t.Fatalf("expected hit near top vertex")
	}
	if tr.Hit(e, vec(50, 25)) {
		t.Fatalf("unexpected hit at center")
	}
	if tr.Hit(e, vec(2, 2)) {
		t.Fatalf("unexpected hit at bbox corner")
	}
}

func TestHitArrowShaftAndHead(t *testing.T) {
	var tr Tester
	e := box(shape.Arrow, 0, 0, 100, 0)
	if !tr.Hit(e, vec(50, 2)) {
		t.Fatalf("expected shaft hit")
	}
	left, _ := e.ArrowHead()
	if !tr.Hit(e, left) {
		t.Fatalf("expected head wing hit at %v", left)
	}
	if tr.Hit(e, vec(50, 30)) {
		t.Fatalf("unexpected hit away from arrow")
	}
}

func TestHitBrushUsesOffset(t *testing.T) {
	var tr Tester
	r := shape.New(shape.Brush, shape.Data{
		Style:  shape.Style{Size: 2},
		Points: []r2.Vec{vec(0, 0), vec(10, 0), vec(20, 0)},
	})
	r.Append(&shape.Edit{To: vec(0, 100)})
	e := shape.Reduce(r)
	if tr.Hit(e, vec(5, 0)) {
		t.Fatalf("hit at stored position")
	}
	if !tr.Hit(e, vec(5, 101)) {
		t.Fatalf("expected hit at translated position")
	}
}

func TestHitTextBoundingBox(t *testing.T) {
	tr := Tester{Measurer: fixedMeasurer{perRune: 10}}
	r := shape.New(shape.Text, shape.Data{Style: shape.Style{Size: 18}, Start: vec(100, 100), Text: "abc\nlonger"})
	e := shape.Reduce(r)
	if !tr.Hit(e, vec(155, 130)) {
		t.Fatalf("expected hit inside second line")
	}
	if tr.Hit(e, vec(165, 130)) {
		t.Fatalf("unexpected hit past widest line")
	}
	if tr.Hit(e, vec(110, 140)) {
		t.Fatalf("unexpected hit below last line")
	}
}

func TestHitSkipsDeletedAndHidden(t *testing.T) {
	var tr Tester
	e := box(shape.Rectangle, 10, 10, 50, 50)
	e.Deleted = true
	if tr.Hit(e, vec(10, 30)) {
		t.Fatalf("deleted shape hit")
	}
	e.Deleted, e.Hidden = false, true
	if tr.Hit(e, vec(10, 30)) {
		t.Fatalf("hidden shape hit")
	}
}

func TestHitHandlePriority(t *testing.T) {
	tr := Tester{HandleRadius: 6}
	// A 6px wide box puts the top and top-right hotspots 3px apart.
	e := box(shape.Rectangle, 0, 0, 6, 40)
	if got := tr.HitHandle(e, vec(4.5, 0)); got != shape.ResizeTop {
		t.Fatalf("HitHandle = %s, want %s", got, shape.ResizeTop)
	}
	if got := tr.HitHandle(e, vec(6, 40)); got != shape.ResizeRightBottom {
		t.Fatalf("HitHandle = %s, want %s", got, shape.ResizeRightBottom)
	}
	if got := tr.HitHandle(box(shape.Rectangle, 0, 0, 40, 40), vec(20, 20)); got != shape.Move {
		t.Fatalf("HitHandle = %s, want %s", got, shape.Move)
	}
	arrow := box(shape.Arrow, 0, 0, 4, 0)
	if got := tr.HitHandle(arrow, vec(2, 0)); got != shape.MoveStart {
		t.Fatalf("arrow HitHandle = %s, want %s", got, shape.MoveStart)
	}
	if got := tr.HitHandle(box(shape.Arrow, 0, 0, 40, 0), vec(41, 1)); got != shape.MoveEnd {
		t.Fatalf("arrow HitHandle = %s, want %s", got, shape.MoveEnd)
	}
}

func TestSelectedHandlesExtendHitArea(t *testing.T) {
	tr := Tester{Tolerance: 1, HandleRadius: 6}
	e := box(shape.Rectangle, 10, 10, 50, 50)
	p := vec(6, 8)
	if tr.Hit(e, p) {
		t.Fatalf("unselected shape hit outside stroke")
	}
	e.Selected = true
	if !tr.Hit(e, p) {
		t.Fatalf("selected shape missed its handle")
	}
}

func TestPickMostRecentFirst(t *testing.T) {
	var tr Tester
	older := shape.New(shape.Rectangle, shape.Data{Style: shape.Style{Size: 2}, Start: vec(0, 0), End: vec(40, 40)})
	newer := shape.New(shape.Rectangle, shape.Data{Style: shape.Style{Size: 2}, Start: vec(0, 0), End: vec(40, 20)})
	records := []*shape.Record{older, newer}
	if got := tr.Pick(records, vec(0, 10)); got != newer {
		t.Fatalf("Pick returned %v, want newer record", got)
	}
	if got := tr.Pick(records, vec(20, 40)); got != older {
		t.Fatalf("Pick returned %v, want older record", got)
	}
	if got := tr.Pick(records, vec(200, 200)); got != nil {
		t.Fatalf("Pick returned %v, want nil", got)
	}
}

func TestSegmentDistance(t *testing.T) {
	if d := SegmentDistance(vec(5, 3), vec(0, 0), vec(10, 0)); d != 3 {
		t.Fatalf("distance = %v, want 3", d)
	}
	if d := SegmentDistance(vec(13, 4), vec(0, 0), vec(10, 0)); d != 5 {
		t.Fatalf("distance = %v, want 5", d)
	}
	if d := SegmentDistance(vec(3, 4), vec(0, 0), vec(0, 0)); d != 5 {
		t.Fatalf("distance = %v, want 5", d)
	}
}
