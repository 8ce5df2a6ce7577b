package shape

import (
	"image/color"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func vec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func move(dx, dy float64) *Edit {
	return &Edit{Kind: Move, From: vec(100, 100), To: vec(100+dx, 100+dy)}
}

func TestFoldIdentity(t *testing.T) {
	red := color.RGBA{R: 0xF6, G: 0x54, B: 0x4A, A: 0xFF}
	cases := []struct {
		name string
		kind Kind
		data Data
	}{
		{"arrow", Arrow, Data{Style: Style{Size: 3, Color: red}, Start: vec(1, 2), End: vec(30, 40)}},
		{"rectangle", Rectangle, Data{Style: Style{Size: 6, Color: red}, Start: vec(10, 10), End: vec(50, 50)}},
		{"ellipse", Ellipse, Data{Style: Style{Size: 9, Color: red}, Start: vec(5, 5), End: vec(0, 20)}},
		{"brush", Brush, Data{Style: Style{Size: 3, Color: red}, Points: []r2.Vec{vec(0, 0), vec(1, 1)}}},
		{"text", Text, Data{Style: Style{Size: 18, Color: red}, Start: vec(4, 4), Text: "hi", Font: "Go"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := Fold(tc.kind, tc.data, nil)
			if e.Style != tc.data.Style {
				t.Fatalf("style = %+v, want %+v", e.Style, tc.data.Style)
			}
			if e.Start != tc.data.Start || e.End != tc.data.End {
				t.Fatalf("geometry = %v-%v, want %v-%v", e.Start, e.End, tc.data.Start, tc.data.End)
			}
			if !reflect.DeepEqual(e.Points, tc.data.Points) {
				t.Fatalf("points = %v, want %v", e.Points, tc.data.Points)
			}
			if e.Text != tc.data.Text || e.Font != tc.data.Font {
				t.Fatalf("text = %q/%q, want %q/%q", e.Text, e.Font, tc.data.Text, tc.data.Font)
			}
			if e.Deleted || e.Offset != (r2.Vec{}) {
				t.Fatalf("unexpected deleted=%v offset=%v", e.Deleted, e.Offset)
			}
		})
	}
}

func TestFoldMoveSumIsOrderIndependent(t *testing.T) {
	data := Data{Start: vec(0, 0), End: vec(10, 10)}
	edits := []*Edit{move(5, 0), move(-2, 7), move(3, 3)}
	reversed := []*Edit{edits[2], edits[1], edits[0]}
	for _, kind := range []Kind{Arrow, Rectangle, Ellipse} {
		a := Fold(kind, data, edits)
		b := Fold(kind, data, reversed)
		if a.Start != b.Start || a.End != b.End {
			t.Fatalf("%s: order changed result: %v-%v vs %v-%v", kind, a.Start, a.End, b.Start, b.End)
		}
		if want := vec(6, 10); a.Start != want {
			t.Fatalf("%s: start = %v, want %v", kind, a.Start, want)
		}
	}
	a := Fold(Brush, Data{Points: []r2.Vec{vec(0, 0)}}, edits)
	b := Fold(Brush, Data{Points: []r2.Vec{vec(0, 0)}}, reversed)
	if a.Offset != b.Offset || a.Offset != vec(6, 10) {
		t.Fatalf("brush offsets %v and %v, want %v", a.Offset, b.Offset, vec(6, 10))
	}
}

func TestFoldDeletedLastWins(t *testing.T) {
	data := Data{Start: vec(0, 0), End: vec(10, 10)}
	cases := []struct {
		name string
		dels []bool
		want bool
	}{
		{"empty", nil, false},
		{"single delete", []bool{true}, true},
		{"delete then plain", []bool{true, false}, false},
		{"plain then delete", []bool{false, true}, true},
		{"mixed", []bool{true, true, false, true, false}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var edits []*Edit
			for _, d := range tc.dels {
				edits = append(edits, &Edit{Del: d})
			}
			if got := Fold(Rectangle, data, edits).Deleted; got != tc.want {
				t.Fatalf("deleted = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFoldStyleLastNonEmpty(t *testing.T) {
	base := color.RGBA{R: 1, A: 0xFF}
	blue := color.RGBA{B: 0xF9, A: 0xFF}
	green := color.RGBA{G: 0xDC, A: 0xFF}
	data := Data{Style: Style{Size: 3, Color: base}}
	edits := []*Edit{
		{Size: 6},
		{Color: blue},
		{Size: 9, Color: green},
		{},
		{Color: blue},
	}
	e := Fold(Ellipse, data, edits)
	if e.Size != 9 {
		t.Fatalf("size = %v, want 9", e.Size)
	}
	if e.Color != blue {
		t.Fatalf("color = %v, want %v", e.Color, blue)
	}
	if got := Fold(Ellipse, data, []*Edit{{}, {}}).Style; got != data.Style {
		t.Fatalf("empty edits changed style to %+v", got)
	}
}

func TestRectangleMoveScenario(t *testing.T) {
	r := New(Rectangle, Data{Start: vec(10, 10), End: vec(50, 50)})
	r.Append(&Edit{Kind: Move, From: vec(20, 20), To: vec(25, 20)})
	e := Reduce(r)
	if e.Start != vec(15, 10) || e.End != vec(55, 50) {
		t.Fatalf("corners = %v-%v, want (15,10)-(55,50)", e.Start, e.End)
	}
}

func TestBrushOffsetScenario(t *testing.T) {
	r := New(Brush, Data{Points: []r2.Vec{vec(0, 0), vec(10, 10)}})
	r.Append(&Edit{Kind: Move, From: vec(1, 1), To: vec(3, 4)})
	e := Reduce(r)
	want := []r2.Vec{vec(2, 3), vec(12, 13)}
	if got := e.Path(); !reflect.DeepEqual(got, want) {
		t.Fatalf("path = %v, want %v", got, want)
	}
	if stored := []r2.Vec{vec(0, 0), vec(10, 10)}; !reflect.DeepEqual(r.Data.Points, stored) {
		t.Fatalf("stored points changed to %v", r.Data.Points)
	}
}

func TestTextDeleteThenEdit(t *testing.T) {
	r := New(Text, Data{Start: vec(0, 0), Text: "hello", Style: Style{Size: 18}})
	r.Append(&Edit{Kind: Move, Text: "hello", Del: true})
	if e := Reduce(r); !e.Deleted {
		t.Fatalf("expected deleted after delete edit")
	}
	r.Append(&Edit{Kind: Move, Text: "world"})
	e := Reduce(r)
	if e.Deleted {
		t.Fatalf("expected last edit to undelete")
	}
	if e.Text != "world" {
		t.Fatalf("text = %q, want %q", e.Text, "world")
	}
}

func TestTextEmptyEditDeletes(t *testing.T) {
	r := New(Text, Data{Text: "hello"})
	r.Append(&Edit{Kind: Move})
	if e := Reduce(r); !e.Deleted || e.Text != "" {
		t.Fatalf("expected implicit delete, got deleted=%v text=%q", e.Deleted, e.Text)
	}
}

func TestFoldResizeHandles(t *testing.T) {
	data := Data{Start: vec(10, 10), End: vec(50, 50)}
	d := vec(3, 4)
	cases := []struct {
		kind       EditKind
		start, end r2.Vec
	}{
		{ResizeTop, vec(10, 14), vec(50, 50)},
		{ResizeRightTop, vec(10, 14), vec(53, 50)},
		{ResizeRight, vec(10, 10), vec(53, 50)},
		{ResizeRightBottom, vec(10, 10), vec(53, 54)},
		{ResizeBottom, vec(10, 10), vec(50, 54)},
		{ResizeLeftBottom, vec(13, 10), vec(50, 54)},
		{ResizeLeft, vec(13, 10), vec(50, 50)},
		{ResizeLeftTop, vec(13, 14), vec(50, 50)},
		{Move, vec(13, 14), vec(53, 54)},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			e := Fold(Rectangle, data, []*Edit{{Kind: tc.kind, To: d}})
			if e.Start != tc.start || e.End != tc.end {
				t.Fatalf("got %v-%v, want %v-%v", e.Start, e.End, tc.start, tc.end)
			}
		})
	}
}

func TestFoldArrowEndpoints(t *testing.T) {
	data := Data{Start: vec(0, 0), End: vec(10, 0)}
	e := Fold(Arrow, data, []*Edit{
		{Kind: MoveStart, To: vec(1, 1)},
		{Kind: MoveEnd, To: vec(0, 5)},
		{Kind: Move, To: vec(2, 0)},
	})
	if e.Start != vec(3, 1) || e.End != vec(12, 5) {
		t.Fatalf("got %v-%v", e.Start, e.End)
	}
}

func TestRecordRetractReinstate(t *testing.T) {
	r := New(Rectangle, Data{Start: vec(0, 0), End: vec(10, 10)})
	first, second := move(1, 0), move(0, 1)
	r.Append(first)
	r.Append(second)
	if first.Owner() != r {
		t.Fatalf("owner not set")
	}
	if !r.Retract() || len(r.Edits()) != 1 {
		t.Fatalf("retract failed, edits=%d", len(r.Edits()))
	}
	if !r.Reinstate() || len(r.Edits()) != 2 {
		t.Fatalf("reinstate failed, edits=%d", len(r.Edits()))
	}
	if r.Reinstate() {
		t.Fatalf("reinstate past end")
	}
	r.Retract()
	third := move(5, 5)
	r.Append(third)
	if got := r.Edits(); len(got) != 2 || got[1] != third {
		t.Fatalf("append after retract kept undone edit: %v", got)
	}
	if r.Reinstate() {
		t.Fatalf("retracted edit survived append")
	}
}

func TestHandlesPriorityOrder(t *testing.T) {
	e := Fold(Rectangle, Data{Start: vec(0, 0), End: vec(20, 10)}, nil)
	want := []EditKind{ResizeTop, ResizeRightTop, ResizeRight, ResizeRightBottom, ResizeBottom, ResizeLeftBottom, ResizeLeft, ResizeLeftTop}
	hs := e.Handles()
	if len(hs) != len(want) {
		t.Fatalf("got %d handles", len(hs))
	}
	for i, h := range hs {
		if h.Kind != want[i] {
			t.Fatalf("handle %d = %s, want %s", i, h.Kind, want[i])
		}
	}
	if hs[0].At != vec(10, 0) || hs[2].At != vec(20, 5) {
		t.Fatalf("unexpected positions %v %v", hs[0].At, hs[2].At)
	}
}

func TestDataCloneCopiesPoints(t *testing.T) {
	d := Data{Points: []r2.Vec{vec(1, 1)}}
	c := d.Clone()
	c.Points[0] = vec(9, 9)
	if d.Points[0] != vec(1, 1) {
		t.Fatalf("clone shares points")
	}
}
