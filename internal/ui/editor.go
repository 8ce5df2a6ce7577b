package ui

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/gesture"
	"github.com/example/annotator/internal/history"
	"github.com/example/annotator/internal/hittest"
	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/render"
)

const (
	doubleClickTime     = 400 * time.Millisecond
	doubleClickDistance = 4
)

// clickTracker detects double clicks from a stream of presses.
type clickTracker struct {
	last time.Time
	at   image.Point
}

func (c *clickTracker) press(at image.Point, now time.Time) bool {
	d := at.Sub(c.at)
	double := !c.last.IsZero() && now.Sub(c.last) <= doubleClickTime &&
		abs(d.X) <= doubleClickDistance && abs(d.Y) <= doubleClickDistance
	if double {
		c.last = time.Time{}
		return true
	}
	c.last, c.at = now, at
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// editor is the window-independent part of the host: it routes
// translated input to the session and paints frames.
type editor struct {
	log     *slog.Logger
	stack   *history.Stack
	session *gesture.Session
	box     *textBox
	painter *painter
	layout  layout
	clicks  clickTracker
	now     func() time.Time

	pressed bool
	dirty   bool
	status  string

	save func(*image.RGBA) error
	copy func(*image.RGBA) error
}

func newEditor(h *Host, sched gesture.Scheduler) *editor {
	e := &editor{
		log:   h.Logger,
		stack: history.New(history.WithLogger(h.Logger)),
		box:   &textBox{},
		now:   time.Now,
		save:  h.Save,
		copy:  h.Copy,
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.painter = newPainter(h.Theme, h.Image, h.HandleRadius)
	opts := []gesture.Option{
		gesture.WithLogger(e.log),
		gesture.WithScheduler(sched),
		gesture.WithOverlay(e.box),
		gesture.WithTester(hittest.Tester{
			Measurer:     render.FontMeasurer{},
			Tolerance:    h.Tolerance,
			HandleRadius: h.HandleRadius,
		}),
	}
	e.session = gesture.New(e.stack, append(opts, h.SessionOptions...)...)
	e.box.onChange = e.session.OverlayChange
	e.box.onBlur = e.session.OverlayBlur
	e.stack.OnChange(func(*history.Stack) { e.dirty = true })
	e.session.SelectTool(h.InitialTool)
	return e
}

func (e *editor) resize(win image.Point) {
	e.layout = newLayout(win, e.painter.base.Bounds().Size())
	e.session.SetBounds(e.layout.canvas)
	e.dirty = true
}

func vec(x, y float32) r2.Vec {
	return r2.Vec{X: float64(x), Y: float64(y)}
}

// mouse handles a pointer event and reports whether a repaint is needed.
func (e *editor) mouse(ev mouse.Event) bool {
	p := vec(ev.X, ev.Y)
	at := image.Pt(int(ev.X), int(ev.Y))
	switch ev.Direction {
	case mouse.DirPress:
		if ev.Button != mouse.ButtonLeft {
			return false
		}
		if it, ok := e.layout.itemAt(at); ok {
			e.activateItem(it)
			return true
		}
		e.pressed = true
		e.session.PointerDown(p)
		if e.clicks.press(at, e.now()) {
			e.session.DoubleClick(p)
		}
		return true
	case mouse.DirRelease:
		if ev.Button != mouse.ButtonLeft || !e.pressed {
			return false
		}
		e.pressed = false
		e.session.PointerUp(p)
		return true
	case mouse.DirNone:
		if !e.pressed {
			return false
		}
		e.session.PointerMove(p)
		return e.takeDirty()
	}
	return false
}

func (e *editor) activateItem(it toolbarItem) {
	switch it.kind {
	case itemTool:
		e.session.SelectTool(it.tool)
	case itemColor:
		e.session.SetColor(palette.Colors[it.index].Color)
	case itemSize:
		e.session.SetSize(palette.Tiers[it.index].Value)
	}
}

// key handles a key event. It reports whether a repaint is needed and
// whether the window should close.
func (e *editor) key(ev key.Event) (repaint, quit bool) {
	if e.box.Active() {
		return e.box.HandleKey(ev), false
	}
	a := Translate(ev)
	if a == ActionNone {
		return false, false
	}
	e.status = ""
	if kind, ok := toolActions[a]; ok {
		e.session.SelectTool(kind)
		return true, false
	}
	if i, ok := colorIndex(a); ok {
		e.session.SetColor(palette.Colors[i].Color)
		return true, false
	}
	switch a {
	case ActionSmaller:
		e.stepSize(-1)
	case ActionLarger:
		e.stepSize(1)
	case ActionDelete:
		e.session.Delete()
	case ActionUndo:
		e.session.Undo()
	case ActionRedo:
		e.session.Redo()
	case ActionDeselect:
		e.stack.ClearSelect()
	case ActionSave:
		e.export("saved", e.save)
	case ActionCopy:
		e.export("copied to clipboard", e.copy)
	case ActionQuit:
		return false, true
	}
	return true, false
}

func (e *editor) stepSize(dir int) {
	st, ok := e.session.Style()
	if !ok {
		return
	}
	i := tierIndex(e.session.Active().Kind(), st.Size) + dir
	if i < 0 {
		i = 0
	}
	if i >= len(palette.Tiers) {
		i = len(palette.Tiers) - 1
	}
	e.session.SetSize(palette.Tiers[i].Value)
}

func (e *editor) export(done string, fn func(*image.RGBA) error) {
	if fn == nil {
		e.status = "not available"
		return
	}
	if err := fn(e.Compose()); err != nil {
		e.log.Error("export failed", "err", err)
		e.status = fmt.Sprintf("error: %v", err)
		return
	}
	e.status = done
}

// Compose returns the base image with the current annotations.
func (e *editor) Compose() *image.RGBA {
	return render.Compose(e.painter.base, e.stack.Records())
}

func (e *editor) takeDirty() bool {
	d := e.dirty
	e.dirty = false
	return d
}

func (e *editor) frame() frameState {
	st := frameState{records: e.stack.Records(), box: e.box, status: e.status}
	if c := e.session.Active(); c != nil {
		st.tool = c.Kind()
		st.hasTool = true
		st.style, _ = e.session.Style()
	}
	return st
}

func (e *editor) paint(dst *image.RGBA) {
	e.dirty = false
	e.painter.paint(dst, e.layout, e.frame())
}

func (e *editor) close() {
	e.session.Close()
}

var _ gesture.Overlay = (*textBox)(nil)
