package gesture

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/history"
	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/shape"
)

// State is the phase of a tool's gesture.
type State int

const (
	Idle State = iota
	Creating
	Moving
	Resizing
	EditingText
)

var stateNames = [...]string{"idle", "creating", "moving", "resizing", "editing-text"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// behavior is the kind specific part of a controller.
type behavior struct {
	seed    func(p r2.Vec, st shape.Style) shape.Data
	extend  func(d *shape.Data, p r2.Vec)
	handles bool
}

var behaviors = [...]behavior{
	shape.Arrow:     {seed: seedSegment, extend: extendSegment, handles: true},
	shape.Rectangle: {seed: seedSegment, extend: extendSegment, handles: true},
	shape.Ellipse:   {seed: seedSegment, extend: extendSegment, handles: true},
	shape.Brush:     {seed: seedStroke, extend: extendStroke},
	shape.Text:      {seed: seedText},
}

func seedSegment(p r2.Vec, st shape.Style) shape.Data {
	return shape.Data{Style: st, Start: p, End: p}
}

func extendSegment(d *shape.Data, p r2.Vec) {
	d.End = p
}

func seedStroke(p r2.Vec, st shape.Style) shape.Data {
	return shape.Data{Style: st, Points: []r2.Vec{p}}
}

func extendStroke(d *shape.Data, p r2.Vec) {
	d.Points = append(d.Points, p)
}

func seedText(p r2.Vec, st shape.Style) shape.Data {
	return shape.Data{Style: st, Start: p, Font: palette.TextFont}
}

// Controller is the gesture state machine of one shape tool.
type Controller struct {
	kind     shape.Kind
	s        *Session
	behavior behavior
	state    State
	defaults shape.Style

	// pending is a record being created; edit is an edit being dragged
	// or typed into, owned by target.
	pending   *shape.Record
	edit      *shape.Edit
	target    *shape.Record
	committed bool

	unsubscribe func()
	cancelClear func()
}

func newController(s *Session, kind shape.Kind) *Controller {
	return &Controller{
		kind:     kind,
		s:        s,
		behavior: behaviors[kind],
		defaults: palette.Defaults(kind),
	}
}

// Kind returns the shape kind the controller creates.
func (c *Controller) Kind() shape.Kind {
	return c.kind
}

// State returns the current gesture phase.
func (c *Controller) State() State {
	return c.state
}

// Defaults returns the style used for the next created shape.
func (c *Controller) Defaults() shape.Style {
	return c.defaults
}

// Style returns the style a picker should show: the selected shape's
// effective style, or the tool defaults.
func (c *Controller) Style() shape.Style {
	if rec := c.selected(); rec != nil {
		return shape.Reduce(rec).Style
	}
	return c.defaults
}

// selected returns the live selected record of this kind.
func (c *Controller) selected() *shape.Record {
	rec := c.s.stack.Selected()
	if rec == nil || rec.Kind != c.kind {
		return nil
	}
	if shape.Reduce(rec).Deleted {
		return nil
	}
	return rec
}

func (c *Controller) reset() {
	c.pending = nil
	c.edit = nil
	c.target = nil
	c.committed = false
	c.state = Idle
}

func (c *Controller) schedule(d time.Duration, fn func()) {
	c.cancelTimer()
	c.cancelClear = c.s.sched.AfterFunc(d, fn)
}

func (c *Controller) cancelTimer() {
	if c.cancelClear != nil {
		c.cancelClear()
		c.cancelClear = nil
	}
}

func (c *Controller) activate() {
	if c.unsubscribe == nil {
		c.unsubscribe = c.s.deletes.Subscribe(c.onDelete)
	}
}

func (c *Controller) deactivate() {
	if c.state == EditingText {
		c.blur()
	}
	c.reset()
	c.cancelTimer()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// interrupt drops the gesture in progress without committing anything.
func (c *Controller) interrupt() {
	if c.state == EditingText {
		if c.target != nil {
			c.target.Data.Hidden = false
		}
		c.s.overlay.Close()
	}
	c.reset()
}

func (c *Controller) pointerDown(p r2.Vec) {
	c.reset()
	if c.kind == shape.Text {
		if c.selected() != nil {
			c.s.stack.ClearSelect()
			return
		}
		c.beginText(p)
		return
	}
	c.pending = shape.New(c.kind, c.behavior.seed(p, c.defaults))
	c.state = Creating
	c.s.log.Debug("gesture create", "kind", c.kind, "x", p.X, "y", p.Y)
}

// drawSelect starts editing rec if it belongs to this tool.
func (c *Controller) drawSelect(rec *shape.Record, p r2.Vec) {
	if rec.Kind != c.kind {
		return
	}
	c.s.activate(c)
	c.reset()
	c.s.stack.Select(rec)
	eff := shape.Reduce(rec)
	handle := shape.Move
	if c.behavior.handles {
		handle = c.s.tester.HitHandle(eff, p)
	}
	c.edit = &shape.Edit{Kind: handle, From: p, To: p, Del: eff.Deleted}
	if c.kind == shape.Text {
		c.edit.Text = eff.Text
	}
	c.target = rec
	c.state = Moving
	if handle != shape.Move {
		c.state = Resizing
	}
	c.s.log.Debug("gesture select", "kind", c.kind, "handle", handle)
}

func (c *Controller) pointerMove(p r2.Vec) {
	switch c.state {
	case Moving, Resizing:
		c.edit.To = p
		if !c.committed {
			c.target.Append(c.edit)
			c.s.stack.Push(history.Modification(c.edit))
			c.committed = true
			return
		}
		c.s.stack.Refresh()
	case Creating:
		c.behavior.extend(&c.pending.Data, p)
		if !c.committed {
			c.s.stack.Push(history.Creation(c.pending))
			c.committed = true
			return
		}
		c.s.stack.Refresh()
	}
}

func (c *Controller) pointerUp() {
	if c.state == EditingText {
		return
	}
	created := c.pending != nil
	c.reset()
	if created {
		c.s.stack.ClearSelect()
	}
}

// setStyle applies the non-zero fields of change to the selected shape,
// or to the tool defaults when nothing of this kind is selected.
func (c *Controller) setStyle(change shape.Style) {
	if c.state == EditingText {
		c.restyleText(change)
		return
	}
	rec := c.selected()
	if rec == nil {
		c.defaults = merge(c.defaults, change)
		return
	}
	eff := shape.Reduce(rec)
	edit := &shape.Edit{Kind: shape.Move, Text: eff.Text, Del: eff.Deleted}
	changed := false
	if change.Size != 0 && change.Size != eff.Size {
		edit.Size = change.Size
		changed = true
	}
	if change.Color.A != 0 && change.Color != eff.Color {
		edit.Color = change.Color
		changed = true
	}
	if !changed {
		return
	}
	rec.Append(edit)
	c.s.stack.Push(history.Modification(edit))
	c.s.log.Debug("gesture restyle", "kind", c.kind, "size", edit.Size, "color", palette.Hex(edit.Color))
}

func merge(st, change shape.Style) shape.Style {
	if change.Size != 0 {
		st.Size = change.Size
	}
	if change.Color.A != 0 {
		st.Color = change.Color
	}
	return st
}

// onDelete soft-deletes the selected shape. A drag in progress on it ends
// first so its edit cannot land after the delete.
func (c *Controller) onDelete() {
	switch c.state {
	case EditingText:
		return
	case Moving, Resizing:
		c.reset()
	}
	rec := c.selected()
	if rec == nil {
		return
	}
	edit := &shape.Edit{Kind: shape.Move, Text: shape.Reduce(rec).Text, Del: true}
	rec.Append(edit)
	c.s.stack.Push(history.Modification(edit))
	c.schedule(c.s.deleteDelay, c.s.stack.ClearSelect)
	c.s.log.Debug("gesture delete", "kind", c.kind)
}
