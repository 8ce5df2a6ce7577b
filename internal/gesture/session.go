// Package gesture turns pointer and keyboard input into history records.
//
// A Session owns one Controller per shape kind. At most one controller is
// active; it receives pointer input, style changes and delete requests.
// Pointer-down first offers the event to the existing shapes, most
// recently created first; a hit selects that shape and activates its tool.
package gesture

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/history"
	"github.com/example/annotator/internal/hittest"
	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/shape"
)

const (
	// DefaultDeleteClearDelay lets the deleted shape render once more
	// before the selection is dropped.
	DefaultDeleteClearDelay = 50 * time.Millisecond
	// DefaultTextClearDelay runs after the overlay has closed.
	DefaultTextClearDelay = 10 * time.Millisecond
)

// Session routes input to the active tool.
type Session struct {
	stack   *history.Stack
	tester  hittest.Tester
	sched   Scheduler
	overlay Overlay
	log     *slog.Logger

	bounds    image.Rectangle
	hasBounds bool

	tools   []*Controller
	active  *Controller
	deletes Signal

	deleteDelay time.Duration
	textDelay   time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithScheduler sets how deferred selection clears are run.
func WithScheduler(sc Scheduler) Option {
	return func(s *Session) {
		if sc != nil {
			s.sched = sc
		}
	}
}

// WithOverlay sets the text entry widget.
func WithOverlay(o Overlay) Option {
	return func(s *Session) {
		if o != nil {
			s.overlay = o
		}
	}
}

// WithTester sets the hit tester.
func WithTester(t hittest.Tester) Option {
	return func(s *Session) {
		s.tester = t
	}
}

// WithDelays overrides the selection clear delays after a delete and
// after the text overlay closes.
func WithDelays(afterDelete, afterText time.Duration) Option {
	return func(s *Session) {
		s.deleteDelay = afterDelete
		s.textDelay = afterText
	}
}

// WithDefaults sets the starting style of a tool. Zero fields keep the
// palette default.
func WithDefaults(kind shape.Kind, st shape.Style) Option {
	return func(s *Session) {
		if c := s.Controller(kind); c != nil {
			c.defaults = merge(c.defaults, st)
		}
	}
}

// New returns a session writing to stack.
func New(stack *history.Stack, opts ...Option) *Session {
	s := &Session{
		stack:       stack,
		sched:       &ManualScheduler{},
		overlay:     nopOverlay{},
		log:         slog.Default(),
		deleteDelay: DefaultDeleteClearDelay,
		textDelay:   DefaultTextClearDelay,
	}
	for _, kind := range shape.Kinds {
		s.tools = append(s.tools, newController(s, kind))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stack returns the history the session writes to.
func (s *Session) Stack() *history.Stack {
	return s.stack
}

// Tester returns the hit tester.
func (s *Session) Tester() hittest.Tester {
	return s.tester
}

// Controller returns the tool for kind.
func (s *Session) Controller(kind shape.Kind) *Controller {
	for _, c := range s.tools {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// Active returns the active tool, or nil.
func (s *Session) Active() *Controller {
	return s.active
}

// SetBounds places the annotated region in viewport coordinates. Pointer
// input is ignored until bounds are set.
func (s *Session) SetBounds(r image.Rectangle) {
	s.bounds = r
	s.hasBounds = !r.Empty()
}

// Bounds returns the annotated region in viewport coordinates.
func (s *Session) Bounds() image.Rectangle {
	return s.bounds
}

func (s *Session) local(p r2.Vec) r2.Vec {
	return r2.Vec{X: p.X - float64(s.bounds.Min.X), Y: p.Y - float64(s.bounds.Min.Y)}
}

// SelectTool makes kind the active tool and clears the selection.
// Selecting the active tool again does nothing.
func (s *Session) SelectTool(kind shape.Kind) {
	c := s.Controller(kind)
	if c == nil || c == s.active {
		return
	}
	s.cancelTimers()
	s.activate(c)
	s.stack.ClearSelect()
}

// Deactivate leaves no tool active.
func (s *Session) Deactivate() {
	if s.active == nil {
		return
	}
	s.cancelTimers()
	s.active.deactivate()
	s.active = nil
	s.stack.ClearSelect()
}

func (s *Session) activate(c *Controller) {
	if s.active == c {
		return
	}
	if s.active != nil {
		s.active.deactivate()
	}
	s.active = c
	c.activate()
	s.log.Debug("tool active", "kind", c.kind)
}

func (s *Session) cancelTimers() {
	for _, c := range s.tools {
		c.cancelTimer()
	}
}

// PointerDown handles a primary button press at viewport position p.
func (s *Session) PointerDown(p r2.Vec) {
	if !s.hasBounds {
		return
	}
	s.cancelTimers()
	if s.active != nil && s.active.state == EditingText {
		s.active.blur()
		return
	}
	local := s.local(p)
	if rec := s.tester.Pick(s.stack.Records(), local); rec != nil {
		for _, c := range s.tools {
			c.drawSelect(rec, local)
		}
		return
	}
	if s.active != nil {
		s.active.pointerDown(local)
	}
}

// PointerMove handles pointer motion while the button is held.
func (s *Session) PointerMove(p r2.Vec) {
	if !s.hasBounds || s.active == nil {
		return
	}
	s.active.pointerMove(s.local(p))
}

// PointerUp ends the current gesture.
func (s *Session) PointerUp(p r2.Vec) {
	if !s.hasBounds || s.active == nil {
		return
	}
	s.active.pointerUp()
}

// DoubleClick opens a text shape under p for editing.
func (s *Session) DoubleClick(p r2.Vec) {
	if !s.hasBounds {
		return
	}
	if s.active != nil && s.active.state == EditingText {
		return
	}
	local := s.local(p)
	rec := s.tester.Pick(s.stack.Records(), local)
	if rec == nil || rec.Kind != shape.Text {
		return
	}
	s.cancelTimers()
	s.Controller(shape.Text).openEdit(rec, local)
}

// OverlayChange reports the overlay's current text.
func (s *Session) OverlayChange(text string) {
	if s.active == nil || s.active.state != EditingText {
		return
	}
	s.active.textChange(text)
}

// OverlayBlur reports that the overlay lost focus.
func (s *Session) OverlayBlur() {
	if s.active == nil || s.active.state != EditingText {
		return
	}
	s.active.blur()
}

// SetColor changes the colour of the selected shape or, with nothing
// selected, of the active tool's next shape.
func (s *Session) SetColor(col color.RGBA) {
	if s.active == nil || col.A == 0 {
		return
	}
	s.active.setStyle(shape.Style{Color: col})
}

// SetSize applies a palette tier value (3, 6 or 9) like SetColor. Text
// tools map the tier to a font size.
func (s *Session) SetSize(tier float64) {
	if s.active == nil {
		return
	}
	size, ok := palette.SizeFor(s.active.kind, tier)
	if !ok {
		s.log.Debug("ignoring size outside palette", "size", tier)
		return
	}
	s.active.setStyle(shape.Style{Size: size})
}

// Style returns the style the active tool's picker should show.
func (s *Session) Style() (shape.Style, bool) {
	if s.active == nil {
		return shape.Style{}, false
	}
	return s.active.Style(), true
}

// Delete soft-deletes the selected shape of the active tool.
func (s *Session) Delete() {
	s.deletes.Publish()
}

// Undo abandons any gesture in progress and steps history back. Text
// typed into an open overlay is discarded, not committed; SelectTool and
// Deactivate commit it instead.
func (s *Session) Undo() bool {
	s.interrupt()
	return s.stack.Undo()
}

// Redo abandons any gesture in progress, discarding overlay text like
// Undo, and steps history forward.
func (s *Session) Redo() bool {
	s.interrupt()
	return s.stack.Redo()
}

func (s *Session) interrupt() {
	s.cancelTimers()
	if s.active != nil {
		s.active.interrupt()
	}
}

// Close cancels pending callbacks and detaches the active tool.
func (s *Session) Close() {
	s.cancelTimers()
	if s.active != nil {
		s.active.interrupt()
		s.active.deactivate()
		s.active = nil
	}
}
