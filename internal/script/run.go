package script

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/gesture"
	"github.com/example/annotator/internal/history"
	"github.com/example/annotator/internal/render"
)

// overlay records what a window would show in its text box.
type overlay struct {
	open  bool
	state gesture.OverlayState
}

func (o *overlay) Open(s gesture.OverlayState) {
	o.open = true
	o.state = s
}

func (o *overlay) Close() {
	o.open = false
}

// Runner feeds commands to a session over an image of the given size.
type Runner struct {
	session *gesture.Session
	clock   *gesture.ManualScheduler
	overlay *overlay
	log     *slog.Logger
}

// NewRunner returns a runner whose session writes to stack. Surface
// coordinates equal viewport coordinates. opts are applied before the
// runner installs its own clock and overlay.
func NewRunner(stack *history.Stack, size image.Point, log *slog.Logger, opts ...gesture.Option) *Runner {
	if log == nil {
		log = slog.Default()
	}
	r := &Runner{
		clock:   &gesture.ManualScheduler{},
		overlay: &overlay{},
		log:     log,
	}
	opts = append(opts,
		gesture.WithLogger(log),
		gesture.WithScheduler(r.clock),
		gesture.WithOverlay(r.overlay),
	)
	r.session = gesture.New(stack, opts...)
	r.session.SetBounds(image.Rectangle{Max: size})
	return r
}

// Session returns the session commands are fed to.
func (r *Runner) Session() *gesture.Session {
	return r.session
}

// OverlayText returns the text box contents and whether it is open.
func (r *Runner) OverlayText() (string, bool) {
	return r.overlay.state.Text, r.overlay.open
}

// Run executes cmds in order. An open text box is committed and pending
// callbacks are flushed once every command has run.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(cmd); err != nil {
			return fmt.Errorf("line %d: %w", cmd.Line, err)
		}
	}
	r.session.OverlayBlur()
	r.clock.Flush()
	return nil
}

// Exec executes one command.
func (r *Runner) Exec(cmd Command) error {
	s := r.session
	r.log.Debug("script", "line", cmd.Line, "verb", cmd.Verb)
	switch cmd.Verb {
	case Tool:
		s.SelectTool(cmd.Kind)
	case Deselect:
		s.Deactivate()
	case Down:
		s.PointerDown(cmd.Points[0])
	case Move:
		s.PointerMove(cmd.Points[0])
	case Up:
		s.PointerUp(cmd.Points[0])
	case Click:
		s.PointerDown(cmd.Points[0])
		s.PointerUp(cmd.Points[0])
	case DoubleClick:
		s.DoubleClick(cmd.Points[0])
	case Drag:
		r.drag(cmd.Points[0], cmd.Points[1], cmd.Steps)
	case Type:
		if !r.overlay.open {
			return fmt.Errorf("type: no text box is open")
		}
		r.overlay.state.Text = cmd.Text
		s.OverlayChange(cmd.Text)
	case Blur:
		s.OverlayBlur()
	case Color:
		s.SetColor(cmd.Color)
	case Size:
		s.SetSize(cmd.Size)
	case Delete:
		s.Delete()
	case Undo:
		s.Undo()
	case Redo:
		s.Redo()
	case Wait:
		r.clock.Advance(cmd.Wait)
	default:
		return fmt.Errorf("unhandled command %q", cmd.Verb)
	}
	return nil
}

func (r *Runner) drag(from, to r2.Vec, steps int) {
	if steps < 1 {
		steps = 1
	}
	r.session.PointerDown(from)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.session.PointerMove(r2.Add(from, r2.Scale(t, r2.Sub(to, from))))
	}
	r.session.PointerUp(to)
}

// Render draws the session's records over base without selection
// decorations.
func (r *Runner) Render(base image.Image) *image.RGBA {
	return render.Compose(base, r.session.Stack().Records())
}
