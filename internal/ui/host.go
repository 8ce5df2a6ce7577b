// Package ui hosts an annotation session in a shiny window.
package ui

import (
	"image"
	"log/slog"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/annotator/internal/gesture"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/theme"
)

// Host shows Image in a window and lets the user annotate it.
type Host struct {
	Image       *image.RGBA
	Title       string
	Theme       *theme.Theme
	Logger      *slog.Logger
	InitialTool shape.Kind

	// Tolerance and HandleRadius tune hit testing; zero keeps the defaults.
	Tolerance    float64
	HandleRadius float64

	// SessionOptions are passed to gesture.New after the host's own.
	SessionOptions []gesture.Option

	// Save and Copy receive the composed image for ctrl+s and ctrl+c.
	Save func(*image.RGBA) error
	Copy func(*image.RGBA) error
}

// postEvent runs a deferred session callback on the event goroutine.
type postEvent struct {
	f func()
}

// Run executes the UI loop using shiny's driver.
func (h *Host) Run() { driver.Main(h.Main) }

func (h *Host) Main(s screen.Screen) {
	log := h.Logger
	if log == nil {
		log = slog.Default()
	}
	img := h.Image.Bounds().Size()
	width := max(img.X, minWindowWidth())
	height := img.Y + toolbarHeight + statusHeight
	title := h.Title
	if title == "" {
		title = "annotator"
	}
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: title})
	if err != nil {
		log.Error("new window", "err", err)
		return
	}
	defer w.Release()

	ed := newEditor(h, gesture.PostScheduler{Post: func(f func()) { w.Send(postEvent{f}) }})
	defer ed.close()
	ed.resize(image.Pt(width, height))
	winSize := image.Pt(width, height)

	for {
		switch e := w.NextEvent().(type) {
		case postEvent:
			e.f()
			if ed.takeDirty() {
				w.Send(paint.Event{})
			}
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			winSize = e.Size()
			ed.resize(winSize)
			w.Send(paint.Event{})
		case paint.Event:
			drawFrame(s, w, ed, winSize, log)
		case mouse.Event:
			if ed.mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			repaint, quit := ed.key(e)
			if quit {
				return
			}
			if repaint || ed.takeDirty() {
				w.Send(paint.Event{})
			}
		case error:
			log.Error("window event", "err", e)
		}
	}
}

func drawFrame(s screen.Screen, w screen.Window, ed *editor, sz image.Point, log *slog.Logger) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(sz)
	if err != nil {
		log.Error("new buffer", "err", err)
		return
	}
	defer b.Release()
	ed.paint(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func minWindowWidth() int {
	l := newLayout(image.Point{}, image.Point{})
	return l.toolbar[len(l.toolbar)-1].rect.Max.X
}
