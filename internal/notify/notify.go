// Package notify raises desktop notifications after captures, saves and
// clipboard copies.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Event identifies a notification trigger.
type Event string

const (
	EventCapture Event = "capture"
	EventSave    Event = "save"
	EventCopy    Event = "copy"
)

// templates format each event's body around its detail.
var templates = map[Event]string{
	EventCapture: "Captured %s",
	EventSave:    "Saved %s",
	EventCopy:    "Copied %s to clipboard",
}

// message is one notification ready to send. Icon is an image file path
// or empty.
type message struct {
	Title string
	Body  string
	Icon  string
}

// sendFn delivers a message through the desktop's notification service.
var sendFn = send

// Notifier sends notifications for the enabled events.
type Notifier struct {
	title   string
	enabled map[Event]bool
	log     *slog.Logger
}

// New returns a notifier titled title with every event disabled.
func New(title string, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{title: title, enabled: map[Event]bool{}, log: log}
}

// Enable toggles notifications for event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Enabled reports whether event raises a notification.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Capture announces a capture, previewing img when given.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.Enabled(EventCapture) {
		return
	}
	icon := ""
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			n.log.Warn("notification preview", "err", err)
		} else {
			defer cleanup()
			icon = path
		}
	}
	n.dispatch(EventCapture, detail, icon)
}

// Save announces a written file, using it as the icon when it exists.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail, icon := strings.TrimSpace(path), ""
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			icon = abs
		}
	}
	n.dispatch(EventSave, detail, icon)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, "")
}

func (n *Notifier) dispatch(event Event, detail, icon string) {
	body := strings.TrimSpace(fmt.Sprintf(templates[event], strings.TrimSpace(detail)))
	if err := sendFn(message{Title: n.title, Body: body, Icon: icon}); err != nil {
		n.log.Warn("notification failed", "event", event, "err", err)
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "annotator-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
