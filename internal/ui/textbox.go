package ui

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/mobile/event/key"

	"github.com/example/annotator/internal/gesture"
	"github.com/example/annotator/internal/render"
)

// textBox is the inline text entry shown over the canvas while a text
// shape is being typed. It implements gesture.Overlay.
type textBox struct {
	open  bool
	state gesture.OverlayState
	text  string

	// onChange and onBlur report back to the session.
	onChange func(string)
	onBlur   func()
}

func (t *textBox) Open(st gesture.OverlayState) {
	t.open = true
	t.state = st
	t.text = st.Text
}

func (t *textBox) Close() {
	t.open = false
	t.text = ""
}

// Active reports whether keys should go to the box.
func (t *textBox) Active() bool {
	return t.open
}

// Text returns the current contents.
func (t *textBox) Text() string {
	return t.text
}

// HandleKey edits the text and reports whether the key was consumed.
// Escape ends editing the same way a click elsewhere does.
func (t *textBox) HandleKey(e key.Event) bool {
	if !t.open {
		return false
	}
	if e.Direction == key.DirRelease {
		return true
	}
	switch e.Code {
	case key.CodeEscape:
		if t.onBlur != nil {
			t.onBlur()
		}
		return true
	case key.CodeDeleteBackspace:
		t.set(trimLastGrapheme(t.text))
		return true
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		t.insert("\n")
		return true
	}
	if e.Modifiers&key.ModControl != 0 {
		return true
	}
	if e.Rune > 0 && e.Rune != '\t' {
		t.insert(string(e.Rune))
	}
	return true
}

func (t *textBox) insert(s string) {
	candidate := t.text + s
	if !t.fits(candidate) {
		return
	}
	t.set(candidate)
}

func (t *textBox) set(s string) {
	if s == t.text {
		return
	}
	t.text = s
	if t.onChange != nil {
		t.onChange(s)
	}
}

// fits keeps the box inside the region left of and below its anchor.
func (t *textBox) fits(s string) bool {
	size := t.state.Size
	if size <= 0 {
		return true
	}
	lines := strings.Split(s, "\n")
	if t.state.MaxHeight > 0 && float64(len(lines))*size > t.state.MaxHeight {
		return false
	}
	if t.state.MaxWidth <= 0 {
		return true
	}
	for _, line := range lines {
		if w, _ := render.MeasureText(line, size); w > t.state.MaxWidth {
			return false
		}
	}
	return true
}

// trimLastGrapheme removes the final user-perceived character.
func trimLastGrapheme(s string) string {
	if s == "" {
		return s
	}
	last := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, _ := g.Positions()
		last = from
	}
	return s[:last]
}
