package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/annotator/internal/logging"
)

func captureSends(t *testing.T, err error) *[]message {
	t.Helper()
	var sent []message
	original := sendFn
	sendFn = func(m message) error {
		if m.Icon != "" {
			if _, statErr := os.Stat(m.Icon); statErr != nil {
				t.Errorf("icon %s missing while sending: %v", m.Icon, statErr)
			}
		}
		sent = append(sent, m)
		return err
	}
	t.Cleanup(func() { sendFn = original })
	return &sent
}

func TestDisabledEventsAreSilent(t *testing.T) {
	sent := captureSends(t, nil)
	n := New("Annotator", logging.Discard())
	n.Capture("screen", nil)
	n.Save("out.png")
	n.Copy("")
	if len(*sent) != 0 {
		t.Fatalf("sent %v", *sent)
	}
	var nilNotifier *Notifier
	nilNotifier.Enable(EventCopy, true)
	nilNotifier.Copy("x")
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	sent := captureSends(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New("Annotator", logging.Discard())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*sent) != 1 {
		t.Fatalf("sent %d", len(*sent))
	}
	m := (*sent)[0]
	if m.Title != "Annotator" || m.Body != "Saved "+path || m.Icon != path {
		t.Fatalf("message %+v", m)
	}
}

func TestCapturePreviewIsRemoved(t *testing.T) {
	sent := captureSends(t, nil)
	n := New("Annotator", logging.Discard())
	n.Enable(EventCapture, true)
	n.Capture("screen", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*sent) != 1 || (*sent)[0].Icon == "" {
		t.Fatalf("sent %+v", *sent)
	}
	if _, err := os.Stat((*sent)[0].Icon); !os.IsNotExist(err) {
		t.Fatalf("preview left behind: %v", err)
	}
}

func TestCopyDefaultsDetailAndSwallowsErrors(t *testing.T) {
	sent := captureSends(t, errors.New("no bus"))
	n := New("Annotator", logging.Discard())
	n.Enable(EventCopy, true)
	n.Copy("  ")
	if len(*sent) != 1 || !strings.Contains((*sent)[0].Body, "Copied image") {
		t.Fatalf("sent %+v", *sent)
	}
}
