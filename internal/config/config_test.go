package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/theme"
)

func TestParse(t *testing.T) {
	input := `
log_level = "debug"
output = "/tmp/shots/out.png"

[tools.arrow]
size = 6
color = "blue"

[tools.rect]
color = "#00ff00"

[hit]
tolerance = 2

[timing]
delete_clear_ms = 100

[theme]
name = "dark"
selection = "#FF00FF"
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
	if cfg.Output != "/tmp/shots/out.png" {
		t.Errorf("output = %q", cfg.Output)
	}
	if cfg.Hit.Tolerance != 2 || cfg.Hit.HandleRadius != 6 {
		t.Errorf("hit = %+v", cfg.Hit)
	}
	if cfg.DeleteDelay() != 100*time.Millisecond || cfg.TextDelay() != 10*time.Millisecond {
		t.Errorf("delays = %v, %v", cfg.DeleteDelay(), cfg.TextDelay())
	}
	if _, ok := cfg.Tools["rectangle"]; !ok {
		t.Errorf("rect alias not normalised: %v", cfg.Tools)
	}

	st, err := cfg.ToolStyle(shape.Arrow)
	if err != nil {
		t.Fatalf("ToolStyle: %v", err)
	}
	if st.Size != 6 || st.Color != palette.Colors[3].Color {
		t.Errorf("arrow style = %+v", st)
	}
	st, err = cfg.ToolStyle(shape.Ellipse)
	if err != nil || st != palette.Defaults(shape.Ellipse) {
		t.Errorf("ellipse style = %+v, %v", st, err)
	}

	th, err := cfg.LoadTheme(&theme.Loader{})
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}
	if th.Name != "Dark" || th.Selection.R != 0xFF || th.Selection.G != 0 {
		t.Errorf("theme = %+v", th)
	}
}

func TestParseUnknownKeys(t *testing.T) {
	cfg, err := Parse(strings.NewReader("save_dir = \"/tmp\"\n[hit]\nradius = 3\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := map[string]bool{"save_dir": true, "hit.radius": true}
	if len(cfg.Unknown) != len(want) {
		t.Fatalf("unknown = %v", cfg.Unknown)
	}
	for _, k := range cfg.Unknown {
		if !want[k] {
			t.Errorf("unexpected unknown key %q", k)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "log_level = \n"},
		{"unknown tool", "[tools.laser]\nsize = 3\n"},
		{"wrong type", "[hit]\ntolerance = \"far\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestToolStyleErrors(t *testing.T) {
	cfg := New()
	cfg.Tools["brush"] = Tool{Size: 4}
	if _, err := cfg.ToolStyle(shape.Brush); err == nil {
		t.Errorf("size outside palette accepted")
	}
	cfg.Tools["brush"] = Tool{Color: "not-a-colour"}
	if _, err := cfg.ToolStyle(shape.Brush); err == nil {
		t.Errorf("bad colour accepted")
	}
}

func TestTextToolSizeIsFontSize(t *testing.T) {
	cfg := New()
	cfg.Tools["text"] = Tool{Size: 9}
	st, err := cfg.ToolStyle(shape.Text)
	if err != nil {
		t.Fatalf("ToolStyle: %v", err)
	}
	if st.Size != 46 {
		t.Errorf("text size = %v, want 46", st.Size)
	}
}

func TestValidateResetsDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("log_level = \"\"\n[hit]\nhandle_radius = -1\n[timing]\ntext_clear_ms = -5\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.Hit.HandleRadius != 6 || cfg.Timing.TextClearMS != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestCircular(t *testing.T) {
	input := `log_level = "warn"
output = "/home/user/shots/out.png"

[tools.text]
size = 6
color = "yellow"

[hit]
tolerance = 3
handle_radius = 8

[theme]
name = "high_contrast"
handle_fill = "#000000"
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	// 4. Compare relevant fields
	if cfg.LogLevel != cfg2.LogLevel || cfg.Output != cfg2.Output {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Hit != cfg2.Hit || cfg.Timing != cfg2.Timing || cfg.Theme != cfg2.Theme {
		t.Errorf("section mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Tools["text"] != cfg2.Tools["text"] {
		t.Errorf("tool mismatch: %+v vs %+v", cfg.Tools, cfg2.Tools)
	}
	if len(cfg2.Unknown) != 0 {
		t.Errorf("generated config has unknown keys: %v", cfg2.Unknown)
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	chdir(t, work)

	l := NewLoader("dev", "")
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("found %q with no files", got)
	}
	cfg, err := l.Load()
	if err != nil || cfg.LogLevel != "info" {
		t.Fatalf("Load without files = %+v, %v", cfg, err)
	}

	user := filepath.Join(home, ".config", "annotator", FileName)
	if err := Save(New(), user); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := l.GetConfigPath(); got != user {
		t.Errorf("path = %q, want %q", got, user)
	}

	local := filepath.Join(work, ".annotator.toml")
	if err := os.WriteFile(local, []byte("log_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := l.GetConfigPath(); got != local {
		t.Errorf("dev path = %q, want %q", got, local)
	}
	if got := NewLoader("v1.0.0", "").GetConfigPath(); got != user {
		t.Errorf("release build used %q", got)
	}

	override := filepath.Join(work, "custom.toml")
	if err := os.WriteFile(override, []byte("log_level = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = NewLoader("dev", override).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("override not used: %q", cfg.LogLevel)
	}
}

func TestSavePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	override := filepath.Join(t.TempDir(), "new.toml")
	got, err := NewLoader("v1", override).SavePath()
	if err != nil || got != override {
		t.Errorf("SavePath = %q, %v", got, err)
	}
	got, err = NewLoader("v1", "").SavePath()
	want := filepath.Join(home, ".config", "annotator", FileName)
	if err != nil || got != want {
		t.Errorf("SavePath = %q, %v; want %q", got, err, want)
	}
}

func TestDropShadow(t *testing.T) {
	cfg := New()
	if _, ok, err := cfg.DropShadow(); ok || err != nil {
		t.Fatalf("shadow on by default: ok=%v err=%v", ok, err)
	}
	cfg, err := Parse(strings.NewReader("[shadow]\nenabled = true\nradius = 8\noffset_x = -2\ncolor = \"Blue\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, ok, err := cfg.DropShadow()
	if err != nil || !ok {
		t.Fatalf("DropShadow: ok=%v err=%v", ok, err)
	}
	if s.Radius != 8 || s.Offset.X != -2 || s.Offset.Y != 16 || s.Opacity != 0.55 {
		t.Fatalf("shadow %+v", s)
	}
	if s.Color != palette.Colors[3].Color {
		t.Fatalf("colour %v", s.Color)
	}
	cfg.Shadow.Color = "nope"
	if _, _, err := cfg.DropShadow(); err == nil {
		t.Fatal("expected colour error")
	}
}

func TestNotifyDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[notify]\nsave = true\ntitle = \"\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy || cfg.Notify.Title != "Annotator" {
		t.Fatalf("notify %+v", cfg.Notify)
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
