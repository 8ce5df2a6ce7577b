package config

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/theme"
)

// Tool holds the starting style of one shape tool. Size is a palette tier
// value (3, 6 or 9); Color is a preset name, colour name or hex value.
type Tool struct {
	Size  float64 `toml:"size,omitempty"`
	Color string  `toml:"color,omitempty"`
}

// Hit holds hit testing distances in surface pixels.
type Hit struct {
	Tolerance    float64 `toml:"tolerance"`
	HandleRadius float64 `toml:"handle_radius"`
}

// Timing holds the deferred selection clear delays.
type Timing struct {
	DeleteClearMS int `toml:"delete_clear_ms"`
	TextClearMS   int `toml:"text_clear_ms"`
}

// Theme names a base theme and overrides some of its colours.
type Theme struct {
	Name         string `toml:"name,omitempty"`
	Background   string `toml:"background,omitempty"`
	Selection    string `toml:"selection,omitempty"`
	HandleFill   string `toml:"handle_fill,omitempty"`
	HandleStroke string `toml:"handle_stroke,omitempty"`
}

// Notify selects which events raise a desktop notification.
type Notify struct {
	Title   string `toml:"title,omitempty"`
	Capture bool   `toml:"capture"`
	Save    bool   `toml:"save"`
	Copy    bool   `toml:"copy"`
}

// Shadow configures the drop shadow added to exported images.
type Shadow struct {
	Enabled bool    `toml:"enabled"`
	Radius  int     `toml:"radius"`
	OffsetX int     `toml:"offset_x"`
	OffsetY int     `toml:"offset_y"`
	Opacity float64 `toml:"opacity"`
	Color   string  `toml:"color,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	LogLevel string          `toml:"log_level"`
	Output   string          `toml:"output,omitempty"` // Default save path for annotate
	Tools    map[string]Tool `toml:"tools,omitempty"`
	Hit      Hit             `toml:"hit"`
	Timing   Timing          `toml:"timing"`
	Theme    Theme           `toml:"theme"`
	Notify   Notify          `toml:"notify"`
	Shadow   Shadow          `toml:"shadow"`

	// Unknown lists keys present in the parsed file that no field took.
	Unknown []string `toml:"-"`
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Tools:    map[string]Tool{},
		Hit: Hit{
			Tolerance:    4,
			HandleRadius: 6,
		},
		Timing: Timing{
			DeleteClearMS: 50,
			TextClearMS:   10,
		},
		Notify: Notify{Title: "Annotator"},
		Shadow: Shadow{Radius: 24, OffsetX: 16, OffsetY: 16, Opacity: 0.55},
	}
}

// validate resets out of range values to their defaults.
func (c *Config) validate() {
	def := New()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Tools == nil {
		c.Tools = map[string]Tool{}
	}
	if c.Hit.Tolerance < 0 {
		c.Hit.Tolerance = def.Hit.Tolerance
	}
	if c.Hit.HandleRadius <= 0 {
		c.Hit.HandleRadius = def.Hit.HandleRadius
	}
	if c.Timing.DeleteClearMS < 0 {
		c.Timing.DeleteClearMS = def.Timing.DeleteClearMS
	}
	if c.Timing.TextClearMS < 0 {
		c.Timing.TextClearMS = def.Timing.TextClearMS
	}
	if c.Notify.Title == "" {
		c.Notify.Title = def.Notify.Title
	}
	if c.Shadow.Radius < 0 {
		c.Shadow.Radius = def.Shadow.Radius
	}
	if c.Shadow.Opacity < 0 || c.Shadow.Opacity > 1 {
		c.Shadow.Opacity = def.Shadow.Opacity
	}
}

// String implements fmt.Stringer and returns the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("# encode failed: %v\n", err)
	}
	return sb.String()
}

// ToolStyle returns the configured starting style of kind merged over the
// palette defaults.
func (c *Config) ToolStyle(kind shape.Kind) (shape.Style, error) {
	st := palette.Defaults(kind)
	tool, ok := c.Tools[kind.String()]
	if !ok {
		return st, nil
	}
	if tool.Size != 0 {
		size, ok := palette.SizeFor(kind, tool.Size)
		if !ok {
			return st, fmt.Errorf("tools.%s: size %v is not one of 3, 6, 9", kind, tool.Size)
		}
		st.Size = size
	}
	if tool.Color != "" {
		col, err := palette.ParseColor(tool.Color)
		if err != nil {
			return st, fmt.Errorf("tools.%s: %w", kind, err)
		}
		st.Color = col
	}
	return st, nil
}

// DeleteDelay returns how long a deleted shape stays selected.
func (c *Config) DeleteDelay() time.Duration {
	return time.Duration(c.Timing.DeleteClearMS) * time.Millisecond
}

// TextDelay returns how long a committed text stays selected.
func (c *Config) TextDelay() time.Duration {
	return time.Duration(c.Timing.TextClearMS) * time.Millisecond
}

// DropShadow returns the configured export shadow, or false when shadows
// are off.
func (c *Config) DropShadow() (render.Shadow, bool, error) {
	if !c.Shadow.Enabled {
		return render.Shadow{}, false, nil
	}
	s := render.Shadow{
		Radius:  c.Shadow.Radius,
		Offset:  image.Pt(c.Shadow.OffsetX, c.Shadow.OffsetY),
		Opacity: c.Shadow.Opacity,
		Color:   color.RGBA{A: 255},
	}
	if c.Shadow.Color != "" {
		col, err := palette.ParseColor(c.Shadow.Color)
		if err != nil {
			return render.Shadow{}, false, fmt.Errorf("shadow: %w", err)
		}
		s.Color = col
	}
	return s, true, nil
}

// LoadTheme resolves the configured base theme and applies the colour
// overrides.
func (c *Config) LoadTheme(l *theme.Loader) (*theme.Theme, error) {
	th, err := l.Load(c.Theme.Name)
	if err != nil {
		return nil, err
	}
	overrides := []struct{ key, value string }{
		{"Background", c.Theme.Background},
		{"Selection", c.Theme.Selection},
		{"HandleFill", c.Theme.HandleFill},
		{"HandleStroke", c.Theme.HandleStroke},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		if err := th.Set(o.key, o.value); err != nil {
			return nil, fmt.Errorf("theme: %w", err)
		}
	}
	return th, nil
}
