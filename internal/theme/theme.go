// Package theme holds the colours used for selection decorations and the
// editor window chrome.
package theme

import (
	"image/color"
)

// Theme defines the decoration colours drawn around annotations.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Behind the annotated image
	Foreground color.RGBA // Status line text

	// Selection
	Selection    color.RGBA // Frames around selected brush and text shapes
	HandleFill   color.RGBA
	HandleStroke color.RGBA

	// Text overlay
	Caret color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:         "Default",
		Background:   color.RGBA{220, 220, 220, 255},
		Foreground:   color.RGBA{0, 0, 0, 255},
		Selection:    color.RGBA{0, 0, 0, 255},
		HandleFill:   color.RGBA{255, 255, 255, 255},
		HandleStroke: color.RGBA{0, 0, 0, 255},
		Caret:        color.RGBA{0, 0, 0, 255},
		CheckerLight: color.RGBA{220, 220, 220, 255},
		CheckerDark:  color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns a theme for dark desktops.
func Dark() *Theme {
	return &Theme{
		Name:         "Dark",
		Background:   color.RGBA{40, 42, 54, 255},
		Foreground:   color.RGBA{230, 230, 230, 255},
		Selection:    color.RGBA{230, 230, 230, 255},
		HandleFill:   color.RGBA{40, 42, 54, 255},
		HandleStroke: color.RGBA{230, 230, 230, 255},
		Caret:        color.RGBA{230, 230, 230, 255},
		CheckerLight: color.RGBA{70, 70, 80, 255},
		CheckerDark:  color.RGBA{55, 55, 65, 255},
	}
}

// HighContrast keeps handles visible on busy screenshots.
func HighContrast() *Theme {
	return &Theme{
		Name:         "HighContrast",
		Background:   color.RGBA{0, 0, 0, 255},
		Foreground:   color.RGBA{255, 255, 0, 255},
		Selection:    color.RGBA{255, 0, 255, 255},
		HandleFill:   color.RGBA{255, 255, 0, 255},
		HandleStroke: color.RGBA{0, 0, 0, 255},
		Caret:        color.RGBA{255, 0, 255, 255},
		CheckerLight: color.RGBA{255, 255, 255, 255},
		CheckerDark:  color.RGBA{0, 0, 0, 255},
	}
}
