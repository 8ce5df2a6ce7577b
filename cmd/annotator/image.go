package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/annotator/internal/capture"
	"github.com/example/annotator/internal/clipboard"
	"github.com/example/annotator/internal/render"
)

var (
	captureScreenFn     = capture.Screen
	captureRegionFn     = capture.Region
	captureRegionRectFn = capture.RegionRect
	readClipboardFn     = clipboard.ReadImage
	writeClipboardFn    = clipboard.WriteImage
)

// source says where the image to annotate comes from.
type source struct {
	file          string
	fromClipboard bool
	capture       string // "screen" or "region"
	region        string
	display       string
	includeCursor bool
}

func (s source) validate() error {
	n := 0
	for _, set := range []bool{s.file != "", s.fromClipboard, s.capture != ""} {
		if set {
			n++
		}
	}
	switch {
	case s.fromClipboard && s.capture != "":
		return errors.New("-from-clipboard is not supported with capture")
	case n > 1:
		return errors.New("choose one of -file, -from-clipboard or capture")
	}
	switch s.capture {
	case "", "screen", "region":
	default:
		return fmt.Errorf("unknown capture target %q", s.capture)
	}
	if s.region != "" {
		if _, err := parseRect(s.region); err != nil {
			return err
		}
	}
	return nil
}

func (s source) describe() string {
	switch {
	case s.file != "":
		return s.file
	case s.fromClipboard:
		return "clipboard image"
	case s.capture == "screen" && s.display != "":
		return "screen " + s.display
	case s.capture == "region" && s.region != "":
		return "region " + s.region
	}
	return s.capture
}

// load returns the source image, or ok=false when no source is set.
func (s source) load(r *root) (*image.RGBA, bool, error) {
	switch {
	case s.file != "":
		img, err := loadImage(s.file)
		return img, true, err
	case s.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return nil, true, fmt.Errorf("read clipboard image: %w", err)
		}
		return toRGBA(img), true, nil
	case s.capture != "":
		img, err := s.grab(r)
		if err != nil {
			return nil, true, fmt.Errorf("failed to capture %s: %w", s.capture, err)
		}
		r.notifier.Capture(s.describe(), img)
		return img, true, nil
	}
	return nil, false, nil
}

func (s source) grab(r *root) (*image.RGBA, error) {
	opts := capture.Options{IncludeCursor: s.includeCursor, Display: s.display}
	if s.capture == "screen" {
		return captureScreenFn(r.ctx, opts)
	}
	if strings.TrimSpace(s.region) == "" {
		return captureRegionFn(r.ctx, opts)
	}
	rect, err := parseRect(s.region)
	if err != nil {
		return nil, err
	}
	return captureRegionRectFn(r.ctx, rect, opts)
}

func loadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func blankImage(size image.Point, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// exporter writes composed images to a file or the clipboard.
type exporter struct {
	r           *root
	output      string
	toClipboard bool
	shadow      bool
}

func (e exporter) decorate(img *image.RGBA) (*image.RGBA, error) {
	s, ok, err := e.r.config.DropShadow()
	if err != nil {
		return nil, err
	}
	if !ok && !e.shadow {
		return img, nil
	}
	if !ok {
		s = render.DefaultShadow()
	}
	out, _ := s.Apply(img)
	return out, nil
}

// export sends img to the clipboard or the output file.
func (e exporter) export(img *image.RGBA) error {
	if e.toClipboard {
		return e.copy(img)
	}
	return e.save(img)
}

func (e exporter) save(img *image.RGBA) error {
	img, err := e.decorate(img)
	if err != nil {
		return err
	}
	if e.output == "" {
		return errors.New("no output file")
	}
	f, err := os.Create(e.output)
	if err != nil {
		return fmt.Errorf("create output %q: %w", e.output, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("write PNG to %q: %w", e.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", e.output, err)
	}
	saved := e.output
	if abs, err := filepath.Abs(e.output); err == nil {
		saved = abs
	}
	e.r.log.Info("saved", "path", saved)
	e.r.notifier.Save(saved)
	return nil
}

func (e exporter) copy(img *image.RGBA) error {
	img, err := e.decorate(img)
	if err != nil {
		return err
	}
	if err := writeClipboardFn(img); err != nil {
		return fmt.Errorf("copy PNG to clipboard: %w", err)
	}
	e.r.log.Info("copied image to clipboard")
	e.r.notifier.Copy("annotated image")
	return nil
}

func parseRect(val string) (image.Rectangle, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
	}
	nums := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
		}
		nums[i] = v
	}
	rect := image.Rect(nums[0], nums[1], nums[2], nums[3])
	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", val)
	}
	return rect, nil
}

func parseSize(val string) (image.Point, error) {
	w, h, ok := strings.Cut(strings.ToLower(val), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", val)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(w))
	y, errY := strconv.Atoi(strings.TrimSpace(h))
	if errX != nil || errY != nil || x <= 0 || y <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", val)
	}
	return image.Pt(x, y), nil
}
