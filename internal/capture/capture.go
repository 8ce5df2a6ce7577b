// Package capture grabs the screen image that gets annotated. The desktop
// portal is tried first; on X11 sessions without a portal the root
// window is read directly.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrUnsupported is returned when no capture backend works on this system.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// ErrCanceled is returned when the user dismisses the portal dialog.
var ErrCanceled = errors.New("screen capture canceled")

// Options tunes a capture.
type Options struct {
	IncludeCursor bool
	// Display selects a monitor by index, name or "primary". Empty
	// captures the whole desktop.
	Display string
}

var (
	portalScreenshotFn = portalScreenshot
	rootScreenshotFn   = rootScreenshot
	listMonitorsFn     = listMonitors
)

// Screen captures the desktop, cropped to opts.Display when set.
func Screen(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := portalScreenshotFn(ctx, false, opts)
	if err != nil {
		if !isPortalUnsupportedError(err) {
			return nil, err
		}
		var xerr error
		img, xerr = rootScreenshotFn()
		if xerr != nil {
			return nil, fmt.Errorf("portal screenshot: %v; root window fallback: %w", err, xerr)
		}
	}
	if opts.Display == "" {
		return img, nil
	}
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	monitor, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, monitor.Rect)
}

// Region lets the user pick an area in the portal dialog. There is no
// fallback because the root window cannot be selected interactively.
func Region(ctx context.Context, opts Options) (*image.RGBA, error) {
	img, err := portalScreenshotFn(ctx, true, opts)
	if err != nil {
		return nil, fmt.Errorf("capture region: %w", err)
	}
	return img, nil
}

// RegionRect captures rect in global screen coordinates.
func RegionRect(ctx context.Context, rect image.Rectangle, opts Options) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	opts.Display = ""
	shot, err := Screen(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
