//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"errors"
	"image"
)

func portalScreenshot(context.Context, bool, Options) (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func rootScreenshot() (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func listMonitors() ([]MonitorInfo, error) {
	return nil, ErrUnsupported
}

func isPortalUnsupportedError(err error) bool {
	return errors.Is(err, ErrUnsupported)
}
