//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "fmt"

var errUnsupported = fmt.Errorf("clipboard image operations are not supported on this platform")

func ensureInit() error {
	return errUnsupported
}

func writePNG([]byte) error {
	return errUnsupported
}

func readPNG() ([]byte, error) {
	return nil, errUnsupported
}
