//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}, {Depth: 32, BitsPerPixel: 32}}
	// Two pixels per row with four bytes of row padding.
	data := []byte{
		0x10, 0x20, 0x30, 0x00, 0x40, 0x50, 0x60, 0x00, 0, 0, 0, 0,
		0x01, 0x02, 0x03, 0x00, 0x04, 0x05, 0x06, 0x00, 0, 0, 0, 0,
	}
	img, err := xImageToRGBA(formats, &xproto.GetImageReply{Depth: 24, Data: data}, 2, 2)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0x30, 0x20, 0x10, 0xFF}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != (color.RGBA{0x06, 0x05, 0x04, 0xFF}) {
		t.Errorf("pixel (1,1) = %v", got)
	}

	alpha := []byte{0x10, 0x20, 0x30, 0x80}
	img, err = xImageToRGBA(formats, &xproto.GetImageReply{Depth: 32, Data: alpha}, 1, 1)
	if err != nil {
		t.Fatalf("convert depth 32: %v", err)
	}
	if got := img.RGBAAt(0, 0).A; got != 0x80 {
		t.Errorf("alpha = %#x", got)
	}
}

func TestXImageToRGBAErrors(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}, {Depth: 16, BitsPerPixel: 16}}
	tests := []struct {
		name  string
		reply *xproto.GetImageReply
		w, h  int
	}{
		{"empty geometry", &xproto.GetImageReply{Depth: 24, Data: []byte{1, 2, 3, 4}}, 0, 1},
		{"nil reply", nil, 1, 1},
		{"unknown depth", &xproto.GetImageReply{Depth: 8, Data: []byte{1}}, 1, 1},
		{"16 bpp", &xproto.GetImageReply{Depth: 16, Data: []byte{1, 2}}, 1, 1},
		{"short rows", &xproto.GetImageReply{Depth: 24, Data: []byte{1, 2, 3, 4}}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := xImageToRGBA(formats, tt.reply, tt.w, tt.h); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
