package clipboard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestDecodePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(1, 0, color.RGBA{0xF6, 0x54, 0x4A, 0xFF})
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	img, err := decodePNG(buf.Bytes())
	if err != nil {
		t.Fatalf("decodePNG: %v", err)
	}
	if r, _, _, _ := img.At(1, 0).RGBA(); r>>8 != 0xF6 {
		t.Fatalf("pixel = %v", img.At(1, 0))
	}
	if _, err := decodePNG(nil); err == nil {
		t.Fatalf("expected error for empty clipboard")
	}
	if _, err := decodePNG([]byte("not a png")); err == nil {
		t.Fatalf("expected error for non-PNG data")
	}
}
