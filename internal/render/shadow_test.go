package render

import (
	"image"
	"image/color"
	"testing"
)

func TestShadowGrowsCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	s := Shadow{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5, Color: color.RGBA{A: 255}}
	out, at := s.Apply(img)
	if want := image.Rect(0, 0, 22, 20); !out.Bounds().Eq(want) {
		t.Fatalf("bounds %v, want %v", out.Bounds(), want)
	}
	if at != (image.Point{}) {
		t.Fatalf("image moved to %v", at)
	}
	if out.RGBAAt(13, 11).A == 0 {
		t.Fatal("no shadow under the offset pixel")
	}
	if got := out.RGBAAt(5, 5); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("subject pixel %v", got)
	}
}

func TestShadowNegativeOffsetShiftsImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	_, at := Shadow{Radius: 1, Offset: image.Pt(-5, 0), Opacity: 1}.Apply(img)
	if at != image.Pt(6, 1) {
		t.Fatalf("image placed at %v", at)
	}
}

func TestShadowDisabled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out, _ := Shadow{Radius: 12, Offset: image.Pt(20, 10)}.Apply(img)
	if out != img {
		t.Fatal("zero opacity should return the input")
	}
}

func TestBoxBlurSpreads(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 5, 5))
	g.SetGray(2, 2, color.Gray{Y: 255})
	boxBlur(g, 1)
	if g.GrayAt(2, 2).Y == 255 || g.GrayAt(2, 2).Y == 0 {
		t.Fatalf("centre %d", g.GrayAt(2, 2).Y)
	}
	if g.GrayAt(3, 3).Y == 0 {
		t.Fatal("blur did not reach the diagonal")
	}
	if g.GrayAt(0, 0).Y != 0 {
		t.Fatal("blur reached beyond its radius")
	}
}
