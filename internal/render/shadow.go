package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Shadow is a blurred drop shadow added behind an exported image.
type Shadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	Color   color.RGBA
}

// DefaultShadow returns the shadow used when exports ask for one without
// tuning it.
func DefaultShadow() Shadow {
	return Shadow{Radius: 24, Offset: image.Pt(16, 16), Opacity: 0.55, Color: color.RGBA{A: 255}}
}

// Apply returns img on a canvas grown to hold its shadow. The result has
// a zero origin; the image's own top-left lands at the returned point.
func (s Shadow) Apply(img *image.RGBA) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || s.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := min(s.Opacity, 1)
	radius := max(s.Radius, 0)

	src := img.Bounds()
	spread := src.Inset(-radius)
	cast := spread.Add(s.Offset)
	all := src.Union(cast)

	mask := image.NewGray(spread.Sub(spread.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-spread.Min.X, y-spread.Min.Y, color.Gray{Y: a})
			}
		}
	}
	boxBlur(mask, radius)

	out := image.NewRGBA(all.Sub(all.Min))
	tint := s.Color
	tint.A = uint8(opacity*255 + 0.5)
	if tint.A > 0 {
		draw.DrawMask(out, mask.Bounds().Add(cast.Min.Sub(all.Min)), image.NewUniform(tint), image.Point{}, mask, image.Point{}, draw.Over)
	}
	at := src.Min.Sub(all.Min)
	draw.Draw(out, src.Sub(all.Min), img, src.Min, draw.Over)
	return out, at
}

// boxBlur blurs g in place with a horizontal then a vertical box filter.
func boxBlur(g *image.Gray, radius int) {
	if radius <= 0 {
		return
	}
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	for y := 0; y < h; y++ {
		blurLine(g.Pix[y*g.Stride:], w, 1, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(g.Pix[x:], h, g.Stride, radius)
	}
}

// blurLine averages n samples spaced step apart over a window of
// 2*radius+1, clipped at the ends.
func blurLine(pix []uint8, n, step, radius int) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(pix[i*step])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		pix[i*step] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
