package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas is a Surface backed by an *image.RGBA.
type Canvas struct {
	img     *image.RGBA
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher
	path    rasterx.Path
	started bool

	width float64
	cap   Cap
	join  Join
	color color.Color
}

// NewCanvas wraps img. Drawing happens in place.
func NewCanvas(img *image.RGBA) *Canvas {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &Canvas{
		img:     img,
		scanner: scanner,
		dasher:  rasterx.NewDasher(b.Dx(), b.Dy(), scanner),
		width:   1,
		cap:     ButtCap,
		join:    MiterJoin,
		color:   color.Black,
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) SetStrokeWidth(w float64) { c.width = w }
func (c *Canvas) SetLineCap(cp Cap)        { c.cap = cp }
func (c *Canvas) SetLineJoin(j Join)       { c.join = j }
func (c *Canvas) SetColor(col color.Color) { c.color = col }

func (c *Canvas) MoveTo(p r2.Vec) {
	if c.started {
		c.path.Stop(false)
	}
	c.path.Start(rasterx.ToFixedP(p.X, p.Y))
	c.started = true
}

func (c *Canvas) LineTo(p r2.Vec) {
	if !c.started {
		c.MoveTo(p)
		return
	}
	c.path.Line(rasterx.ToFixedP(p.X, p.Y))
}

func (c *Canvas) Ellipse(center r2.Vec, rx, ry float64) {
	if c.started {
		c.path.Stop(false)
		c.started = false
	}
	rasterx.AddEllipse(center.X, center.Y, rx, ry, 0, &c.path)
}

func (c *Canvas) ClosePath() {
	if c.started {
		c.path.Stop(true)
		c.started = false
	}
}

func (c *Canvas) finishPath() {
	if c.started {
		c.path.Stop(false)
		c.started = false
	}
}

func (c *Canvas) Stroke() {
	c.finishPath()
	c.dasher.SetStroke(fixed.Int26_6(c.width*64), fixed.Int26_6(4*64), c.capFunc(), c.capFunc(), rasterx.RoundGap, c.joinMode(), nil, 0)
	c.path.AddTo(c.dasher)
	c.dasher.SetColor(c.color)
	c.dasher.Draw()
	c.dasher.Clear()
	c.path.Clear()
}

func (c *Canvas) Fill() {
	c.finishPath()
	rf := &c.dasher.Filler
	c.path.AddTo(rf)
	rf.SetColor(c.color)
	rf.Draw()
	rf.Clear()
	c.path.Clear()
}

func (c *Canvas) capFunc() rasterx.CapFunc {
	switch c.cap {
	case RoundCap:
		return rasterx.RoundCap
	case SquareCap:
		return rasterx.SquareCap
	}
	return rasterx.ButtCap
}

func (c *Canvas) joinMode() rasterx.JoinMode {
	switch c.join {
	case RoundJoin:
		return rasterx.Round
	case BevelJoin:
		return rasterx.Bevel
	}
	return rasterx.Miter
}

func (c *Canvas) FillText(text string, p r2.Vec, size float64) {
	face, err := faceForSize(size)
	if err != nil {
		return
	}
	origin := c.img.Bounds().Min
	ascent := face.Metrics().Ascent
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(c.color),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6((p.X + float64(origin.X)) * 64),
			Y: fixed.Int26_6((p.Y+float64(origin.Y))*64) + ascent,
		},
	}
	drawer.DrawString(text)
}

func (c *Canvas) MeasureText(text string, size float64) (width, height float64) {
	return MeasureText(text, size)
}

// Clone copies img into a new zero-origin RGBA image.
func Clone(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
