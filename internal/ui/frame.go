package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/annotator/internal/palette"
	"github.com/example/annotator/internal/render"
	"github.com/example/annotator/internal/shape"
	"github.com/example/annotator/internal/theme"
)

const (
	toolbarHeight = 24
	statusHeight  = 18
	checkerSize   = 8
	toolWidth     = 72
	swatchWidth   = 22
)

type itemKind int

const (
	itemTool itemKind = iota
	itemColor
	itemSize
)

// toolbarItem is one clickable cell of the toolbar.
type toolbarItem struct {
	rect  image.Rectangle
	kind  itemKind
	tool  shape.Kind
	index int
}

// layout places the toolbar, the annotated image and the status line in a
// window of the given size.
type layout struct {
	window  image.Rectangle
	canvas  image.Rectangle
	status  image.Rectangle
	toolbar []toolbarItem
}

func newLayout(win, img image.Point) layout {
	l := layout{window: image.Rectangle{Max: win}}
	area := image.Rect(0, toolbarHeight, win.X, win.Y-statusHeight)
	if area.Dy() < 0 {
		area.Max.Y = area.Min.Y
	}
	l.status = image.Rect(0, area.Max.Y, win.X, win.Y)
	off := area.Min
	if dx := area.Dx() - img.X; dx > 0 {
		off.X += dx / 2
	}
	if dy := area.Dy() - img.Y; dy > 0 {
		off.Y += dy / 2
	}
	l.canvas = image.Rectangle{Min: off, Max: off.Add(img)}

	x := 0
	for _, k := range shape.Kinds {
		l.toolbar = append(l.toolbar, toolbarItem{rect: image.Rect(x, 0, x+toolWidth, toolbarHeight), kind: itemTool, tool: k})
		x += toolWidth
	}
	x += 8
	for i := range palette.Colors {
		l.toolbar = append(l.toolbar, toolbarItem{rect: image.Rect(x, 0, x+swatchWidth, toolbarHeight), kind: itemColor, index: i})
		x += swatchWidth
	}
	x += 8
	for i := range palette.Tiers {
		l.toolbar = append(l.toolbar, toolbarItem{rect: image.Rect(x, 0, x+swatchWidth, toolbarHeight), kind: itemSize, index: i})
		x += swatchWidth
	}
	return l
}

// itemAt returns the toolbar cell under p.
func (l layout) itemAt(p image.Point) (toolbarItem, bool) {
	for _, it := range l.toolbar {
		if p.In(it.rect) {
			return it, true
		}
	}
	return toolbarItem{}, false
}

// frameState is what one repaint shows.
type frameState struct {
	records []*shape.Record
	tool    shape.Kind
	hasTool bool
	style   shape.Style
	box     *textBox
	status  string
}

// painter draws frames for one base image.
type painter struct {
	theme    *theme.Theme
	renderer *render.Renderer
	base     *image.RGBA

	backdrop *image.RGBA
}

func newPainter(th *theme.Theme, base *image.RGBA, handleRadius float64) *painter {
	r := render.NewRenderer(th)
	if handleRadius > 0 {
		r.HandleRadius = handleRadius
	}
	return &painter{theme: r.Theme, renderer: r, base: base}
}

func (p *painter) paint(dst *image.RGBA, l layout, st frameState) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(p.theme.Background), image.Point{}, draw.Src)
	p.drawBackdrop(dst, l.canvas)

	layer := render.Clone(p.base)
	c := render.NewCanvas(layer)
	p.renderer.Draw(c, st.records)
	if st.box != nil && st.box.Active() {
		p.drawTextBox(c, l.canvas.Min, st.box)
	}
	draw.Draw(dst, l.canvas, layer, image.Point{}, draw.Over)

	p.drawToolbar(dst, l, st)
	p.drawStatus(dst, l.status, st)
}

func (p *painter) drawBackdrop(dst *image.RGBA, r image.Rectangle) {
	if p.backdrop == nil || p.backdrop.Bounds().Size() != r.Size() {
		p.backdrop = image.NewRGBA(image.Rectangle{Max: r.Size()})
		drawCheckerboard(p.backdrop, p.backdrop.Bounds(), checkerSize, p.theme.CheckerLight, p.theme.CheckerDark)
	}
	draw.Draw(dst, r, p.backdrop, image.Point{}, draw.Src)
}

func drawCheckerboard(dst *image.RGBA, r image.Rectangle, size int, light, dark color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := light
			if ((x-r.Min.X)/size+(y-r.Min.Y)/size)%2 == 1 {
				c = dark
			}
			dst.SetRGBA(x, y, c)
		}
	}
}

// drawTextBox draws the overlay's text and caret in region coordinates.
func (p *painter) drawTextBox(c *render.Canvas, origin image.Point, box *textBox) {
	st := box.state
	at := r2.Vec{X: st.Position.X - float64(origin.X), Y: st.Position.Y - float64(origin.Y)}
	lines := strings.Split(box.Text(), "\n")
	c.SetColor(st.Color)
	for i, line := range lines {
		c.FillText(line, r2.Vec{X: at.X, Y: at.Y + float64(i)*st.Size}, st.Size)
	}
	last := len(lines) - 1
	w, _ := c.MeasureText(lines[last], st.Size)
	top := r2.Vec{X: at.X + w + 1, Y: at.Y + float64(last)*st.Size}
	c.MoveTo(top)
	c.LineTo(r2.Vec{X: top.X, Y: top.Y + st.Size})
	c.SetStrokeWidth(1)
	c.SetLineCap(render.ButtCap)
	c.SetColor(p.theme.Caret)
	c.Stroke()
}

func (p *painter) drawToolbar(dst *image.RGBA, l layout, st frameState) {
	for _, it := range l.toolbar {
		switch it.kind {
		case itemTool:
			bg := p.theme.CheckerLight
			if st.hasTool && st.tool == it.tool {
				bg = p.theme.CheckerDark
			}
			draw.Draw(dst, it.rect.Inset(1), image.NewUniform(bg), image.Point{}, draw.Src)
			p.label(dst, it.tool.String(), image.Pt(it.rect.Min.X+4, it.rect.Min.Y+16))
		case itemColor:
			c := palette.Colors[it.index].Color
			if st.hasTool && st.style.Color == c {
				draw.Draw(dst, it.rect.Inset(1), image.NewUniform(p.theme.Selection), image.Point{}, draw.Src)
			}
			draw.Draw(dst, it.rect.Inset(3), image.NewUniform(c), image.Point{}, draw.Src)
		case itemSize:
			t := palette.Tiers[it.index]
			if st.hasTool && tierIndex(st.tool, st.style.Size) == it.index {
				draw.Draw(dst, it.rect.Inset(1), image.NewUniform(p.theme.CheckerDark), image.Point{}, draw.Src)
			}
			ctr := it.rect.Min.Add(it.rect.Size().Div(2))
			fillDot(dst, ctr, t.Swatch/2, p.theme.Foreground)
		}
	}
}

func fillDot(dst *image.RGBA, ctr image.Point, radius float64, c color.RGBA) {
	r := int(radius + 0.5)
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if float64(x*x+y*y) <= radius*radius {
				dst.SetRGBA(ctr.X+x, ctr.Y+y, c)
			}
		}
	}
}

func (p *painter) drawStatus(dst *image.RGBA, r image.Rectangle, st frameState) {
	if r.Empty() {
		return
	}
	text := "no tool"
	if st.hasTool {
		text = fmt.Sprintf("%s  size %g  %s", st.tool, st.style.Size, palette.Name(st.style.Color))
	}
	if st.status != "" {
		text += "  |  " + st.status
	}
	p.label(dst, text, image.Pt(r.Min.X+4, r.Min.Y+13))
}

func (p *painter) label(dst *image.RGBA, s string, at image.Point) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(p.theme.Foreground), Face: basicfont.Face7x13, Dot: fixed.P(at.X, at.Y)}
	d.DrawString(s)
}

// tierIndex returns the palette tier a stored size belongs to, or -1.
func tierIndex(kind shape.Kind, size float64) int {
	for i, t := range palette.Tiers {
		if (kind == shape.Text && t.Font == size) || (kind != shape.Text && t.Value == size) {
			return i
		}
	}
	return -1
}
