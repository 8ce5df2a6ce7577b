package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontOnce  sync.Once
	textFont  *opentype.Font
	fontErr   error
	textFaces sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid text size %v", size)
	}
	fontOnce.Do(func() {
		textFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("text font not initialised: %w", fontErr)
	}
	if face, ok := textFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(textFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := textFaces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// MeasureText returns the advance width of one line of text and its line
// height, which equals the font size.
func MeasureText(text string, size float64) (width, height float64) {
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64, size
}

// FontMeasurer measures text with the face Canvas draws with. It
// satisfies hittest.Measurer.
type FontMeasurer struct{}

func (FontMeasurer) MeasureText(text string, size float64) (width, height float64) {
	return MeasureText(text, size)
}
