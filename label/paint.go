package label

import (
	"fmt"
	"image/color"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Ellipsis is appended to text cut to fit its width.
const Ellipsis = "…"

var (
	bundledOnce    sync.Once
	bundledRegular *truetype.Font
	bundledBold    *truetype.Font
	bundledErr     error
)

func loadBundledFonts() error {
	bundledOnce.Do(func() {
		bundledRegular, bundledErr = truetype.Parse(goregular.TTF)
		if bundledErr != nil {
			return
		}
		bundledBold, bundledErr = truetype.Parse(gobold.TTF)
	})
	return bundledErr
}

// loadFace opens path at size pixels, falling back to the bundled Go font
// when path is empty or unreadable.
func loadFace(path string, size int, bold bool) (font.Face, error) {
	if path != "" {
		face, err := gg.LoadFontFace(path, float64(size))
		if err == nil {
			return face, nil
		}
		log.Warnf("Font %s unusable, using bundled font: %v", filepath.Base(path), err)
	}

	if err := loadBundledFonts(); err != nil {
		return nil, fmt.Errorf("failed to parse bundled font: %w", err)
	}
	f := bundledRegular
	if bold {
		f = bundledBold
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Paint is a font face with a colour. Faces keep glyph caches that are not
// safe for concurrent use, so measuring and drawing hold the paint's lock.
type Paint struct {
	face  font.Face
	color color.Color
	mutex sync.Mutex
}

func NewPaint(face font.Face, c color.Color) *Paint {
	return &Paint{face: face, color: c}
}

func (p *Paint) Measure(text string) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return font.MeasureString(p.face, text).Ceil()
}

func (p *Paint) Ellipsize(text string, maxWidth int) string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return Ellipsize(p.face, text, maxWidth)
}

// Draw truncates text to maxWidth and draws it with the top of the font's
// ascent at y. It returns the text actually drawn.
func (p *Paint) Draw(dc *gg.Context, x, y int, text string, maxWidth int) string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	text = Ellipsize(p.face, text, maxWidth)
	if text == "" {
		return ""
	}
	ascent := p.face.Metrics().Ascent.Ceil()
	dc.SetFontFace(p.face)
	dc.SetColor(p.color)
	dc.DrawString(text, float64(x), float64(y+ascent))
	return text
}

// Ellipsize cuts text from the end so that it plus Ellipsis measures at
// most maxWidth with face. Text that already fits is returned unchanged;
// the result is empty when not even the ellipsis fits.
func Ellipsize(face font.Face, text string, maxWidth int) string {
	if text == "" || maxWidth <= 0 {
		return ""
	}
	if font.MeasureString(face, text).Ceil() <= maxWidth {
		return text
	}
	if font.MeasureString(face, Ellipsis).Ceil() > maxWidth {
		return ""
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if font.MeasureString(face, string(runes[:mid])+Ellipsis).Ceil() <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	// Binary search assumes widths grow with length; kerning can break that.
	for lo > 0 && font.MeasureString(face, string(runes[:lo])+Ellipsis).Ceil() > maxWidth {
		lo--
	}
	return string(runes[:lo]) + Ellipsis
}

func truncatedRunes(original, drawn string) int {
	return utf8.RuneCountInString(original) - utf8.RuneCountInString(drawn)
}
