package label

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
)

var (
	testBackground = color.RGBA{10, 20, 30, 255}
	testTitle      = color.RGBA{250, 250, 250, 255}
	testCount      = color.RGBA{200, 200, 0, 255}
)

func testSpec() LabelSpec {
	return LabelSpec{
		TitleFontSize:         20,
		CountFontSize:         18,
		TitleColor:            testTitle,
		CountColor:            testCount,
		BackgroundColor:       testBackground,
		LabelBackgroundHeight: 48,
		IconSize:              32,
		LeftMargin:            8,
		TitleRightMargin:      60,
	}
}

func newTestRenderer(t *testing.T, spec LabelSpec, opts ...Option) *LabelRenderer {
	t.Helper()
	r, err := NewLabelRenderer(spec, opts...)
	if err != nil {
		t.Fatalf("NewLabelRenderer: %v", err)
	}
	return r
}

// countingDecoder hands out solid squares and counts decodes per icon.
type countingDecoder struct {
	mutex sync.Mutex
	calls map[IconID]int
	fail  bool
}

func (d *countingDecoder) Decode(id IconID) (image.Image, error) {
	d.mutex.Lock()
	if d.calls == nil {
		d.calls = make(map[IconID]int)
	}
	d.calls[id]++
	d.mutex.Unlock()

	if d.fail {
		return nil, errTestDecode
	}
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img, nil
}

func (d *countingDecoder) count(id IconID) int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.calls[id]
}

type testError string

func (e testError) Error() string { return string(e) }

const errTestDecode = testError("decode failed")

// cancelAfter reports cancellation from the (limit+1)-th poll on.
type cancelAfter struct {
	limit int32
	polls atomic.Int32
}

func (c *cancelAfter) IsCancelled() bool {
	return c.polls.Add(1) > c.limit
}

// recordingPool serves prepared bitmaps and remembers what comes back.
type recordingPool struct {
	mutex    sync.Mutex
	stock    []*image.RGBA
	requests []image.Point
	returned []*image.RGBA
}

func (p *recordingPool) Get(width, height int) *image.RGBA {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.requests = append(p.requests, image.Pt(width, height))
	if len(p.stock) == 0 {
		return nil
	}
	img := p.stock[0]
	p.stock = p.stock[1:]
	return img
}

func (p *recordingPool) Put(img *image.RGBA) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.returned = append(p.returned, img)
}

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// countPixels counts pixels of r in img that differ from c.
func countPixels(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != c {
				n++
			}
		}
	}
	return n
}
