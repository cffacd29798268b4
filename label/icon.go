package label

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/fogleman/gg"
)

// IconID names one of the bundled overlay icons.
type IconID int

const (
	IconFolder IconID = iota
	IconCloud
	IconCamera
)

func (id IconID) String() string {
	switch id {
	case IconFolder:
		return "folder"
	case IconCloud:
		return "cloud"
	case IconCamera:
		return "camera"
	}
	return fmt.Sprintf("icon(%d)", int(id))
}

// iconForSource returns the overlay icon of a source type.
func iconForSource(s SourceType) (IconID, bool) {
	switch s {
	case SourceCamera:
		return IconCamera, true
	case SourceLocal:
		return IconFolder, true
	case SourceCloud:
		return IconCloud, true
	}
	return 0, false
}

// IconDecoder turns an icon id into pixels.
type IconDecoder interface {
	Decode(id IconID) (image.Image, error)
}

type cachedIcon struct {
	img image.Image
	err error
}

// IconCache decodes every icon at most once and keeps the result for its
// own lifetime. Failed decodes are cached as well.
type IconCache struct {
	decoder IconDecoder
	icons   map[IconID]*cachedIcon
	mutex   sync.RWMutex
}

func NewIconCache(decoder IconDecoder) *IconCache {
	return &IconCache{
		decoder: decoder,
		icons:   make(map[IconID]*cachedIcon),
	}
}

func (c *IconCache) Get(id IconID) (image.Image, error) {
	c.mutex.RLock()
	if icon, exists := c.icons[id]; exists {
		c.mutex.RUnlock()
		return icon.img, icon.err
	}
	c.mutex.RUnlock()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if icon, exists := c.icons[id]; exists {
		return icon.img, icon.err
	}

	img, err := c.decoder.Decode(id)
	if err == nil && img == nil {
		err = fmt.Errorf("decoder returned no image")
	}
	if err != nil {
		log.Warnf("Icon %s decode failed: %v", id, err)
		img = nil
	} else {
		log.Debugf("Icon %s decoded (%dx%d)", id, img.Bounds().Dx(), img.Bounds().Dy())
	}
	c.icons[id] = &cachedIcon{img: img, err: err}
	return img, err
}

// ForSource returns the overlay icon of s, or nil when s has none.
func (c *IconCache) ForSource(s SourceType) image.Image {
	id, ok := iconForSource(s)
	if !ok {
		return nil
	}
	img, _ := c.Get(id)
	return img
}

// DirIcons loads <Dir>/<icon>.png.
type DirIcons struct {
	Dir string
}

func (d DirIcons) Decode(id IconID) (image.Image, error) {
	path := filepath.Join(d.Dir, id.String()+".png")
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open icon %s: %w", path, err)
	}
	return img, nil
}

// VectorIcons draws the bundled icons at Size x Size pixels.
type VectorIcons struct {
	Size int
}

const defaultIconSize = 64

var (
	iconFill    = color.RGBA{255, 255, 255, 255}
	iconOutline = color.RGBA{40, 40, 40, 255}
)

func (v VectorIcons) Decode(id IconID) (image.Image, error) {
	size := v.Size
	if size <= 0 {
		size = defaultIconSize
	}
	dc := gg.NewContext(size, size)
	s := float64(size)
	dc.SetLineWidth(s / 16)

	switch id {
	case IconFolder:
		dc.DrawRoundedRectangle(s*0.08, s*0.18, s*0.38, s*0.16, s*0.04)
		dc.DrawRoundedRectangle(s*0.08, s*0.28, s*0.84, s*0.56, s*0.06)
	case IconCloud:
		dc.DrawCircle(s*0.34, s*0.56, s*0.18)
		dc.DrawCircle(s*0.54, s*0.44, s*0.22)
		dc.DrawCircle(s*0.72, s*0.58, s*0.16)
		dc.DrawRectangle(s*0.34, s*0.58, s*0.38, s*0.16)
	case IconCamera:
		dc.DrawRoundedRectangle(s*0.08, s*0.28, s*0.84, s*0.56, s*0.08)
		dc.DrawRectangle(s*0.34, s*0.18, s*0.32, s*0.12)
	default:
		return nil, fmt.Errorf("unknown icon %s", id)
	}
	dc.SetColor(iconFill)
	dc.FillPreserve()
	dc.SetColor(iconOutline)
	dc.Stroke()

	if id == IconCamera {
		dc.DrawCircle(s*0.5, s*0.56, s*0.16)
		dc.SetColor(iconOutline)
		dc.Fill()
	}
	return dc.Image(), nil
}
