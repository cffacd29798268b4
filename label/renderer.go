// Package label renders the small title/count/icon overlays drawn on top of
// album thumbnails in a gallery grid or list.
package label

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

type Option func(*LabelRenderer)

// WithPool replaces the default SizedPool.
func WithPool(pool BitmapPool) Option {
	return func(r *LabelRenderer) {
		if pool != nil {
			r.pool = pool
		}
	}
}

// WithIconDecoder replaces the bundled vector icons.
func WithIconDecoder(decoder IconDecoder) Option {
	return func(r *LabelRenderer) {
		if decoder != nil {
			r.decoder = decoder
		}
	}
}

// LabelRenderer produces label bitmaps. It is safe for concurrent use:
// SetDimensions may run while other goroutines render.
type LabelRenderer struct {
	spec       LabelSpec
	titlePaint *Paint
	countPaint *Paint
	dims       dimensions
	pool       BitmapPool
	decoder    IconDecoder
	icons      *IconCache
}

func NewLabelRenderer(spec LabelSpec, opts ...Option) (*LabelRenderer, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid label spec: %w", err)
	}

	r := &LabelRenderer{
		spec:    spec,
		pool:    NewSizedPool(),
		decoder: VectorIcons{Size: defaultIconSize},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.icons = NewIconCache(r.decoder)

	titleFace, err := loadFace(spec.FontPath, spec.TitleFontSize, spec.TitleBold)
	if err != nil {
		return nil, fmt.Errorf("failed to load title font: %w", err)
	}
	countFace, err := loadFace(spec.FontPath, spec.CountFontSize, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load count font: %w", err)
	}
	r.titlePaint = NewPaint(titleFace, spec.titleColor())
	r.countPaint = NewPaint(countFace, spec.countColor())

	return r, nil
}

// BorderSize returns the inset kept around every label.
func (r *LabelRenderer) BorderSize() int {
	return BorderSize
}

func (r *LabelRenderer) Spec() LabelSpec {
	return r.spec
}

func (r *LabelRenderer) Icons() *IconCache {
	return r.icons
}

// SetDimensions adapts the label geometry to a slot of width x height.
// Repeating the previous width and mode is a no-op and returns false.
func (r *LabelRenderer) SetDimensions(width, height int, mode GroupingMode) bool {
	changed := r.dims.update(width, height, mode, r.spec.LabelBackgroundHeight)
	if changed {
		d := r.dims.snapshot()
		log.Debugf("Label size %dx%d (label width %d, %s grouping)",
			d.BitmapWidth, d.BitmapHeight, d.LabelWidth, mode)
	}
	return changed
}

func (r *LabelRenderer) Dimensions() LabelDimensions {
	return r.dims.snapshot()
}

// RequestLabel returns a job rendering a label without file details.
func (r *LabelRenderer) RequestLabel(title, count string, source SourceType, view ViewType) Job[*image.RGBA] {
	return r.RequestLabelWithFile(title, count, "", "", source, view)
}

// RequestLabelWithFile returns a job rendering a label that also shows a
// file path and date in list view.
func (r *LabelRenderer) RequestLabelWithFile(title, count, filePath, fileDate string, source SourceType, view ViewType) Job[*image.RGBA] {
	req := LabelRequest{
		Title:      title,
		Count:      count,
		FilePath:   filePath,
		FileDate:   fileDate,
		SourceType: source,
		ViewType:   view,
	}
	return JobFunc[*image.RGBA](func(jc JobContext) *image.RGBA {
		return r.RenderLabel(jc, req)
	})
}

// RenderLabel draws req into a pooled bitmap. Every text and icon step
// checks jc first; once jc is cancelled the remaining steps are skipped and
// the partly drawn bitmap is returned. The caller owns the result and
// should hand it back through RecycleLabel.
func (r *LabelRenderer) RenderLabel(jc JobContext, req LabelRequest) *image.RGBA {
	if jc == nil {
		jc = Background
	}
	icon := r.icons.ForSource(req.SourceType)

	dims := r.dims.snapshot()
	bitmap := r.pool.Get(dims.BitmapWidth, dims.BitmapHeight)
	if bitmap == nil {
		borders := 2 * BorderSize
		height := r.spec.LabelBackgroundHeight + borders
		if req.ViewType == ViewList {
			height = dims.BitmapHeight
		}
		bitmap = image.NewRGBA(image.Rect(0, 0, dims.LabelWidth+borders, height))
	}

	dc := gg.NewContextForRGBA(bitmap)
	if BorderSize > 0 {
		b := bitmap.Bounds()
		dc.DrawRectangle(BorderSize, BorderSize,
			float64(b.Dx()-2*BorderSize), float64(b.Dy()-2*BorderSize))
		dc.Clip()
		dc.Translate(BorderSize, BorderSize)
	}

	plan := Layout(r.spec, dims, req, icon)
	dc.SetColor(plan.Background)
	dc.Clear()

	for _, step := range plan.Steps {
		if jc.IsCancelled() {
			log.Debugf("Label %q cancelled before %s", req.Title, step.Kind)
			break
		}
		r.draw(dc, step)
	}
	return bitmap
}

func (r *LabelRenderer) draw(dc *gg.Context, step Step) {
	switch step.Kind {
	case StepIcon:
		dc.Push()
		dc.Translate(float64(step.X), step.IconY)
		dc.Scale(step.Scale, step.Scale)
		dc.DrawImage(step.Icon, 0, 0)
		dc.Pop()
	case StepCount:
		r.countPaint.Draw(dc, step.X, step.Y, step.Text, step.MaxWidth)
	default:
		drawn := r.titlePaint.Draw(dc, step.X, step.Y, step.Text, step.MaxWidth)
		if drawn != step.Text {
			log.Debugf("Label %s cut by %d runes to fit %dpx", step.Kind, truncatedRunes(step.Text, drawn), step.MaxWidth)
		}
	}
}

// RecycleLabel returns a bitmap produced by RenderLabel to the pool.
func (r *LabelRenderer) RecycleLabel(bitmap *image.RGBA) {
	r.pool.Put(bitmap)
}
