package label

import (
	"image"
	"image/color"
	"math"
)

// StepKind identifies one drawing step of a label.
type StepKind int

const (
	StepTitle StepKind = iota
	StepCount
	StepFilePath
	StepFileDate
	StepIcon
)

func (k StepKind) String() string {
	switch k {
	case StepTitle:
		return "title"
	case StepCount:
		return "count"
	case StepFilePath:
		return "file-path"
	case StepFileDate:
		return "file-date"
	case StepIcon:
		return "icon"
	}
	return "unknown"
}

// Step is a positioned piece of a label. Text steps are drawn with the top
// of the ascent at (X, Y) and cut to MaxWidth. Icon steps are translated by
// (X, IconY) and scaled uniformly by Scale.
type Step struct {
	Kind     StepKind
	Text     string
	X        int
	Y        int
	MaxWidth int

	Icon  image.Image
	IconY float64
	Scale float64
}

// Plan is the full drawing of one label: a fill of the whole bitmap with
// Background followed by Steps in order.
type Plan struct {
	Background color.Color
	Steps      []Step
}

// Layout positions a request inside a label of the given dimensions.
// icon may be nil, in which case no icon step is produced.
func Layout(s LabelSpec, dims LabelDimensions, req LabelRequest, icon image.Image) Plan {
	labelWidth := dims.LabelWidth

	switch req.ViewType {
	case ViewList:
		return Plan{
			Background: color.Transparent,
			Steps: []Step{
				titleStep(s, req.Title, labelWidth, 0),
				countStep(s, req.Count, labelWidth),
				listLineStep(s, dims, StepFilePath, req.FilePath, 1),
				listLineStep(s, dims, StepFileDate, req.FileDate, 2),
			},
		}
	case ViewTimeGrouped:
		return Plan{
			Background: s.backgroundColor(),
			Steps: []Step{
				titleStep(s, req.Title, labelWidth, s.IconSize),
				countStep(s, req.Count, labelWidth),
			},
		}
	}

	plan := Plan{
		Background: s.backgroundColor(),
		Steps: []Step{
			titleStep(s, req.Title, labelWidth, s.IconSize),
			countStep(s, req.Count, labelWidth),
		},
	}
	if step, ok := iconStep(s, icon); ok {
		plan.Steps = append(plan.Steps, step)
	}
	return plan
}

func titleStep(s LabelSpec, title string, labelWidth, gutter int) Step {
	x := s.LeftMargin + gutter
	return Step{
		Kind:     StepTitle,
		Text:     title,
		X:        x,
		Y:        (s.LabelBackgroundHeight - s.TitleFontSize) / 2,
		MaxWidth: labelWidth - s.LeftMargin - x - s.TitleRightMargin,
	}
}

// countStep places the count in the column reserved by the title's right
// margin.
func countStep(s LabelSpec, count string, labelWidth int) Step {
	x := labelWidth - s.TitleRightMargin
	return Step{
		Kind:     StepCount,
		Text:     count,
		X:        x,
		Y:        (s.LabelBackgroundHeight - s.CountFontSize) / 2,
		MaxWidth: labelWidth - x,
	}
}

// listLineStep places the n-th line below the title row of a list label.
// Lines that would start below the last full text row are pulled back
// inside the bitmap.
func listLineStep(s LabelSpec, dims LabelDimensions, kind StepKind, text string, n int) Step {
	offset := (s.LabelBackgroundHeight - s.TitleFontSize) / 2
	lineHeight := (dims.BitmapHeight - offset - 2*(offset+s.TitleFontSize)) / 2

	y := offset + n*(s.TitleFontSize+lineHeight)
	if limit := dims.BitmapHeight - 2*BorderSize - s.TitleFontSize; y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}

	return Step{
		Kind:     kind,
		Text:     text,
		X:        s.LeftMargin,
		Y:        y,
		MaxWidth: dims.LabelWidth - s.LeftMargin,
	}
}

func iconStep(s LabelSpec, icon image.Image) (Step, bool) {
	if icon == nil {
		return Step{}, false
	}
	w, h := icon.Bounds().Dx(), icon.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return Step{}, false
	}
	scale := float64(s.IconSize) / float64(w)
	return Step{
		Kind:  StepIcon,
		Icon:  icon,
		X:     s.LeftMargin,
		IconY: float64(s.LabelBackgroundHeight-int(math.Round(scale*float64(h)))) / 2,
		Scale: scale,
	}, true
}
