package label

import (
	"fmt"
	"image/color"
)

// LabelSpec describes the fonts, colours and metrics shared by every label
// of a screen. All sizes are pixels.
type LabelSpec struct {
	TitleFontSize         int
	CountFontSize         int
	TitleColor            color.Color
	CountColor            color.Color
	BackgroundColor       color.Color
	LabelBackgroundHeight int
	IconSize              int
	LeftMargin            int
	TitleRightMargin      int

	// FontPath points at a TrueType/OpenType file. Empty uses the bundled Go font.
	FontPath  string
	TitleBold bool
}

func (s LabelSpec) Validate() error {
	if s.TitleFontSize <= 0 {
		return fmt.Errorf("title font size must be positive, got %d", s.TitleFontSize)
	}
	if s.CountFontSize <= 0 {
		return fmt.Errorf("count font size must be positive, got %d", s.CountFontSize)
	}

	fields := []struct {
		name  string
		value int
	}{
		{"label background height", s.LabelBackgroundHeight},
		{"icon size", s.IconSize},
		{"left margin", s.LeftMargin},
		{"title right margin", s.TitleRightMargin},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

func (s LabelSpec) titleColor() color.Color {
	if s.TitleColor == nil {
		return color.White
	}
	return s.TitleColor
}

func (s LabelSpec) countColor() color.Color {
	if s.CountColor == nil {
		return color.White
	}
	return s.CountColor
}

func (s LabelSpec) backgroundColor() color.Color {
	if s.BackgroundColor == nil {
		return color.Black
	}
	return s.BackgroundColor
}
