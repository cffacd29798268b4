package label

import "sync"

// BorderSize is the inset kept around the label on every side.
const BorderSize = 0

// LabelDimensions is a snapshot of the current label geometry.
type LabelDimensions struct {
	LabelWidth   int
	BitmapWidth  int
	BitmapHeight int
}

type dimensions struct {
	mutex     sync.RWMutex
	slotWidth int
	mode      GroupingMode
	set       bool
	current   LabelDimensions
}

// update recomputes the geometry for a slot of width x height. It reports
// false when width and mode match the previous call.
func (d *dimensions) update(width, height int, mode GroupingMode, backgroundHeight int) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.set && d.slotWidth == width && d.mode == mode {
		return false
	}
	d.set = true
	d.slotWidth = width
	d.mode = mode

	borders := 2 * BorderSize
	if mode == GroupingList {
		labelWidth := width - height
		if labelWidth < 0 {
			labelWidth = 0
		}
		d.current = LabelDimensions{
			LabelWidth:   labelWidth,
			BitmapWidth:  labelWidth + borders,
			BitmapHeight: backgroundHeight*2 + borders,
		}
	} else {
		if width < 0 {
			width = 0
		}
		d.current = LabelDimensions{
			LabelWidth:   width,
			BitmapWidth:  width + borders,
			BitmapHeight: backgroundHeight + borders,
		}
	}
	return true
}

func (d *dimensions) snapshot() LabelDimensions {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.current
}
