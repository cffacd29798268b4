package label

import "fmt"

// SourceType identifies where an album comes from. The values follow the
// gallery's data source numbering.
type SourceType int

const (
	SourceNotCategorized SourceType = iota
	SourceLocal
	SourceCloud
	SourceMTP
	SourceCamera
)

func (s SourceType) String() string {
	switch s {
	case SourceNotCategorized:
		return "other"
	case SourceLocal:
		return "local"
	case SourceCloud:
		return "cloud"
	case SourceMTP:
		return "mtp"
	case SourceCamera:
		return "camera"
	}
	return fmt.Sprintf("source(%d)", int(s))
}

// ParseSourceType maps a name back to a SourceType. Unknown names are not
// an error; they yield SourceNotCategorized, which carries no icon.
func ParseSourceType(name string) SourceType {
	switch name {
	case "local":
		return SourceLocal
	case "cloud", "picasa":
		return SourceCloud
	case "mtp":
		return SourceMTP
	case "camera":
		return SourceCamera
	}
	return SourceNotCategorized
}

// ViewType selects the label layout.
type ViewType int

const (
	ViewGrid ViewType = iota
	ViewTimeGrouped
	ViewList
)

func (v ViewType) String() string {
	switch v {
	case ViewGrid:
		return "grid"
	case ViewTimeGrouped:
		return "time"
	case ViewList:
		return "list"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

func ParseViewType(name string) ViewType {
	switch name {
	case "time", "time-grouped":
		return ViewTimeGrouped
	case "list":
		return ViewList
	}
	return ViewGrid
}

// GroupingMode is the album set grouping of the screen that owns the
// renderer. List grouping reserves a square thumbnail area on every row.
type GroupingMode int

const (
	GroupingGrid GroupingMode = iota
	GroupingList
)

func (m GroupingMode) String() string {
	if m == GroupingList {
		return "list"
	}
	return "grid"
}

func ParseGroupingMode(name string) GroupingMode {
	if name == "list" {
		return GroupingList
	}
	return GroupingGrid
}

// LabelRequest carries the per slot data of one label.
type LabelRequest struct {
	Title      string
	Count      string
	FilePath   string
	FileDate   string
	SourceType SourceType
	ViewType   ViewType
}
