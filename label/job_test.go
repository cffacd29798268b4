package label

import (
	"context"
	"testing"
)

func TestContextJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	jc := ContextJob(ctx)
	if jc.IsCancelled() {
		t.Errorf("IsCancelled before cancel = true")
	}
	cancel()
	if !jc.IsCancelled() {
		t.Errorf("IsCancelled after cancel = false")
	}
	if Background.IsCancelled() {
		t.Errorf("Background reports cancellation")
	}
}

func TestParseNames(t *testing.T) {
	for _, s := range []SourceType{SourceLocal, SourceCloud, SourceMTP, SourceCamera} {
		if got := ParseSourceType(s.String()); got != s {
			t.Errorf("ParseSourceType(%q) = %s", s.String(), got)
		}
	}
	if got := ParseSourceType("unknown"); got != SourceNotCategorized {
		t.Errorf("ParseSourceType(unknown) = %s", got)
	}
	for _, v := range []ViewType{ViewGrid, ViewTimeGrouped, ViewList} {
		if got := ParseViewType(v.String()); got != v {
			t.Errorf("ParseViewType(%q) = %s", v.String(), got)
		}
	}
	if got := ParseGroupingMode("list"); got != GroupingList {
		t.Errorf("ParseGroupingMode(list) = %s", got)
	}
}
