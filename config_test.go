package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"albumlabel/label"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "phone.json"), `{
		"slot_width": 360,
		"slot_height": 120,
		"grouping": "list",
		"font_sizes": {"title": 22, "count": 16},
		"colors": {"title": "#ff0000", "background": "#00000080"},
		"label_background_height": 40,
		"left_margin": 0
	}`)

	cm := NewConfigManager(dir)
	config, err := cm.LoadConfig("phone")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := label.LabelSpec{
		TitleFontSize:         22,
		CountFontSize:         16,
		TitleColor:            color.NRGBA{255, 0, 0, 255},
		CountColor:            color.NRGBA{0xbd, 0xbd, 0xbd, 255},
		BackgroundColor:       color.NRGBA{0, 0, 0, 0x80},
		LabelBackgroundHeight: 40,
		IconSize:              32,
		LeftMargin:            0,
		TitleRightMargin:      60,
	}
	if diff := cmp.Diff(want, config.ToSpec("")); diff != "" {
		t.Errorf("ToSpec mismatch (-want +got):\n%s", diff)
	}
	if config.Name != "phone" {
		t.Errorf("Name = %q, want phone", config.Name)
	}
	if config.GetGrouping() != label.GroupingList || config.GetView() != label.ViewList {
		t.Errorf("grouping/view = %s/%s, want list/list", config.GetGrouping(), config.GetView())
	}

	again, err := cm.LoadConfig("phone")
	if err != nil || again != config {
		t.Errorf("second LoadConfig did not return the cached config")
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tablet.yaml"), `
name: Tablet
slot_width: 480
view: time
icon_size: 40
workers: 8
`)

	config, err := NewConfigManager(dir).LoadConfig("tablet")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Name != "Tablet" || config.GetSlotWidth() != 480 || config.GetSlotHeight() != 480 {
		t.Errorf("config = %+v", config)
	}
	if config.GetView() != label.ViewTimeGrouped {
		t.Errorf("GetView = %s, want time", config.GetView())
	}
	if config.GetIconSize() != 40 || config.GetWorkers() != 8 {
		t.Errorf("icon size %d, workers %d", config.GetIconSize(), config.GetWorkers())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.json"), `{"slot_width": `)

	cm := NewConfigManager(dir)
	if _, err := cm.LoadConfig("missing"); err == nil {
		t.Errorf("LoadConfig(missing) returned no error")
	}
	if _, err := cm.LoadConfig("broken"); err == nil {
		t.Errorf("LoadConfig(broken) returned no error")
	}
}

func TestListConfigs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.yaml", "a.yml", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "{}")
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := NewConfigManager(dir).ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("ListConfigs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.Color
	}{
		{"#336699", color.NRGBA{0x33, 0x66, 0x99, 0xff}},
		{"336699cc", color.NRGBA{0x33, 0x66, 0x99, 0xcc}},
		{"", color.RGBA{255, 255, 255, 255}},
		{"#12345", color.RGBA{255, 255, 255, 255}},
		{"#zzzzzz", color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfigBuildsRenderer(t *testing.T) {
	renderer, err := newRenderer(DefaultConfig())
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	want := label.LabelDimensions{LabelWidth: 320, BitmapWidth: 320, BitmapHeight: 48}
	if diff := cmp.Diff(want, renderer.Dimensions()); diff != "" {
		t.Errorf("Dimensions mismatch (-want +got):\n%s", diff)
	}
}
