package main

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderAlbums(t *testing.T) {
	albums, err := ScanAlbums(makePhotoTree(t))
	if err != nil {
		t.Fatalf("ScanAlbums: %v", err)
	}

	config := DefaultConfig()
	config.Grouping = "list"
	config.SlotWidth, config.SlotHeight = 500, 100
	renderer, err := newRenderer(config)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}

	outDir := filepath.Join(t.TempDir(), "labels")
	handler, err := NewFileOutputHandler(outDir)
	if err != nil {
		t.Fatalf("NewFileOutputHandler: %v", err)
	}
	out := NewOutputManager()
	out.AddHandler(handler)

	if err := renderAlbums(context.Background(), renderer, albums, config, out); err != nil {
		t.Fatalf("renderAlbums: %v", err)
	}

	for i, a := range albums {
		f, err := os.Open(filepath.Join(outDir, labelFileName(i, a)))
		if err != nil {
			t.Fatalf("label %d missing: %v", i, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("label %d: %v", i, err)
		}
		if got := img.Bounds().Size(); got != image.Pt(400, 96) {
			t.Errorf("label %d size = %v, want 400x96", i, got)
		}
	}
}

func TestRenderAlbumsCancelled(t *testing.T) {
	albums, err := ScanAlbums(makePhotoTree(t))
	if err != nil {
		t.Fatalf("ScanAlbums: %v", err)
	}
	config := DefaultConfig()
	renderer, err := newRenderer(config)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}

	outDir := t.TempDir()
	handler, err := NewFileOutputHandler(outDir)
	if err != nil {
		t.Fatal(err)
	}
	out := NewOutputManager()
	out.AddHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := renderAlbums(ctx, renderer, albums, config, out); !errors.Is(err, context.Canceled) {
		t.Errorf("renderAlbums error = %v, want context.Canceled", err)
	}
	entries, _ := os.ReadDir(outDir)
	if len(entries) != 0 {
		t.Errorf("cancelled run wrote %d labels", len(entries))
	}
}

type failingHandler struct{}

func (failingHandler) Output(string, image.Image) error { return errors.New("disk full") }
func (failingHandler) Close() error                     { return nil }
func (failingHandler) GetType() string                  { return "failing" }

func TestOutputManager(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	only := NewOutputManager()
	only.AddHandler(failingHandler{})
	if err := only.Output("a.png", img); err == nil {
		t.Errorf("Output with only failing handlers returned no error")
	}

	dir := t.TempDir()
	handler, err := NewFileOutputHandler(dir)
	if err != nil {
		t.Fatal(err)
	}
	mixed := NewOutputManager()
	mixed.AddHandler(failingHandler{})
	mixed.AddHandler(handler)
	if err := mixed.Output("a.png", img); err != nil {
		t.Errorf("Output with one working handler = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.png")); err != nil {
		t.Errorf("file handler did not write: %v", err)
	}
	mixed.Close()
}
