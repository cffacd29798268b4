package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// FileOutputHandler writes every label as a PNG into dir.
type FileOutputHandler struct {
	dir string
}

func NewFileOutputHandler(dir string) (*FileOutputHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileOutputHandler{
		dir: dir,
	}, nil
}

func (f *FileOutputHandler) GetType() string {
	return "file"
}

func (f *FileOutputHandler) Output(name string, img image.Image) error {
	path := filepath.Join(f.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return nil
}

func (f *FileOutputHandler) Close() error {
	return nil
}

// encodePNG returns img as PNG bytes.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
