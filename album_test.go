package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"albumlabel/label"

	"github.com/google/go-cmp/cmp"
)

func makePhotoTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{
		"DCIM/Camera/IMG_0001.jpg",
		"DCIM/Camera/IMG_0002.JPG",
		"DCIM/Camera/notes.txt",
		"Pictures/Vacation 2023/beach.png",
		"Pictures/Vacation 2023/.thumbs/beach.png",
		"Pictures/empty/readme.md",
		"Cloud/Shared/party.webp",
		".hidden/secret.jpg",
	} {
		writeFile(t, filepath.Join(root, name), "x")
	}
	newest := time.Date(2023, 8, 14, 10, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(root, "DCIM/Camera/IMG_0002.JPG"), newest, newest); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(filepath.Join(root, "DCIM/Camera/IMG_0001.jpg"), newest.Add(-time.Hour), newest.Add(-time.Hour)); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestScanAlbums(t *testing.T) {
	root := makePhotoTree(t)

	albums, err := ScanAlbums(root)
	if err != nil {
		t.Fatalf("ScanAlbums: %v", err)
	}

	type summary struct {
		Title, Path string
		Count       int
		Source      label.SourceType
	}
	var got []summary
	for _, a := range albums {
		got = append(got, summary{a.Title, filepath.ToSlash(a.RelPath), a.Count, a.Source})
	}
	want := []summary{
		{"Shared", "Cloud/Shared", 1, label.SourceCloud},
		{"Camera", "DCIM/Camera", 2, label.SourceCamera},
		{"Vacation 2023", "Pictures/Vacation 2023", 1, label.SourceLocal},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanAlbums mismatch (-want +got):\n%s", diff)
	}

	camera := albums[1]
	req := camera.Request(label.ViewList, "2006-01-02")
	if req.Count != "2" || req.FileDate != "2023-08-14" || req.SourceType != label.SourceCamera {
		t.Errorf("Request = %+v", req)
	}
}

func TestScanAlbumsMissingRoot(t *testing.T) {
	if _, err := ScanAlbums(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Errorf("ScanAlbums on a missing directory returned no error")
	}
}

func TestLabelFileName(t *testing.T) {
	tests := []struct {
		i     int
		title string
		want  string
	}{
		{0, "Vacation 2023", "000-vacation-2023.png"},
		{12, "Été!", "012-t.png"},
		{3, "???", "003-album.png"},
	}
	for _, tt := range tests {
		if got := labelFileName(tt.i, &Album{Title: tt.title}); got != tt.want {
			t.Errorf("labelFileName(%d, %q) = %q, want %q", tt.i, tt.title, got, tt.want)
		}
	}
}
