package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"albumlabel/label"

	"github.com/karrick/godirwalk"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
}

// Album is a directory holding at least one image.
type Album struct {
	Title   string           `json:"title"`
	RelPath string           `json:"path"`
	InPath  string           `json:"-"`
	Count   int              `json:"count"`
	Newest  time.Time        `json:"newest"`
	Source  label.SourceType `json:"-"`
	Kind    string           `json:"source"`
}

// Request builds the label request of the album for view.
func (a *Album) Request(view label.ViewType, dateFormat string) label.LabelRequest {
	return label.LabelRequest{
		Title:      a.Title,
		Count:      strconv.Itoa(a.Count),
		FilePath:   a.RelPath,
		FileDate:   a.Newest.Format(dateFormat),
		SourceType: a.Source,
		ViewType:   view,
	}
}

// albumSource guesses the origin of an album from its path.
func albumSource(relPath string) label.SourceType {
	for _, part := range strings.Split(filepath.ToSlash(relPath), "/") {
		switch strings.ToLower(part) {
		case "dcim", "camera":
			return label.SourceCamera
		case "cloud", "picasa":
			return label.SourceCloud
		}
	}
	return label.SourceLocal
}

// ScanAlbums walks root and returns its albums sorted by path.
func ScanAlbums(root string) ([]*Album, error) {
	albums := make(map[string]*Album)

	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && strings.HasPrefix(filepath.Base(path), ".") {
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}
			if de.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			fi, err := os.Stat(path)
			if err != nil {
				logWarnModule("scan", "stat failure: %v", err)
				return nil
			}

			dir := filepath.Dir(path)
			a, exists := albums[dir]
			if !exists {
				rel, err := filepath.Rel(root, dir)
				if err != nil {
					return err
				}
				title := filepath.Base(dir)
				if rel == "." {
					title = filepath.Base(root)
				}
				a = &Album{
					Title:   title,
					RelPath: rel,
					InPath:  dir,
					Source:  albumSource(rel),
				}
				a.Kind = a.Source.String()
				albums[dir] = a
			}
			a.Count++
			if fi.ModTime().After(a.Newest) {
				a.Newest = fi.ModTime()
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	result := make([]*Album, 0, len(albums))
	for _, a := range albums {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RelPath < result[j].RelPath
	})

	logInfoModule("scan", "Found %d albums in %s", len(result), root)
	return result, nil
}

// labelFileName is the output name of the i-th album label.
func labelFileName(i int, a *Album) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return '-'
	}, a.Title)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "album"
	}
	return fmt.Sprintf("%03d-%s.png", i, slug)
}
