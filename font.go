package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/karrick/godirwalk"
)

var errFontFound = errors.New("font found")

var (
	systemFontPath   string
	systemFontMutex  sync.RWMutex
	systemFontLoaded bool
)

// resolveFontPath maps the configured font to a file. Empty means the
// bundled font, "auto" searches the system font directories.
func resolveFontPath(configured string) string {
	switch configured {
	case "":
		return ""
	case "auto":
		path := findSystemFont()
		if path == "" {
			logWarnModule("font", "No suitable font found, using bundled font")
		} else {
			logInfoModule("font", "Using font: %s", filepath.Base(path))
		}
		return path
	}
	return configured
}

func findSystemFont() string {
	systemFontMutex.RLock()
	if systemFontLoaded {
		path := systemFontPath
		systemFontMutex.RUnlock()
		return path
	}
	systemFontMutex.RUnlock()

	systemFontMutex.Lock()
	defer systemFontMutex.Unlock()

	if systemFontLoaded {
		return systemFontPath
	}

	fontFiles := []string{
		"Roboto-Regular.ttf",
		"NotoSans-Regular.ttf",
		"NotoSansCJK-Regular.ttc",
		"wqy-microhei.ttc",
		"Ubuntu-Regular.ttf",
		"DejaVuSans.ttf",
		"LiberationSans-Regular.ttf",
		"arial.ttf",
		"Arial.ttf",
		"FreeSans.ttf",
	}

	for _, fontFile := range fontFiles {
		if path := findFontByName(fontDirs(), fontFile); path != "" {
			systemFontPath = path
			break
		}
	}
	systemFontLoaded = true

	return systemFontPath
}

func fontDirs() []string {
	dirs := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
		"/System/Library/Fonts",
		"/Library/Fonts",
		`C:\Windows\Fonts`,
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".fonts"),
			filepath.Join(home, ".local", "share", "fonts"))
	}
	return dirs
}

// findFontByName returns the first loadable font file named fontName below
// any of dirs.
func findFontByName(dirs []string, fontName string) string {
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		var found string
		err := godirwalk.Walk(dir, &godirwalk.Options{
			Unsorted: true,
			Callback: func(path string, de *godirwalk.Dirent) error {
				if de.IsDir() || !strings.EqualFold(filepath.Base(path), fontName) {
					return nil
				}
				if _, err := gg.LoadFontFace(path, 16); err != nil {
					logDebug("Skipping unreadable font %s: %v", path, err)
					return nil
				}
				found = path
				return errFontFound
			},
			ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
				return godirwalk.SkipNode
			},
		})
		if found != "" {
			return found
		}
		if err != nil && !errors.Is(err, errFontFound) {
			logDebug("Font search in %s failed: %v", dir, err)
		}
	}
	return ""
}
