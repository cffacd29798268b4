package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch rescans root whenever it or one of its albums changes and calls
// rebuild with the new album list. It returns when ctx is done.
func watch(ctx context.Context, root string, albums []*Album, rebuild func([]*Album)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	add := func(albums []*Album) {
		dirs := []string{root}
		for _, a := range albums {
			dirs = append(dirs, a.InPath)
		}
		slices.Sort(dirs)
		dirs = slices.Compact(dirs)

		for _, d := range dirs {
			if err := w.Add(d); err != nil {
				logWarnModule("watch", "Cannot watch %s: %v", d, err)
			}
		}
		logInfoModule("watch", "Watching %d dirs", len(dirs))
	}
	add(albums)

	// Bursts of events, like a copied folder, trigger one rescan.
	const settle = 500 * time.Millisecond
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			logDebug("event: %v", event)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				timer.Reset(settle)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logWarnModule("watch", "Watcher error: %v", err)
		case <-timer.C:
			updated, err := ScanAlbums(root)
			if err != nil {
				logErrorModule("watch", "Rescan failed: %v", err)
				continue
			}
			add(updated)
			rebuild(updated)
		}
	}
}
