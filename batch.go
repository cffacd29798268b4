package main

import (
	"context"
	"fmt"
	"time"

	"albumlabel/label"

	"golang.org/x/sync/errgroup"
)

// renderAlbums renders one label per album on up to workers goroutines and
// hands each to out. Labels of a cancelled run are dropped, not written.
func renderAlbums(ctx context.Context, renderer *label.LabelRenderer, albums []*Album,
	config *LabelConfig, out *OutputManager) error {

	start := time.Now()
	view := config.GetView()
	dateFormat := config.GetDateFormat()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.GetWorkers())

	for i, a := range albums {
		i, a := i, a
		g.Go(func() error {
			req := a.Request(view, dateFormat)
			job := renderer.RequestLabelWithFile(req.Title, req.Count, req.FilePath, req.FileDate, req.SourceType, req.ViewType)
			img := job.Run(label.ContextJob(gctx))
			defer renderer.RecycleLabel(img)

			if err := gctx.Err(); err != nil {
				return err
			}
			if err := out.Output(labelFileName(i, a), img); err != nil {
				return fmt.Errorf("failed to write label for %s: %w", a.RelPath, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logInfoModule("render", "Rendered %d labels (%s view) in %v", len(albums), view, time.Since(start))
	return nil
}
