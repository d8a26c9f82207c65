// Package repaint assigns every target pixel of an image the closest palette
// colour that has not been used yet.
//
// One worker goroutine owns the palette tree for the whole run and performs
// the nearest, delete and rebuild steps in sequence. A second goroutine only
// reads what the worker publishes: an atomic pixel counter and, at each
// rebuild boundary, a copy of the completed pixel bitmap.
package repaint

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/ughe/tigerpaint/kdtree"
	"github.com/ughe/tigerpaint/order"
	"github.com/ughe/tigerpaint/palette"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var ErrPaletteExhausted = errors.New("repaint: palette exhausted")

type Config struct {
	// RebuildEvery is the number of pixels between palette rebuilds. 0
	// disables rebuilding.
	RebuildEvery int
	// ReportEvery is the number of pixels between counter updates
	ReportEvery int
	// ReportInterval is the period of progress reports
	ReportInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		RebuildEvery:   2500,
		ReportEvery:    100,
		ReportInterval: time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RebuildEvery < 0 {
		c.RebuildEvery = 0
	}
	if c.ReportEvery <= 0 {
		c.ReportEvery = d.ReportEvery
	}
	if c.ReportInterval <= 0 {
		c.ReportInterval = d.ReportInterval
	}
	return c
}

type Task struct {
	src     image.Image
	targets []image.Point
	colors  *kdtree.Tree[color.RGBA]
	cfg     Config
	logger  *slog.Logger

	// OnProgress is called from the observer goroutine. It must not touch
	// the palette.
	OnProgress func(Progress)

	start      time.Time
	done       atomic.Int64
	rebuilds   atomic.Int64
	mu         sync.Mutex
	completed  *roaring.Bitmap
	rebuildLog rate.Sometimes
}

// NewTask prepares a run repainting targets of src with colors. The task
// takes ownership of colors.
func NewTask(src image.Image, targets []image.Point, colors *kdtree.Tree[color.RGBA], cfg Config, logger *slog.Logger) *Task {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Task{
		src:        src,
		targets:    targets,
		colors:     colors,
		cfg:        cfg.withDefaults(),
		logger:     logger,
		completed:  roaring.New(),
		rebuildLog: rate.Sometimes{First: 3, Interval: 10 * time.Second},
	}
}

// Palette returns the colours left over. Only valid once Run has returned.
func (t *Task) Palette() *kdtree.Tree[color.RGBA] {
	return t.colors
}

// Run repaints the targets and returns the new image. If ctx is cancelled
// the worker stops between pixels and Run returns the partial image with
// the context's error.
func (t *Task) Run(ctx context.Context) (*image.RGBA, error) {
	t.start = time.Now()
	t.logger.Info("repainting", "pixels", len(t.targets), "colors", t.colors.Size(),
		"rebuild_every", t.cfg.RebuildEvery)

	var dst *image.RGBA
	finished := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(finished)
		var err error
		dst, err = t.paint(gctx)
		return err
	})
	g.Go(func() error {
		t.observe(gctx, finished)
		return nil
	})
	err := g.Wait()
	if err != nil {
		t.logger.Warn("repaint stopped", "done", t.done.Load(), "error", err)
	} else {
		t.logger.Info("repaint finished", "elapsed", time.Since(t.start), "rebuilds", t.rebuilds.Load())
	}
	return dst, err
}

func (t *Task) paint(ctx context.Context) (*image.RGBA, error) {
	bounds := t.src.Bounds()
	dst := image.NewRGBA(bounds)
	completed := roaring.New()
	colors := t.colors
	defer func() {
		t.colors = colors
		t.publish(completed)
	}()

	for i, p := range t.targets {
		if err := ctx.Err(); err != nil {
			return dst, err
		}
		want := color.NRGBAModel.Convert(t.src.At(p.X, p.Y)).(color.NRGBA)
		key := kdtree.Point{int(want.R), int(want.G), int(want.B)}
		nb, err := colors.NearestNeighbor(key)
		if errors.Is(err, kdtree.ErrEmptyTree) {
			return dst, fmt.Errorf("%w after %d of %d pixels", ErrPaletteExhausted, i, len(t.targets))
		} else if err != nil {
			return dst, err
		}
		if err := colors.Delete(nb.Point); err != nil {
			return dst, err
		}
		dst.SetRGBA(p.X, p.Y, nb.Value)
		completed.Add(order.Index(bounds, p))

		n := i + 1
		if n%t.cfg.ReportEvery == 0 {
			t.done.Store(int64(n))
		}
		if t.cfg.RebuildEvery > 0 && n%t.cfg.RebuildEvery == 0 {
			if colors, err = colors.Rebuild(nb.Point); err != nil {
				return dst, err
			}
			t.rebuilds.Add(1)
			t.publish(completed)
			t.rebuildLog.Do(func() {
				t.logger.Debug("rebuilt palette", "done", n, "colors", colors.Size(), "depth", colors.Depth(),
					"anchor", palette.Color(nb.Point))
			})
		}
	}
	t.done.Store(int64(len(t.targets)))
	return dst, nil
}

// publish hands the observer a copy of the completed set
func (t *Task) publish(completed *roaring.Bitmap) {
	snapshot := completed.Clone()
	t.mu.Lock()
	t.completed = snapshot
	t.mu.Unlock()
}

func (t *Task) observe(ctx context.Context, finished <-chan struct{}) {
	ticker := time.NewTicker(t.cfg.ReportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-finished:
			t.report(t.Progress())
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p := t.Progress()
			t.logger.Info("progress", "done", p.Done, "total", p.Total,
				"percent", fmt.Sprintf("%.1f", p.Percent()), "remaining", p.Remaining().Round(time.Second))
			t.report(p)
		}
	}
}

func (t *Task) report(p Progress) {
	if t.OnProgress != nil {
		t.OnProgress(p)
	}
}

// Progress returns the last state the worker published
func (t *Task) Progress() Progress {
	t.mu.Lock()
	completed := t.completed
	t.mu.Unlock()
	return Progress{
		Done:      int(t.done.Load()),
		Total:     len(t.targets),
		Rebuilds:  int(t.rebuilds.Load()),
		Elapsed:   time.Since(t.start),
		bounds:    t.src.Bounds(),
		completed: completed,
	}
}
