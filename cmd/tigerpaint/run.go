package main

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/ughe/tigerpaint/imagestore"
	"github.com/ughe/tigerpaint/order"
	"github.com/ughe/tigerpaint/palette"
	"github.com/ughe/tigerpaint/repaint"
	"github.com/ughe/tigerpaint/report"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] src dst",
		Short: "Repaint src with unique colours and write the PNG to dst",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("order") {
				s, _ := flags.GetString("order")
				a.cfg.Order = order.Strategy(s)
			}
			if flags.Changed("seed") {
				a.cfg.Seed, _ = flags.GetInt64("seed")
			}
			if flags.Changed("accuracy") {
				a.cfg.Accuracy, _ = flags.GetFloat64("accuracy")
			}
			if flags.Changed("rebuild-every") {
				a.cfg.RebuildEvery, _ = flags.GetInt("rebuild-every")
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			pdf, _ := flags.GetString("report")
			return a.runCommand(cmd, args[0], args[1], pdf)
		},
	}
	cmd.Flags().String("order", "", fmt.Sprintf("Pixel order %v", order.Strategies))
	cmd.Flags().Int64("seed", 0, "Seed for the shuffle order")
	cmd.Flags().Float64("accuracy", 0, "Palette colours per pixel. More is closer and slower")
	cmd.Flags().Int("rebuild-every", 0, "Pixels between palette index rebuilds (0 disables)")
	cmd.Flags().String("report", "", "Also write a PDF comparing source and result")
	return cmd
}

// Repaints src into dst. Nothing is written if the run is interrupted
func (a *app) runCommand(cmd *cobra.Command, src, dst, pdf string) error {
	ctx := cmd.Context()
	buf, err := a.store.Get(ctx, src)
	if err != nil {
		return err
	}
	img, err := imagestore.Decode(buf)
	if err != nil {
		return fmt.Errorf("%v: %w", src, err)
	}
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return fmt.Errorf("%v: empty image", src)
	}

	a.logger.Info("generating colors", "accuracy", a.cfg.Accuracy)
	colors, err := palette.Generate(palette.Size(bounds, a.cfg.Accuracy))
	if err != nil {
		return err
	}
	size := colors.Size()
	if size < pixels {
		return fmt.Errorf("%d colours cannot cover %d pixels. Raise accuracy", size, pixels)
	}

	targets, err := order.Targets(bounds, a.cfg.Order, a.cfg.Seed)
	if err != nil {
		return err
	}
	a.logger.Info("generated", "points", len(targets), "colors", size, "order", a.cfg.Order)

	start := time.Now()
	task := repaint.NewTask(img, targets, colors, a.cfg.Repaint(), a.logger)
	result, err := task.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out, err := imagestore.EncodePNG(result)
	if err != nil {
		return err
	}
	if err := a.store.Put(ctx, dst, out); err != nil {
		return err
	}
	a.logger.Info("wrote image", "dst", dst)

	if pdf == "" {
		return nil
	}
	return a.writeReport(cmd, img, result, pdf, report.Summary{
		Source:   filepath.Base(src),
		Order:    string(a.cfg.Order),
		Palette:  size,
		Pixels:   pixels,
		Rebuilds: task.Progress().Rebuilds,
		Elapsed:  elapsed,
	})
}

func (a *app) writeReport(cmd *cobra.Command, src, dst image.Image, pdf string, s report.Summary) error {
	var buf bytes.Buffer
	if err := report.Write(&buf, src, dst, s); err != nil {
		return err
	}
	if err := a.store.Put(cmd.Context(), pdf, buf.Bytes()); err != nil {
		return err
	}
	a.logger.Info("wrote report", "pdf", pdf)
	return nil
}
