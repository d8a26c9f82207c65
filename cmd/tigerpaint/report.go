package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ughe/tigerpaint/imagestore"
	"github.com/ughe/tigerpaint/report"
)

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report src result out.pdf",
		Short: "Write a PDF placing a repainted image beside its source",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.reportCommand(cmd, args[0], args[1], args[2])
		},
	}
}

func (a *app) reportCommand(cmd *cobra.Command, srcName, dstName, pdf string) error {
	ctx := cmd.Context()
	var imgs [2]struct {
		name string
		buf  []byte
	}
	imgs[0].name, imgs[1].name = srcName, dstName
	for i := range imgs {
		buf, err := a.store.Get(ctx, imgs[i].name)
		if err != nil {
			return err
		}
		imgs[i].buf = buf
	}
	src, err := imagestore.Decode(imgs[0].buf)
	if err != nil {
		return fmt.Errorf("%v: %w", srcName, err)
	}
	dst, err := imagestore.Decode(imgs[1].buf)
	if err != nil {
		return fmt.Errorf("%v: %w", dstName, err)
	}
	b := src.Bounds()
	return a.writeReport(cmd, src, dst, pdf, report.Summary{
		Source: filepath.Base(srcName),
		Order:  string(a.cfg.Order),
		Pixels: b.Dx() * b.Dy(),
	})
}
