package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ughe/tigerpaint/palette"
)

type paletteStats struct {
	Requested int `json:"requested"`
	Colors    int `json:"colors"`
	Depth     int `json:"depth"`
	PerAxis   int `json:"per_axis"`
}

func newPaletteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "palette count",
		Short: "Generate a palette of about count colours and print its shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("Invalid count %q: %w", args[0], err)
			}
			return a.paletteCommand(cmd, count)
		},
	}
}

func (a *app) paletteCommand(cmd *cobra.Command, count int) error {
	colors, err := palette.Generate(count)
	if err != nil {
		return err
	}
	levels := make(map[uint8]bool)
	for _, c := range colors.All() {
		levels[c.R] = true
	}
	stats := paletteStats{
		Requested: count,
		Colors:    colors.Size(),
		Depth:     colors.Depth(),
		PerAxis:   len(levels),
	}
	out := cmd.OutOrStdout()
	if a.cfg.Log.JSON {
		return json.NewEncoder(out).Encode(stats)
	}
	fmt.Fprintf(out, "colors:   %d (requested %d)\nper axis: %d\ndepth:    %d\n",
		stats.Colors, stats.Requested, stats.PerAxis, stats.Depth)
	return nil
}
