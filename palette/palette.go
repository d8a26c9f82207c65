// Package palette builds the set of unique colours an image is repainted with.
package palette

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ughe/tigerpaint/kdtree"
)

// MaxColors is the largest palette the channel grid can hold
const MaxColors = 255 * 255 * 255

// DefaultAccuracy is the number of palette colours per target pixel. More
// colours give a closer match and a slower run.
const DefaultAccuracy = 2.0

var ErrSize = errors.New("palette: size out of range")

// Key is the point a colour is indexed by
func Key(c color.RGBA) kdtree.Point {
	return kdtree.Point{int(c.R), int(c.G), int(c.B)}
}

// Color is the inverse of Key
func Color(p kdtree.Point) color.RGBA {
	return color.RGBA{uint8(p[0]), uint8(p[1]), uint8(p[2]), 255}
}

// Size returns the palette size for repainting bounds with accuracy colours
// per pixel, capped at MaxColors
func Size(bounds image.Rectangle, accuracy float64) int {
	n := float64(bounds.Dx()*bounds.Dy()) * accuracy
	if n > MaxColors {
		return MaxColors
	}
	return int(n)
}

// Generate returns a tree of roughly count colours spread on an even grid
// over each channel. Grid points that truncate to the same colour are kept
// once, so the result may hold fewer than count colours.
func Generate(count int) (*kdtree.Tree[color.RGBA], error) {
	if count < 1 || count > MaxColors {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrSize, count, MaxColors)
	}
	perColor := math.Cbrt(float64(count))
	if r := math.Round(perColor); math.Abs(perColor-r) < 1e-9 {
		perColor = r
	}
	step := 255 / perColor

	seen := make(map[color.RGBA]bool)
	var es []kdtree.Entry[color.RGBA]
	for r := 0.0; r < 255; r += step {
		for g := 0.0; g < 255; g += step {
			for b := 0.0; b < 255; b += step {
				c := color.RGBA{uint8(r), uint8(g), uint8(b), 255}
				if seen[c] {
					continue
				}
				seen[c] = true
				es = append(es, kdtree.Entry[color.RGBA]{Point: Key(c), Value: c})
			}
		}
	}
	return kdtree.Build(3, es)
}
