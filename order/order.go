// Package order chooses the sequence in which target pixels are repainted.
// Pixels painted early get the closest colours; later ones take what is left,
// so the order shapes where the error of the image ends up.
package order

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/ughe/tigerpaint/bresenham"
)

type Strategy string

const (
	// Columns walks x outer, y inner from the top left corner
	Columns Strategy = "columns"
	Rows    Strategy = "rows"
	// Shuffle is a seeded random permutation
	Shuffle Strategy = "shuffle"
	// Rays traces lines from the centre out to every border pixel
	Rays Strategy = "rays"
)

// Strategies lists every supported Strategy
var Strategies = []Strategy{Columns, Rows, Shuffle, Rays}

func (s Strategy) Valid() bool {
	for _, v := range Strategies {
		if s == v {
			return true
		}
	}
	return false
}

// Targets returns every pixel of bounds exactly once in the order given by
// s. seed is only used by Shuffle.
func Targets(bounds image.Rectangle, s Strategy, seed int64) ([]image.Point, error) {
	switch s {
	case Columns:
		return columns(bounds), nil
	case Rows:
		return rows(bounds), nil
	case Shuffle:
		pts := columns(bounds)
		r := rand.New(rand.NewSource(seed))
		r.Shuffle(len(pts), func(i, j int) {
			pts[i], pts[j] = pts[j], pts[i]
		})
		return pts, nil
	case Rays:
		return rays(bounds), nil
	default:
		return nil, fmt.Errorf("Unknown order %q. Expected one of %v", s, Strategies)
	}
}

func columns(b image.Rectangle) []image.Point {
	pts := make([]image.Point, 0, b.Dx()*b.Dy())
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			pts = append(pts, image.Point{x, y})
		}
	}
	return pts
}

func rows(b image.Rectangle) []image.Point {
	pts := make([]image.Point, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pts = append(pts, image.Point{x, y})
		}
	}
	return pts
}

// Index maps a pixel of b to its column major offset
func Index(b image.Rectangle, p image.Point) uint32 {
	return uint32((p.X-b.Min.X)*b.Dy() + (p.Y - b.Min.Y))
}

func rays(b image.Rectangle) []image.Point {
	if b.Empty() {
		return nil
	}
	pts := make([]image.Point, 0, b.Dx()*b.Dy())
	seen := roaring.New()
	add := func(p image.Point) {
		if i := Index(b, p); !seen.Contains(i) {
			seen.Add(i)
			pts = append(pts, p)
		}
	}
	centre := image.Point{(b.Min.X + b.Max.X - 1) / 2, (b.Min.Y + b.Max.Y - 1) / 2}
	bresenham.Rect(b.Min, b.Dx()-1, b.Dy()-1, func(edge image.Point) {
		bresenham.Line(centre, edge, add)
	})
	// Rays can step diagonally past a pixel; pick up the gaps
	for _, p := range columns(b) {
		add(p)
	}
	return pts
}
