package kdtree

import "math"

// Rect is an axis-aligned hyper-rectangle bounding the points of a subtree.
type Rect struct {
	Min, Max Point
}

// NewRect copies min and max into a new Rect. The caller passes the minimal
// and maximal corner; they are not reordered.
func NewRect(min, max Point) (Rect, error) {
	if len(min) != len(max) {
		return Rect{}, mismatch(len(min), len(max))
	}
	return Rect{Min: min.Clone(), Max: max.Clone()}, nil
}

// Infinite returns the region spanning every representable coordinate
func Infinite(k int) Rect {
	r := Rect{Min: make(Point, k), Max: make(Point, k)}
	for i := 0; i < k; i++ {
		r.Min[i] = math.MinInt
		r.Max[i] = math.MaxInt
	}
	return r
}

func (r Rect) Dim() int {
	return len(r.Min)
}

// Closest returns the point inside r nearest to t. No point in r can be
// closer to t than the returned point.
func (r Rect) Closest(t Point) (Point, error) {
	if len(t) != len(r.Min) {
		return nil, mismatch(len(r.Min), len(t))
	}
	p := make(Point, len(t))
	for i, c := range t {
		p[i] = clamp(c, r.Min[i], r.Max[i])
	}
	return p, nil
}

// sqdistTo is Closest followed by distance without allocating
func (r Rect) sqdistTo(t Point) dist {
	var d dist
	for i, c := range t {
		d.addSq(absDiff(c, clamp(c, r.Min[i], r.Max[i])))
	}
	return d
}

func clamp(c, lo, hi int) int {
	if c < lo {
		return lo
	}
	if c > hi {
		return hi
	}
	return c
}
