package kdtree

import (
	"math"
	"strconv"
	"strings"
)

// Point is a k-dimensional integer coordinate. A Point stored in a Tree is
// never modified.
type Point []int

// NewPoint returns a Point holding a copy of coords
func NewPoint(coords ...int) Point {
	p := make(Point, len(coords))
	copy(p, coords)
	return p
}

func (p Point) Dim() int {
	return len(p)
}

// Clone returns an independent copy of p
func (p Point) Clone() Point {
	return NewPoint(p...)
}

// Equal reports whether all coordinates of p and q match
func (p Point) Equal(q Point) (bool, error) {
	if len(p) != len(q) {
		return false, mismatch(len(p), len(q))
	}
	return p.equal(q), nil
}

// SqDist returns the squared Euclidean distance between p and q, saturated
// at math.MaxInt64 when it does not fit
func (p Point) SqDist(q Point) (int64, error) {
	if len(p) != len(q) {
		return 0, mismatch(len(p), len(q))
	}
	return sqdist(p, q), nil
}

// Dist returns the Euclidean distance between p and q
func (p Point) Dist(q Point) (float64, error) {
	if len(p) != len(q) {
		return 0, mismatch(len(p), len(q))
	}
	return math.Sqrt(distance(p, q).float64()), nil
}

func (p Point) String() string {
	s := make([]string, len(p))
	for i, c := range p {
		s[i] = strconv.Itoa(c)
	}
	return "(" + strings.Join(s, ", ") + ")"
}

// Unchecked variants. Callers guarantee len(p) == len(q)

func (p Point) equal(q Point) bool {
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func sqdist(p, q Point) int64 {
	return distance(p, q).int64()
}
