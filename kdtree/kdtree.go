package kdtree

// k-d tree implementation adopted from Jon Bentley's 1975 paper:
// Multidimensional Binary Search Trees Used for Associative Searching
// https://dl.acm.org/doi/10.1145/361002.361007
//
// The discriminator of a node is its depth mod k. Every point in lo has
// point[d] <= node[d] and every point in hi has point[d] >= node[d]. Ties may
// sit on either side once Delete has promoted a point, so exact lookups
// explore both children when the discriminating coordinates are equal.

import (
	"fmt"
	"iter"
)

type node[V any] struct {
	point  Point
	value  V
	lo, hi *node[V]
}

// Tree is a k-d tree mapping distinct points to values. A Tree is not safe
// for concurrent use; one goroutine owns it at a time.
type Tree[V any] struct {
	root *node[V]
	k    int
	size int
}

// Entry is a point and its value.
type Entry[V any] struct {
	Point Point
	Value V
}

// Neighbor is the result of a nearest neighbor query. SqDist saturates at
// math.MaxInt64; the search itself compares exact distances.
type Neighbor[V any] struct {
	Point  Point
	Value  V
	SqDist int64
}

// New returns an empty tree over points of dimension k. Panics if k < 1.
func New[V any](k int) *Tree[V] {
	if k < 1 {
		panic(fmt.Sprintf("kdtree: invalid dimension %d", k))
	}
	return &Tree[V]{k: k}
}

// Dim returns the dimension fixed at construction
func (t *Tree[V]) Dim() int {
	return t.k
}

// Size returns the number of points in the tree
func (t *Tree[V]) Size() int {
	return t.size
}

// Depth returns the number of levels of the tree, 0 when empty
func (t *Tree[V]) Depth() int {
	return t.root.depth()
}

func (t *Tree[V]) check(p Point) error {
	if len(p) != t.k {
		return mismatch(t.k, len(p))
	}
	return nil
}

// Insert adds p with value v. Returns ErrDuplicateKey and leaves the tree
// unchanged if p is already present.
func (t *Tree[V]) Insert(p Point, v V) error {
	if err := t.check(p); err != nil {
		return err
	}
	// I1
	if t.root == nil {
		t.root = &node[V]{point: p.Clone(), value: v}
		t.size++
		return nil
	}
	if t.root.search(p, 0, t.k) != nil {
		return ErrDuplicateKey
	}
	n := t.root
	for d := 0; ; d = (d + 1) % t.k {
		// I2
		var child **node[V]
		if p[d] > n.point[d] {
			child = &n.hi
		} else {
			child = &n.lo
		}
		if *child != nil {
			// I3
			n = *child
		} else {
			// I4
			*child = &node[V]{point: p.Clone(), value: v}
			t.size++
			return nil
		}
	}
}

// Contains reports whether p is in the tree
func (t *Tree[V]) Contains(p Point) (bool, error) {
	if err := t.check(p); err != nil {
		return false, err
	}
	return t.root.search(p, 0, t.k) != nil, nil
}

// Returns the node holding p or nil. d is the discriminator of n
func (n *node[V]) search(p Point, d, k int) *node[V] {
	for n != nil {
		if n.point.equal(p) {
			return n
		}
		nd := (d + 1) % k
		switch {
		case p[d] < n.point[d]:
			n = n.lo
		case p[d] > n.point[d]:
			n = n.hi
		default:
			if m := n.lo.search(p, nd, k); m != nil {
				return m
			}
			n = n.hi
		}
		d = nd
	}
	return nil
}

// Nearest returns the value of the point closest to q
func (t *Tree[V]) Nearest(q Point) (V, error) {
	nb, err := t.NearestNeighbor(q)
	return nb.Value, err
}

// NearestNeighbor returns the point closest to q with its value and squared
// distance. Among equally close points the first one reached is returned.
// The returned Point is a copy.
func (t *Tree[V]) NearestNeighbor(q Point) (Neighbor[V], error) {
	if err := t.check(q); err != nil {
		return Neighbor[V]{}, err
	}
	if t.root == nil {
		return Neighbor[V]{}, ErrEmptyTree
	}
	s := nearest[V]{query: q, k: t.k, dist: maxDist}
	s.visit(t.root, 0, Infinite(t.k))
	return Neighbor[V]{Point: s.best.point.Clone(), Value: s.best.value, SqDist: s.dist.int64()}, nil
}

type nearest[V any] struct {
	query Point
	k     int
	best  *node[V]
	dist  dist
}

// visit searches the subtree n whose points all lie in r. r is tightened in
// place for each child and restored before returning.
func (s *nearest[V]) visit(n *node[V], d int, r Rect) {
	if d := distance(s.query, n.point); s.best == nil || d.less(s.dist) {
		s.best, s.dist = n, d
	}
	nd := (d + 1) % s.k
	split := n.point[d]
	if s.query[d] <= split {
		if n.lo != nil {
			saved := r.Max[d]
			r.Max[d] = split
			s.visit(n.lo, nd, r)
			r.Max[d] = saved
		}
		if n.hi != nil {
			saved := r.Min[d]
			r.Min[d] = split
			if r.sqdistTo(s.query).less(s.dist) {
				s.visit(n.hi, nd, r)
			}
			r.Min[d] = saved
		}
	} else {
		if n.hi != nil {
			saved := r.Min[d]
			r.Min[d] = split
			s.visit(n.hi, nd, r)
			r.Min[d] = saved
		}
		if n.lo != nil {
			saved := r.Max[d]
			r.Max[d] = split
			if r.sqdistTo(s.query).less(s.dist) {
				s.visit(n.lo, nd, r)
			}
			r.Max[d] = saved
		}
	}
}

// Delete removes p from the tree. Returns ErrNotFound and leaves the tree
// unchanged if p is not present.
func (t *Tree[V]) Delete(p Point) error {
	if err := t.check(p); err != nil {
		return err
	}
	root, ok := t.root.remove(p, 0, t.k)
	if !ok {
		return ErrNotFound
	}
	t.root = root
	t.size--
	return nil
}

// Removes p from the subtree n with discriminator d and returns the new
// subtree root
func (n *node[V]) remove(p Point, d, k int) (*node[V], bool) {
	if n == nil {
		return nil, false
	}
	if n.point.equal(p) {
		return n.unlink(d, k), true
	}
	var ok bool
	nd := (d + 1) % k
	if p[d] <= n.point[d] {
		if n.lo, ok = n.lo.remove(p, nd, k); ok {
			return n, true
		}
	}
	if p[d] >= n.point[d] {
		n.hi, ok = n.hi.remove(p, nd, k)
	}
	return n, ok
}

// Deletes the point held by n and returns what takes its place. Repeated
// deletes unbalance the tree since hi is drained before lo
func (n *node[V]) unlink(d, k int) *node[V] {
	nd := (d + 1) % k
	switch {
	case n.hi != nil:
		// D3
		q := n.hi.jmin(d, nd, k)
		n.point, n.value = q.point, q.value
		n.hi, _ = n.hi.remove(q.point, nd, k)
	case n.lo != nil:
		// D4
		q := n.lo.jmax(d, nd, k)
		n.point, n.value = q.point, q.value
		n.lo, _ = n.lo.remove(q.point, nd, k)
	default:
		// D1
		return nil
	}
	return n
}

// Returns the node with the smallest value at index j. Requires d, which is
// the current discriminator level for n
func (n *node[V]) jmin(j, d, k int) *node[V] {
	if n == nil {
		return nil
	}
	best := n
	nd := (d + 1) % k
	if l := n.lo.jmin(j, nd, k); l != nil && l.point[j] < best.point[j] {
		best = l
	}
	// Smallest values cannot be in hi when n discriminates on j
	if j != d {
		if h := n.hi.jmin(j, nd, k); h != nil && h.point[j] < best.point[j] {
			best = h
		}
	}
	return best
}

// Returns the node with the largest value at index j
func (n *node[V]) jmax(j, d, k int) *node[V] {
	if n == nil {
		return nil
	}
	best := n
	nd := (d + 1) % k
	if h := n.hi.jmax(j, nd, k); h != nil && h.point[j] > best.point[j] {
		best = h
	}
	if j != d {
		if l := n.lo.jmax(j, nd, k); l != nil && l.point[j] > best.point[j] {
			best = l
		}
	}
	return best
}

func (n *node[V]) depth() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.lo.depth(), n.hi.depth())
}

// All iterates over every point and value in the tree, lo subtrees first.
// The tree must not be modified during iteration and the yielded points must
// not be written to.
func (t *Tree[V]) All() iter.Seq2[Point, V] {
	return func(yield func(Point, V) bool) {
		t.root.walk(yield)
	}
}

func (n *node[V]) walk(yield func(Point, V) bool) bool {
	if n == nil {
		return true
	}
	return n.lo.walk(yield) && yield(n.point, n.value) && n.hi.walk(yield)
}
