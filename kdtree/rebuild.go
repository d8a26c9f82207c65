package kdtree

import (
	"cmp"
	"slices"
)

// Build returns a balanced tree holding entries. Each level is split at the
// median of its points on that level's discriminator. Points are copied;
// entries itself is not modified.
func Build[V any](k int, entries []Entry[V]) (*Tree[V], error) {
	t := New[V](k)
	es := make([]Entry[V], len(entries))
	for i, e := range entries {
		if err := t.check(e.Point); err != nil {
			return nil, err
		}
		es[i] = Entry[V]{Point: e.Point.Clone(), Value: e.Value}
	}
	slices.SortFunc(es, func(a, b Entry[V]) int { return compare(a.Point, b.Point) })
	for i := 1; i < len(es); i++ {
		if es[i-1].Point.equal(es[i].Point) {
			return nil, ErrDuplicateKey
		}
	}
	t.root = build(es, 0, k)
	t.size = len(es)
	return t, nil
}

// Rebuild returns a new balanced tree holding every point and value of t.
// t is left as it was; the caller replaces its handle with the result.
//
// anchor is the most recently removed point. It is reserved for a rebuild
// restricted to the region around it and currently only has its dimension
// checked; nil is accepted.
func (t *Tree[V]) Rebuild(anchor Point) (*Tree[V], error) {
	if anchor != nil {
		if err := t.check(anchor); err != nil {
			return nil, err
		}
	}
	es := make([]Entry[V], 0, t.size)
	for p, v := range t.All() {
		es = append(es, Entry[V]{Point: p, Value: v})
	}
	// Points are immutable once inserted so the new nodes share them
	return &Tree[V]{root: build(es, 0, t.k), k: t.k, size: len(es)}, nil
}

// build reorders es and links it into a subtree with discriminator d. Every
// point left of the median is <= it on d and every point right of it is >=.
func build[V any](es []Entry[V], d, k int) *node[V] {
	if len(es) == 0 {
		return nil
	}
	slices.SortFunc(es, func(a, b Entry[V]) int { return cmp.Compare(a.Point[d], b.Point[d]) })
	m := len(es) / 2
	nd := (d + 1) % k
	return &node[V]{
		point: es[m].Point,
		value: es[m].Value,
		lo:    build(es[:m], nd, k),
		hi:    build(es[m+1:], nd, k),
	}
}

func compare(p, q Point) int {
	for i := range p {
		if c := cmp.Compare(p[i], q[i]); c != 0 {
			return c
		}
	}
	return 0
}
