package kdtree

import (
	"math"
	"math/bits"
)

// dist is an exact squared distance. A coordinate difference needs up to 64
// bits, its square up to 128, and top counts the carries out of hi when
// squares are summed.
type dist struct {
	top, hi, lo uint64
}

var maxDist = dist{math.MaxUint64, math.MaxUint64, math.MaxUint64}

// absDiff returns |a-b|. The true difference always fits in a uint64 so the
// wrapped subtraction is exact.
func absDiff(a, b int) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}

func (d *dist) addSq(x uint64) {
	sh, sl := bits.Mul64(x, x)
	var c uint64
	d.lo, c = bits.Add64(d.lo, sl, 0)
	d.hi, c = bits.Add64(d.hi, sh, c)
	d.top += c
}

func (d dist) less(e dist) bool {
	if d.top != e.top {
		return d.top < e.top
	}
	if d.hi != e.hi {
		return d.hi < e.hi
	}
	return d.lo < e.lo
}

// int64 returns d saturated at math.MaxInt64
func (d dist) int64() int64 {
	if d.top != 0 || d.hi != 0 || d.lo > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(d.lo)
}

func (d dist) float64() float64 {
	return (float64(d.top)*0x1p64+float64(d.hi))*0x1p64 + float64(d.lo)
}

// distance is the exact squared distance. Callers guarantee len(p) == len(q)
func distance(p, q Point) dist {
	var d dist
	for i := range p {
		d.addSq(absDiff(p[i], q[i]))
	}
	return d
}
