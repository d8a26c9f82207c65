package repaint

import (
	"image"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/ughe/tigerpaint/order"
)

// Progress is a snapshot of a running Task. Done and Total count pixels.
type Progress struct {
	Done     int
	Total    int
	Rebuilds int
	Elapsed  time.Duration

	bounds    image.Rectangle
	completed *roaring.Bitmap
}

func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// Remaining projects the time left from the average time per pixel so far
func (p Progress) Remaining() time.Duration {
	if p.Done == 0 {
		return 0
	}
	perPixel := p.Elapsed / time.Duration(p.Done)
	return perPixel * time.Duration(p.Total-p.Done)
}

// Completed reports whether pixel q had been painted when the snapshot of
// completed pixels was last published. It may lag behind Done.
func (p Progress) Completed(q image.Point) bool {
	if p.completed == nil || !q.In(p.bounds) {
		return false
	}
	return p.completed.Contains(order.Index(p.bounds, q))
}

// Painted returns the number of pixels in the completed snapshot
func (p Progress) Painted() int {
	if p.completed == nil {
		return 0
	}
	return int(p.completed.GetCardinality())
}
