package bresenham

import (
	"image"
	"testing"
)

func collect(f func(visit func(image.Point))) []image.Point {
	var pts []image.Point
	f(func(p image.Point) { pts = append(pts, p) })
	return pts
}

func line(p0, p1 image.Point) []image.Point {
	return collect(func(visit func(image.Point)) { Line(p0, p1, visit) })
}

// Consecutive pixels of a line touch, including diagonally
func checkConnected(t *testing.T, pts []image.Point) {
	t.Helper()
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		if abs(d.X) > 1 || abs(d.Y) > 1 || d == (image.Point{}) {
			t.Fatalf("Pixels %v and %v are not adjacent", pts[i-1], pts[i])
		}
	}
}

func TestLineEndpoints(t *testing.T) {
	cases := [][2]image.Point{
		{{0, 0}, {0, 0}},
		{{0, 0}, {10, 0}},
		{{10, 0}, {0, 0}},
		{{3, 9}, {3, -2}},
		{{0, 0}, {7, 7}},
		{{7, 7}, {0, 0}},
		{{0, 0}, {10, 3}},
		{{-4, 6}, {2, -9}},
		{{5, 5}, {-20, 1}},
	}
	for _, c := range cases {
		pts := line(c[0], c[1])
		if pts[0] != c[0] {
			t.Fatalf("Line %v -> %v starts at %v", c[0], c[1], pts[0])
		}
		if pts[len(pts)-1] != c[1] {
			t.Fatalf("Line %v -> %v ends at %v", c[0], c[1], pts[len(pts)-1])
		}
		// One pixel per step along the major axis
		d := c[1].Sub(c[0])
		if want := max(abs(d.X), abs(d.Y)) + 1; len(pts) != want {
			t.Fatalf("Line %v -> %v has %d pixels. Expected: %d", c[0], c[1], len(pts), want)
		}
		checkConnected(t, pts)
	}
}

func TestLineDiagonal(t *testing.T) {
	pts := line(image.Point{0, 0}, image.Point{3, 3})
	want := []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	for i := range want {
		if pts[i] != want[i] {
			t.Fatalf("Expected %v. Got: %v", want, pts)
		}
	}
}

func TestRect(t *testing.T) {
	pts := collect(func(visit func(image.Point)) { Rect(image.Point{2, 3}, 4, 2, visit) })
	if len(pts) != 2*(4+2) {
		t.Fatalf("Expected %d border pixels. Got: %d", 2*(4+2), len(pts))
	}
	seen := make(map[image.Point]bool)
	for _, p := range pts {
		if seen[p] {
			t.Fatalf("Border pixel %v visited twice", p)
		}
		seen[p] = true
		onX := p.X == 2 || p.X == 6
		onY := p.Y == 3 || p.Y == 5
		if !onX && !onY {
			t.Fatalf("Pixel %v is not on the border", p)
		}
	}
	if pts[0] != (image.Point{2, 3}) {
		t.Fatalf("Expected walk to start at the corner. Got: %v", pts[0])
	}
}

func TestRectDegenerate(t *testing.T) {
	pts := collect(func(visit func(image.Point)) { Rect(image.Point{0, 0}, 0, 0, visit) })
	if len(pts) != 1 {
		t.Fatalf("Expected a single pixel. Got: %v", pts)
	}
	pts = collect(func(visit func(image.Point)) { Rect(image.Point{0, 0}, 5, 0, visit) })
	if len(pts) != 6 {
		t.Fatalf("Expected a 6 pixel row. Got: %v", pts)
	}
	pts = collect(func(visit func(image.Point)) { Rect(image.Point{0, 0}, -1, 2, visit) })
	if len(pts) != 0 {
		t.Fatalf("Expected nothing for negative width. Got: %v", pts)
	}
}
