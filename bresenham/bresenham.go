package bresenham

import "image"

// Absolute value
func abs(n int) int {
	if n >= 0 {
		return n
	}
	return -n
}

// Line calls visit for every pixel on the line from p0 to p1 in order,
// including both endpoints.
func Line(p0, p1 image.Point, visit func(image.Point)) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	w, h := abs(x1-x0), abs(y1-y0)
	if h == 0 { // Horizontal line special case
		step := 1
		if x1 < x0 {
			step = -1
		}
		for x := x0; x != x1+step; x += step {
			visit(image.Point{x, y0})
		}
		return
	} else if w == 0 { // Vertical line special case
		step := 1
		if y1 < y0 {
			step = -1
		}
		for y := y0; y != y1+step; y += step {
			visit(image.Point{x0, y})
		}
		return
	}
	// Bresenham's algorithm directly from Wikipedia:
	// https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm
	dx, dy := w, -h
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	x, y := x0, y0
	acc := dx + dy
	for {
		visit(image.Point{x, y})
		if x == x1 && y == y1 {
			break
		}
		acc2 := 2 * acc
		if acc2 >= dy {
			acc += dy
			x += sx
		}
		if acc2 <= dx {
			acc += dx
			y += sy
		}
	}
}

// Rect walks the border of the w by h rectangle with top left corner p,
// clockwise from p. Each border pixel is visited once.
func Rect(p image.Point, w, h int, visit func(image.Point)) {
	if w < 0 || h < 0 {
		return
	}
	if w == 0 || h == 0 {
		Line(p, image.Point{p.X + w, p.Y + h}, visit)
		return
	}
	tr := image.Point{p.X + w, p.Y}
	br := image.Point{p.X + w, p.Y + h}
	bl := image.Point{p.X, p.Y + h}
	// Each edge stops short of the next corner
	skipLast := func(a, b image.Point) {
		Line(a, b, func(q image.Point) {
			if q != b {
				visit(q)
			}
		})
	}
	skipLast(p, tr)
	skipLast(tr, br)
	skipLast(br, bl)
	skipLast(bl, p)
}
