// Package geom provides integer pixel geometry for the menukit layout
// engine. Coordinates are screen or world space depending on context;
// all values are immutable value types.
package geom

// Point is a 2D pixel offset.
type Point struct {
	X, Y int
}

// Add returns p shifted by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p shifted by -q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Rect is an axis-aligned pixel rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// NewRect builds a Rect, collapsing negative dimensions to zero.
func NewRect(x, y, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{x, y, w, h}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Point {
	return Point{r.X, r.Y}
}

// Size returns the dimensions.
func (r Rect) Size() (int, int) {
	return r.W, r.H
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{r.X + dx, r.Y + dy, r.W, r.H}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsRect reports whether q lies fully inside r. An empty q is
// contained if its origin is inside r's closed bounds.
func (r Rect) ContainsRect(q Rect) bool {
	return q.X >= r.X && q.Y >= r.Y && q.Right() <= r.Right() && q.Bottom() <= r.Bottom()
}

// Clip returns the intersection of r and q. Disjoint rectangles yield a
// zero-area Rect anchored at r's corner, never a negative-size one.
func (r Rect) Clip(q Rect) Rect {
	x := maxInt(r.X, q.X)
	y := maxInt(r.Y, q.Y)
	right := minInt(r.Right(), q.Right())
	bottom := minInt(r.Bottom(), q.Bottom())
	if right <= x || bottom <= y {
		return Rect{X: x, Y: y}
	}
	return Rect{x, y, right - x, bottom - y}
}

// Union returns the smallest Rect containing both r and q. Empty inputs
// are ignored.
func (r Rect) Union(q Rect) Rect {
	if r.Empty() {
		return q
	}
	if q.Empty() {
		return r
	}
	x := minInt(r.X, q.X)
	y := minInt(r.Y, q.Y)
	right := maxInt(r.Right(), q.Right())
	bottom := maxInt(r.Bottom(), q.Bottom())
	return Rect{x, y, right - x, bottom - y}
}

// Inflate grows r by (dx, dy) on every side. Negative values shrink;
// dimensions never go below zero.
func (r Rect) Inflate(dx, dy int) Rect {
	return NewRect(r.X-dx, r.Y-dy, r.W+2*dx, r.H+2*dy)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
