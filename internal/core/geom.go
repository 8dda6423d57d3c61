// Package core provides the terminal-facing types shared by games and
// platforms: the cell screen buffer, input frames, runtime config and the
// viewport that maps world units onto terminal cells.
// It has no Bubble Tea dependency so game adapters stay testable.
package core

import "math"

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clip returns the part of r that lies inside bounds. The result may be empty.
func (r Rect) Clip(bounds Rect) Rect {
	x0 := max(r.X, bounds.X)
	y0 := max(r.Y, bounds.Y)
	x1 := min(r.Right(), bounds.Right())
	y1 := min(r.Bottom(), bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Viewport maps a fixed world coordinate space onto a grid of terminal
// cells. World y grows downward, like the cell grid.
type Viewport struct {
	worldW, worldH float64
	area           Rect
}

// NewViewport creates a viewport showing a worldW x worldH world inside area.
func NewViewport(worldW, worldH float64, area Rect) Viewport {
	return Viewport{worldW: worldW, worldH: worldH, area: area}
}

// Area returns the cell rectangle the world is drawn into.
func (v Viewport) Area() Rect {
	return v.area
}

// ScaleX returns cells per world unit horizontally.
func (v Viewport) ScaleX() float64 {
	if v.worldW <= 0 {
		return 0
	}
	return float64(v.area.W) / v.worldW
}

// ScaleY returns cells per world unit vertically.
func (v Viewport) ScaleY() float64 {
	if v.worldH <= 0 {
		return 0
	}
	return float64(v.area.H) / v.worldH
}

// Cell converts a world point to the cell that contains it.
func (v Viewport) Cell(x, y float64) (int, int) {
	cx := v.area.X + int(math.Floor(x*v.ScaleX()))
	cy := v.area.Y + int(math.Floor(y*v.ScaleY()))
	return cx, cy
}

// Rect converts a world box to cells. Any non-empty box covers at least
// one cell so small entities stay visible on small terminals.
func (v Viewport) Rect(x, y, w, h float64) Rect {
	x0, y0 := v.Cell(x, y)
	x1 := v.area.X + int(math.Ceil((x+w)*v.ScaleX()))
	y1 := v.area.Y + int(math.Ceil((y+h)*v.ScaleY()))
	return Rect{X: x0, Y: y0, W: max(1, x1-x0), H: max(1, y1-y0)}
}
