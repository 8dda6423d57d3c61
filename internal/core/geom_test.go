package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent horizontal (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"adjacent vertical (no overlap)", NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectClip(t *testing.T) {
	bounds := NewRect(0, 0, 80, 24)

	tests := []struct {
		name     string
		r        Rect
		expected Rect
		empty    bool
	}{
		{"inside", NewRect(5, 5, 3, 3), NewRect(5, 5, 3, 3), false},
		{"off the left", NewRect(-2, 5, 4, 1), NewRect(0, 5, 2, 1), false},
		{"off the bottom", NewRect(10, 22, 2, 5), NewRect(10, 22, 2, 2), false},
		{"fully outside", NewRect(90, 5, 4, 1), Rect{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Clip(bounds)
			if got.Empty() != tc.empty {
				t.Fatalf("Clip() = %+v, empty=%v, expected empty=%v", got, got.Empty(), tc.empty)
			}
			if !tc.empty && got != tc.expected {
				t.Errorf("Clip() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestViewportCell(t *testing.T) {
	v := NewViewport(800, 450, NewRect(0, 1, 80, 45))

	tests := []struct {
		name   string
		x, y   float64
		cx, cy int
	}{
		{"origin", 0, 0, 0, 1},
		{"player foot", 100, 350, 10, 36},
		{"right edge", 799, 449, 79, 45},
		{"left of field", -15, 0, -2, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy := v.Cell(tc.x, tc.y)
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("Cell(%v, %v) = (%d, %d), expected (%d, %d)", tc.x, tc.y, cx, cy, tc.cx, tc.cy)
			}
		})
	}
}

func TestViewportRectMinimumSize(t *testing.T) {
	v := NewViewport(800, 450, NewRect(0, 0, 40, 12))

	r := v.Rect(100, 300, 40, 50)
	if r.X != 5 || r.W != 2 {
		t.Errorf("Rect() x/w = %d/%d, expected 5/2", r.X, r.W)
	}

	tiny := v.Rect(400, 100, 1, 1)
	if tiny.W < 1 || tiny.H < 1 {
		t.Errorf("tiny world box should cover a cell, got %+v", tiny)
	}
}
