package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned rectangle
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewBounds returns the rectangle [0,width]x[0,height]
func NewBounds(width, height float64) AABB {
	return AABB{
		Min: mgl64.Vec2{0, 0},
		Max: mgl64.Vec2{width, height},
	}
}

// ContainsPoint checks if a point is inside the AABB, edges included
func (a AABB) ContainsPoint(point mgl64.Vec2) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y()
}

func (a AABB) Width() float64 {
	return a.Max.X() - a.Min.X()
}

func (a AABB) Height() float64 {
	return a.Max.Y() - a.Min.Y()
}
