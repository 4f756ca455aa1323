package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind represents the type of collision shape
type ShapeKind int

const (
	ShapeKindCircle ShapeKind = iota
	ShapeKindHalfspace
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindCircle:
		return "circle"
	case ShapeKindHalfspace:
		return "halfspace"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Up is the canonical halfspace normal at rotation 0 (screen space, y down).
var Up = mgl64.Vec2{0, -1}

// Shape is the closed set of collision shapes: *Circle and *Halfspace.
// The unexported marker keeps other packages from adding variants, so a type
// switch over both is exhaustive.
type Shape interface {
	Kind() ShapeKind
	// Validate reports whether the shape parameters can be simulated
	Validate() error
	shape()
}

// Circle is a disc centered on the body position
type Circle struct {
	Radius float64
}

func (c *Circle) Kind() ShapeKind { return ShapeKindCircle }

func (c *Circle) Validate() error {
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("circle radius %v: %w", c.Radius, ErrInvalidParameter)
	}
	return nil
}

func (c *Circle) shape() {}

// Halfspace represents an infinite plane through the body position.
// Only the rotation is stored, the outward normal is derived from it:
// Normal = Up rotated by Rotation degrees.
type Halfspace struct {
	rotation float64 // degrees
}

// NewHalfspace creates a halfspace rotated by degrees
func NewHalfspace(degrees float64) *Halfspace {
	return &Halfspace{rotation: degrees}
}

func (h *Halfspace) Kind() ShapeKind { return ShapeKindHalfspace }

func (h *Halfspace) Validate() error {
	if math.IsNaN(h.rotation) || math.IsInf(h.rotation, 0) {
		return fmt.Errorf("halfspace rotation %v: %w", h.rotation, ErrInvalidParameter)
	}
	return nil
}

func (h *Halfspace) shape() {}

// SetRotation sets the rotation in degrees; the normal follows
func (h *Halfspace) SetRotation(degrees float64) {
	h.rotation = degrees
}

// Rotation returns the rotation in degrees
func (h *Halfspace) Rotation() float64 {
	return h.rotation
}

// Normal returns the unit outward normal of the plane
func (h *Halfspace) Normal() mgl64.Vec2 {
	return mgl64.Rotate2D(mgl64.DegToRad(h.rotation)).Mul2x1(Up)
}

// Tangent returns the surface direction, the normal rotated by 90°
func (h *Halfspace) Tangent() mgl64.Vec2 {
	return mgl64.Rotate2D(math.Pi * 0.5).Mul2x1(h.Normal())
}
