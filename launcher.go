package feather2d

import (
	"math"
	"math/rand/v2"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultLaunchRadius = 20.0
	scatterMinRadius    = 10.0
	scatterRadiusRange  = 20.0
)

// Launcher holds the spawn parameters a user tunes before firing circles.
// X and Y are measured from the bottom-left corner of the world bounds,
// Angle is in degrees counter-clockwise from +x.
type Launcher struct {
	Speed  float64
	Angle  float64
	X      float64
	Y      float64
	Mass   float64
	Radius float64
}

// DefaultLauncher returns the sandbox start-up parameters
func DefaultLauncher() Launcher {
	return Launcher{
		Speed:  0,
		Angle:  30,
		X:      200,
		Y:      200,
		Mass:   1,
		Radius: DefaultLaunchRadius,
	}
}

// Origin returns the launch point in world coordinates (y down)
func (l Launcher) Origin(bounds actor.AABB) mgl64.Vec2 {
	return mgl64.Vec2{bounds.Min.X() + l.X, bounds.Max.Y() - l.Y}
}

// LaunchVelocity returns the initial velocity; screen y points down so the
// vertical component is negated
func (l Launcher) LaunchVelocity() mgl64.Vec2 {
	rad := mgl64.DegToRad(l.Angle)
	return mgl64.Vec2{math.Cos(rad) * l.Speed, -math.Sin(rad) * l.Speed}
}

// Launch spawns one circle of the configured radius and mass
func (l Launcher) Launch(w *World) (actor.BodyID, error) {
	radius := l.Radius
	if radius == 0 {
		radius = DefaultLaunchRadius
	}

	return w.Spawn(l.Origin(w.Bounds), l.LaunchVelocity(), &actor.Circle{Radius: radius}, l.Mass)
}

// Scatter spawns a unit-mass circle with a random radius in [10, 30)
func (l Launcher) Scatter(w *World, rng *rand.Rand) (actor.BodyID, error) {
	radius := scatterMinRadius + rng.Float64()*scatterRadiusRange

	return w.Spawn(l.Origin(w.Bounds), l.LaunchVelocity(), &actor.Circle{Radius: radius}, 1)
}
