package actor

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidParameter is returned when a body or shape parameter cannot be simulated
var ErrInvalidParameter = errors.New("invalid parameter")

// DefaultGrip is the grip given to bodies that do not set one
const DefaultGrip = 0.5

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable: no forces, no integration.
	// They still collide as the other side of a contact (ground, walls).
	BodyTypeStatic
)

// BodyID is a sequential label assigned in spawn order
type BodyID uint64

type Material struct {
	mass float64 // kg, always > 0
	// Grip is this body's share of the pairwise friction coefficient, in [0,1]
	Grip float64
}

func NewMaterial(mass, grip float64) (Material, error) {
	m := Material{}
	if err := m.SetMass(mass); err != nil {
		return Material{}, err
	}
	if err := m.SetGrip(grip); err != nil {
		return Material{}, err
	}
	return m, nil
}

func (material Material) GetMass() float64 {
	return material.mass
}

// SetMass rejects zero, negative and non-finite masses: integration divides by mass
func (material *Material) SetMass(mass float64) error {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return fmt.Errorf("mass %v: %w", mass, ErrInvalidParameter)
	}
	material.mass = mass
	return nil
}

func (material *Material) SetGrip(grip float64) error {
	if !(grip >= 0 && grip <= 1) {
		return fmt.Errorf("grip %v: %w", grip, ErrInvalidParameter)
	}
	material.Grip = grip
	return nil
}

// Body represents a rigid body in the physics simulation
type Body struct {
	ID BodyID

	Position mgl64.Vec2 // pixels
	Velocity mgl64.Vec2 // pixels per second

	// reset at the start of every step
	netForce mgl64.Vec2

	Material Material
	BodyType BodyType

	Shape Shape

	// Collided is set when the body took part in a contact during the last step
	Collided bool
}

// NewBody creates a body; the material must come from NewMaterial
func NewBody(id BodyID, position, velocity mgl64.Vec2, shape Shape, bodyType BodyType, material Material) (*Body, error) {
	if shape == nil {
		return nil, fmt.Errorf("nil shape: %w", ErrInvalidParameter)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if !isFinite(position) || !isFinite(velocity) {
		return nil, fmt.Errorf("position %v velocity %v: %w", position, velocity, ErrInvalidParameter)
	}
	if !(material.mass > 0) {
		return nil, fmt.Errorf("mass %v: %w", material.mass, ErrInvalidParameter)
	}

	return &Body{
		ID:       id,
		Position: position,
		Velocity: velocity,
		Material: material,
		BodyType: bodyType,
		Shape:    shape,
	}, nil
}

// Name returns the diagnostics label of the body
func (b *Body) Name() string {
	return strconv.FormatUint(uint64(b.ID), 10)
}

func (b *Body) IsStatic() bool {
	return b.BodyType == BodyTypeStatic
}

// Integrate moves the body with its pre-update velocity, then applies
// the accumulated force: a = F/m.
func (b *Body) Integrate(dt float64) {
	if b.BodyType == BodyTypeStatic {
		return
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	acceleration := b.netForce.Mul(1.0 / b.Material.GetMass())
	b.Velocity = b.Velocity.Add(acceleration.Mul(dt))
}

// AddForce in N (kg⋅px/s²), ignored for static bodies
func (b *Body) AddForce(force mgl64.Vec2) {
	if b.BodyType != BodyTypeStatic {
		b.netForce = b.netForce.Add(force)
	}
}

func (b *Body) NetForce() mgl64.Vec2 {
	return b.netForce
}

func (b *Body) ClearForces() {
	b.netForce = mgl64.Vec2{0, 0}
}

func isFinite(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
