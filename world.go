package feather2d

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// DefaultTimestep is the fixed tick, one frame at 60 FPS
const DefaultTimestep = 1.0 / 60.0

var (
	ErrInvalidParameter = actor.ErrInvalidParameter
	ErrBodyNotFound     = errors.New("body not found")
	ErrShapeMismatch    = errors.New("shape mismatch")
)

// CullPolicy selects which bodies are removed when they leave the bounds
type CullPolicy int

const (
	// CullAll applies the bounds rule to every body, static ones included
	CullAll CullPolicy = iota
	// CullDynamicOnly keeps static bodies whatever their position
	CullDynamicOnly
)

// Contact is a pair of bodies that collided during the last step
type Contact struct {
	BodyA actor.BodyID
	BodyB actor.BodyID
}

type World struct {
	// List of all bodies in the world, in spawn order
	Bodies []*actor.Body
	// Gravity acceleration (px/s²)
	Gravity    mgl64.Vec2
	Bounds     actor.AABB
	CullPolicy CullPolicy
	Workers    int

	Events Events

	nextID   actor.BodyID
	contacts []Contact
}

// NewWorld creates an empty world with the given gravity and bounds size
func NewWorld(gravity mgl64.Vec2, width, height float64) *World {
	return &World{
		Gravity: gravity,
		Bounds:  actor.NewBounds(width, height),
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
	}
}

// Spawn appends a dynamic body and returns its id
func (w *World) Spawn(position, velocity mgl64.Vec2, shape actor.Shape, mass float64) (actor.BodyID, error) {
	material, err := actor.NewMaterial(mass, actor.DefaultGrip)
	if err != nil {
		return 0, fmt.Errorf("spawn: %w", err)
	}

	return w.add(position, velocity, shape, actor.BodyTypeDynamic, material)
}

// AddStatic appends an immovable body such as a ground halfspace
func (w *World) AddStatic(position mgl64.Vec2, shape actor.Shape, grip float64) (actor.BodyID, error) {
	material, err := actor.NewMaterial(1, grip)
	if err != nil {
		return 0, fmt.Errorf("add static: %w", err)
	}

	return w.add(position, mgl64.Vec2{}, shape, actor.BodyTypeStatic, material)
}

func (w *World) add(position, velocity mgl64.Vec2, shape actor.Shape, bodyType actor.BodyType, material actor.Material) (actor.BodyID, error) {
	body, err := actor.NewBody(w.nextID, position, velocity, shape, bodyType, material)
	if err != nil {
		return 0, fmt.Errorf("add body: %w", err)
	}

	w.Bodies = append(w.Bodies, body)
	w.nextID++

	return body.ID, nil
}

// RemoveBody removes a body from the world, keeping the order of the others
func (w *World) RemoveBody(id actor.BodyID) bool {
	k := w.indexOf(id)
	if k == -1 {
		return false
	}

	w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	w.Events.forget(id)

	return true
}

// Step advances the simulation by one fixed tick.
// It must not be re-entered, and Bodies must not be mutated while it runs.
func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)

	// Phase 1: forces
	w.resetForces()
	w.applyGravity()

	// Phase 2: pairwise detection and response, positions are corrected in place
	w.contacts = w.detectCollision(w.contacts[:0])
	w.Events.recordCollisions(w.contacts)

	// Phase 3: integration
	w.integrate(dt)

	// Phase 4: lifecycle
	w.cull()

	w.Events.flush()
}

func (w *World) resetForces() {
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.ClearForces()
	})
}

func (w *World) applyGravity() {
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		if body.IsStatic() {
			return
		}
		body.AddForce(w.Gravity.Mul(body.Material.GetMass()))
	})
}

func (w *World) detectCollision(contacts []Contact) []Contact {
	return DetectCollisions(w.Bodies, w.Gravity, contacts)
}

func (w *World) integrate(dt float64) {
	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.Integrate(dt)
	})
}

// cull compacts Bodies in place, dropping every body outside Bounds
func (w *World) cull() {
	n := 0
	for _, body := range w.Bodies {
		keep := w.Bounds.ContainsPoint(body.Position) ||
			(w.CullPolicy == CullDynamicOnly && body.IsStatic())
		if keep {
			w.Bodies[n] = body
			n++
			continue
		}
		w.Events.forget(body.ID)
	}

	clear(w.Bodies[n:])
	w.Bodies = w.Bodies[:n]
}

func (w *World) SetGravity(gravity mgl64.Vec2) {
	w.Gravity = gravity
}

// SetBounds resizes the culling rectangle to [0,width]x[0,height]
func (w *World) SetBounds(width, height float64) error {
	if !(width > 0) || !(height > 0) {
		return fmt.Errorf("bounds %vx%v: %w", width, height, ErrInvalidParameter)
	}
	w.Bounds = actor.NewBounds(width, height)
	return nil
}

func (w *World) SetHalfspaceRotation(id actor.BodyID, degrees float64) error {
	body, err := w.mustBody(id)
	if err != nil {
		return err
	}

	halfspace, ok := body.Shape.(*actor.Halfspace)
	if !ok {
		return fmt.Errorf("body %s is a %s: %w", body.Name(), body.Shape.Kind(), ErrShapeMismatch)
	}

	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return fmt.Errorf("halfspace rotation %v: %w", degrees, ErrInvalidParameter)
	}
	halfspace.SetRotation(degrees)
	return nil
}

func (w *World) SetGrip(id actor.BodyID, grip float64) error {
	body, err := w.mustBody(id)
	if err != nil {
		return err
	}
	return body.Material.SetGrip(grip)
}

func (w *World) SetMass(id actor.BodyID, mass float64) error {
	body, err := w.mustBody(id)
	if err != nil {
		return err
	}
	return body.Material.SetMass(mass)
}

// Body returns the body with the given id. The pointer is only valid
// until the next Step or removal.
func (w *World) Body(id actor.BodyID) (*actor.Body, bool) {
	k := w.indexOf(id)
	if k == -1 {
		return nil, false
	}
	return w.Bodies[k], true
}

func (w *World) Position(id actor.BodyID) (mgl64.Vec2, bool) {
	body, ok := w.Body(id)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return body.Position, true
}

func (w *World) Velocity(id actor.BodyID) (mgl64.Vec2, bool) {
	body, ok := w.Body(id)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return body.Velocity, true
}

func (w *World) Shape(id actor.BodyID) (actor.Shape, bool) {
	body, ok := w.Body(id)
	if !ok {
		return nil, false
	}
	return body.Shape, true
}

// Collided reports whether the body took part in a contact during the last step
func (w *World) Collided(id actor.BodyID) (bool, bool) {
	body, ok := w.Body(id)
	if !ok {
		return false, false
	}
	return body.Collided, true
}

// Contacts returns the pairs that collided during the last step, in visit order
func (w *World) Contacts() []Contact {
	return append([]Contact(nil), w.contacts...)
}

// Len returns the number of bodies
func (w *World) Len() int {
	return len(w.Bodies)
}

func (w *World) mustBody(id actor.BodyID) (*actor.Body, error) {
	body, ok := w.Body(id)
	if !ok {
		return nil, fmt.Errorf("body %d: %w", id, ErrBodyNotFound)
	}
	return body, nil
}

// indexOf relies on ids growing with spawn order; removal keeps that order
func (w *World) indexOf(id actor.BodyID) int {
	k, found := slices.BinarySearchFunc(w.Bodies, id, func(body *actor.Body, target actor.BodyID) int {
		return cmp.Compare(body.ID, target)
	})
	if !found {
		return -1
	}
	return k
}
