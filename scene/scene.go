// Package scene describes a sandbox set-up in YAML and builds worlds from it.
package scene

import (
	"fmt"
	"os"
	"strings"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	KindCircle    = "circle"
	KindHalfspace = "halfspace"

	CullAll         = "all"
	CullDynamicOnly = "dynamic"
)

// Vec is a 2D vector written as a [x, y] sequence
type Vec [2]float64

func (v Vec) Vec2() mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[1]}
}

type Scene struct {
	Name     string       `yaml:"name"`
	Gravity  Vec          `yaml:"gravity"`
	Bounds   BoundsSpec   `yaml:"bounds"`
	Timestep float64      `yaml:"timestep"`
	Workers  int          `yaml:"workers"`
	Cull     string       `yaml:"cull"`
	Launcher LauncherSpec `yaml:"launcher"`
	Bodies   []BodySpec   `yaml:"bodies"`
}

type BoundsSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LauncherSpec struct {
	Speed  float64 `yaml:"speed"`
	Angle  float64 `yaml:"angle"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Mass   float64 `yaml:"mass"`
	Radius float64 `yaml:"radius"`
}

// BodySpec is one body; Mass defaults to 1 and Grip to actor.DefaultGrip
type BodySpec struct {
	Kind     string   `yaml:"kind"`
	Static   bool     `yaml:"static"`
	Position Vec      `yaml:"position"`
	Velocity Vec      `yaml:"velocity"`
	Radius   float64  `yaml:"radius,omitempty"`
	Rotation float64  `yaml:"rotation,omitempty"`
	Mass     float64  `yaml:"mass,omitempty"`
	Grip     *float64 `yaml:"grip,omitempty"`
}

// Default reproduces the sandbox start-up: a flat static ground and nothing else
func Default() Scene {
	grip := actor.DefaultGrip
	l := feather2d.DefaultLauncher()

	return Scene{
		Name:     "default",
		Gravity:  Vec{0, 500},
		Bounds:   BoundsSpec{Width: 1280, Height: 960},
		Timestep: feather2d.DefaultTimestep,
		Workers:  feather2d.DEFAULT_WORKERS,
		Cull:     CullAll,
		Launcher: LauncherSpec{Speed: l.Speed, Angle: l.Angle, X: l.X, Y: l.Y, Mass: l.Mass, Radius: l.Radius},
		Bodies: []BodySpec{
			{Kind: KindHalfspace, Static: true, Position: Vec{500, 900}, Grip: &grip},
		},
	}
}

// Parse decodes a scene. Fields missing from the document keep the Default values,
// except the body list which is replaced as a whole.
func Parse(data []byte) (Scene, error) {
	sc := Default()
	sc.Bodies = nil
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scene{}, fmt.Errorf("scene: unmarshal: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scene{}, err
	}
	return sc, nil
}

func Load(filename string) (Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Scene{}, fmt.Errorf("scene: load %s: %w", filename, err)
	}

	sc, err := Parse(data)
	if err != nil {
		return Scene{}, fmt.Errorf("%w (%s)", err, filename)
	}
	return sc, nil
}

// Marshal encodes the scene back to YAML
func Marshal(sc Scene) ([]byte, error) {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("scene: marshal: %w", err)
	}
	return data, nil
}

// Validate checks the parameters that do not depend on a world
func (sc Scene) Validate() error {
	if !(sc.Timestep > 0) {
		return fmt.Errorf("scene: timestep %v: %w", sc.Timestep, feather2d.ErrInvalidParameter)
	}
	if _, err := sc.cullPolicy(); err != nil {
		return err
	}
	for i, b := range sc.Bodies {
		switch strings.ToLower(b.Kind) {
		case KindCircle, KindHalfspace:
		default:
			return fmt.Errorf("scene: body %d: unknown kind %q: %w", i, b.Kind, feather2d.ErrInvalidParameter)
		}
	}
	return nil
}

func (sc Scene) cullPolicy() (feather2d.CullPolicy, error) {
	switch strings.ToLower(sc.Cull) {
	case "", CullAll:
		return feather2d.CullAll, nil
	case CullDynamicOnly:
		return feather2d.CullDynamicOnly, nil
	default:
		return 0, fmt.Errorf("scene: cull policy %q: %w", sc.Cull, feather2d.ErrInvalidParameter)
	}
}

// NewLauncher converts the launcher section into spawn parameters
func (sc Scene) NewLauncher() feather2d.Launcher {
	return feather2d.Launcher{
		Speed:  sc.Launcher.Speed,
		Angle:  sc.Launcher.Angle,
		X:      sc.Launcher.X,
		Y:      sc.Launcher.Y,
		Mass:   sc.Launcher.Mass,
		Radius: sc.Launcher.Radius,
	}
}

// Build creates a world and adds every body in order
func (sc Scene) Build() (*feather2d.World, error) {
	policy, err := sc.cullPolicy()
	if err != nil {
		return nil, err
	}

	w := feather2d.NewWorld(sc.Gravity.Vec2(), 1, 1)
	if err := w.SetBounds(sc.Bounds.Width, sc.Bounds.Height); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	w.CullPolicy = policy
	w.Workers = max(feather2d.DEFAULT_WORKERS, sc.Workers)

	for i, b := range sc.Bodies {
		if err := addBody(w, b); err != nil {
			return nil, fmt.Errorf("scene: body %d: %w", i, err)
		}
	}

	return w, nil
}

func addBody(w *feather2d.World, b BodySpec) error {
	var shape actor.Shape
	switch strings.ToLower(b.Kind) {
	case KindCircle:
		shape = &actor.Circle{Radius: b.Radius}
	case KindHalfspace:
		shape = actor.NewHalfspace(b.Rotation)
	default:
		return fmt.Errorf("unknown kind %q: %w", b.Kind, feather2d.ErrInvalidParameter)
	}

	grip := actor.DefaultGrip
	if b.Grip != nil {
		grip = *b.Grip
	}

	if b.Static {
		_, err := w.AddStatic(b.Position.Vec2(), shape, grip)
		return err
	}

	mass := b.Mass
	if mass == 0 {
		mass = 1
	}
	id, err := w.Spawn(b.Position.Vec2(), b.Velocity.Vec2(), shape, mass)
	if err != nil {
		return err
	}
	return w.SetGrip(id, grip)
}
