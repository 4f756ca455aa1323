// Package script drives spawning from tengo scripts, in place of keyboard input.
//
// A script is run once per tick with these globals:
//
//	tick     int     the index of the step about to run
//	bodies   int     the number of bodies in the world
//	width    float   the bounds width
//	height   float   the bounds height
//
// and these functions:
//
//	launch()                       fire the launcher
//	scatter()                      fire a random-radius circle from the launcher
//	spawn(x, y, vx, vy, r, mass)   spawn a circle
//	gravity(x, y)                  set the world gravity
//	rotate(id, degrees)            rotate a halfspace
//	grip(id, value)                set a body grip
//
// Requests are queued while the script runs and applied in call order afterwards,
// so the world is never mutated from inside the VM.
package script

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

type requestKind int

const (
	requestLaunch requestKind = iota
	requestScatter
	requestSpawn
	requestGravity
	requestRotate
	requestGrip
)

type request struct {
	kind requestKind
	args []float64
}

var arity = map[requestKind]int{
	requestLaunch:  0,
	requestScatter: 0,
	requestSpawn:   6,
	requestGravity: 2,
	requestRotate:  2,
	requestGrip:    2,
}

// Spawner runs a compiled tengo script against a world, one tick at a time
type Spawner struct {
	compiled *tengo.Compiled
	launcher feather2d.Launcher
	rng      *rand.Rand
	pending  []request
	tick     int
}

func Load(filename string, launcher feather2d.Launcher, rng *rand.Rand) (*Spawner, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", filename, err)
	}
	return New(src, launcher, rng)
}

func New(src []byte, launcher feather2d.Launcher, rng *rand.Rand) (*Spawner, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	s := &Spawner{launcher: launcher, rng: rng}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	for name, value := range map[string]any{
		"tick":   0,
		"bodies": 0,
		"width":  0.0,
		"height": 0.0,
	} {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
	}
	for name, kind := range map[string]requestKind{
		"launch":  requestLaunch,
		"scatter": requestScatter,
		"spawn":   requestSpawn,
		"gravity": requestGravity,
		"rotate":  requestRotate,
		"grip":    requestGrip,
	} {
		if err := script.Add(name, s.queue(name, kind)); err != nil {
			return nil, fmt.Errorf("script: %w", err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	s.compiled = compiled

	return s, nil
}

// queue returns the tengo function recording a request of the given kind
func (s *Spawner) queue(name string, kind requestKind) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != arity[kind] {
			return nil, tengo.ErrWrongNumArguments
		}
		values := make([]float64, len(args))
		for i, arg := range args {
			v, ok := tengo.ToFloat64(arg)
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{
					Name:     fmt.Sprintf("argument %d", i),
					Expected: "float or int",
					Found:    arg.TypeName(),
				}
			}
			values[i] = v
		}
		s.pending = append(s.pending, request{kind: kind, args: values})
		return tengo.UndefinedValue, nil
	}}
}

// Tick runs the script once, then applies its requests to the world in call order.
// It must be called between steps, never during one.
func (s *Spawner) Tick(w *feather2d.World) error {
	s.pending = s.pending[:0]

	for name, value := range map[string]any{
		"tick":   s.tick,
		"bodies": w.Len(),
		"width":  w.Bounds.Width(),
		"height": w.Bounds.Height(),
	} {
		if err := s.compiled.Set(name, value); err != nil {
			return fmt.Errorf("script: set %s: %w", name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("script: tick %d: %w", s.tick, err)
	}
	s.tick++

	for _, r := range s.pending {
		if err := s.apply(w, r); err != nil {
			return fmt.Errorf("script: tick %d: %w", s.tick-1, err)
		}
	}
	return nil
}

func (s *Spawner) apply(w *feather2d.World, r request) error {
	var err error
	switch r.kind {
	case requestLaunch:
		_, err = s.launcher.Launch(w)
	case requestScatter:
		_, err = s.launcher.Scatter(w, s.rng)
	case requestSpawn:
		_, err = w.Spawn(
			mgl64.Vec2{r.args[0], r.args[1]},
			mgl64.Vec2{r.args[2], r.args[3]},
			&actor.Circle{Radius: r.args[4]},
			r.args[5],
		)
	case requestGravity:
		w.SetGravity(mgl64.Vec2{r.args[0], r.args[1]})
	case requestRotate:
		err = w.SetHalfspaceRotation(actor.BodyID(r.args[0]), r.args[1])
	case requestGrip:
		err = w.SetGrip(actor.BodyID(r.args[0]), r.args[1])
	}
	return err
}

// Ticks returns how many times the script ran
func (s *Spawner) Ticks() int {
	return s.tick
}
