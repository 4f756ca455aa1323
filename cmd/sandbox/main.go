// Command sandbox runs a scene headless for a fixed number of ticks.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/scene"
	"github.com/akmonengine/feather2d/script"
)

type Config struct {
	SceneFile  string
	ScriptFile string
	Steps      int
	Workers    int
	Watch      bool
	Report     int
	Seed       uint64
}

func parseFlags() *Config {
	config := &Config{}

	flag.StringVar(&config.SceneFile, "scene", "", "YAML scene file (default: flat ground only)")
	flag.StringVar(&config.ScriptFile, "script", "", "tengo spawn script run before every tick")
	flag.IntVar(&config.Steps, "steps", 600, "number of ticks to simulate, 0 runs until interrupted")
	flag.IntVar(&config.Workers, "workers", 0, "per-body workers, overrides the scene when > 0")
	flag.BoolVar(&config.Watch, "watch", false, "rebuild the world when the scene or script file changes")
	flag.IntVar(&config.Report, "report", 60, "log the world state every N ticks, 0 disables")
	flag.Uint64Var(&config.Seed, "seed", 1, "seed for scatter spawns")
	flag.Parse()

	return config
}

func (c *Config) Validate() error {
	if c.Steps < 0 {
		return errors.New("steps must be >= 0")
	}
	if c.Report < 0 {
		return errors.New("report must be >= 0")
	}
	if c.Watch && c.SceneFile == "" && c.ScriptFile == "" {
		return errors.New("watch needs a scene or a script file")
	}
	return nil
}

// sandbox is the world and its spawn driver, rebuilt on reload
type sandbox struct {
	world    *feather2d.World
	spawner  *script.Spawner
	timestep float64
}

func load(config *Config) (*sandbox, error) {
	sc := scene.Default()
	if config.SceneFile != "" {
		var err error
		if sc, err = scene.Load(config.SceneFile); err != nil {
			return nil, err
		}
	}

	world, err := sc.Build()
	if err != nil {
		return nil, err
	}
	if config.Workers > 0 {
		world.Workers = config.Workers
	}

	sb := &sandbox{world: world, timestep: sc.Timestep}
	if config.ScriptFile != "" {
		rng := rand.New(rand.NewPCG(config.Seed, config.Seed))
		if sb.spawner, err = script.Load(config.ScriptFile, sc.NewLauncher(), rng); err != nil {
			return nil, err
		}
	}

	log.Printf("Loaded scene %q: %d bodies, gravity %v, bounds %.0fx%.0f, dt %.4f",
		sc.Name, world.Len(), world.Gravity, world.Bounds.Width(), world.Bounds.Height(), sc.Timestep)
	return sb, nil
}

func main() {
	config := parseFlags()
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sb, err := load(config)
	if err != nil {
		log.Fatalf("Failed to load sandbox: %v", err)
	}

	var reload <-chan string
	if config.Watch {
		var files []string
		for _, f := range []string{config.SceneFile, config.ScriptFile} {
			if f != "" {
				files = append(files, f)
			}
		}
		watcher, err := scene.NewWatcher(files...)
		if err != nil {
			log.Fatalf("Failed to watch %v: %v", files, err)
		}
		defer watcher.Close()
		reload = watcher.Events
		go func() {
			for err := range watcher.Errors {
				log.Printf("Watch error: %v", err)
			}
		}()
	}

	subscribe(sb.world)

	for tick := 0; config.Steps == 0 || tick < config.Steps; tick++ {
		select {
		case <-ctx.Done():
			log.Printf("Interrupted at tick %d", tick)
			return
		case name := <-reload:
			next, err := load(config)
			if err != nil {
				log.Printf("Reload of %s failed, keeping current world: %v", name, err)
				break
			}
			subscribe(next.world)
			sb = next
			log.Printf("Reloaded after change to %s", name)
		default:
		}

		if sb.spawner != nil {
			if err := sb.spawner.Tick(sb.world); err != nil {
				log.Printf("Spawn script: %v", err)
			}
		}
		sb.world.Step(sb.timestep)

		if config.Report > 0 && (tick+1)%config.Report == 0 {
			report(tick+1, sb.world)
		}
	}

	log.Printf("Simulation completed: %d bodies left", sb.world.Len())
}

func subscribe(world *feather2d.World) {
	world.Events.Subscribe(feather2d.COLLISION_ENTER, func(event feather2d.Event) {
		a, b := event.Pair()
		log.Printf("Contact %d-%d %s", a, b, event.Type())
	})
}

func report(tick int, world *feather2d.World) {
	colliding := 0
	for _, body := range world.Bodies {
		if body.Collided {
			colliding++
		}
	}
	log.Printf("Tick %d | Bodies: %d | Colliding: %d | Contacts: %d", tick, world.Len(), colliding, len(world.Contacts()))

	for _, body := range world.Bodies {
		if body.IsStatic() {
			continue
		}
		kind := body.Shape.Kind()
		if c, ok := body.Shape.(*actor.Circle); ok {
			log.Printf("  %s %s r=%.1f pos=(%.2f, %.2f) vel=(%.2f, %.2f)", kind, body.Name(), c.Radius,
				body.Position.X(), body.Position.Y(), body.Velocity.X(), body.Velocity.Y())
			continue
		}
		log.Printf("  %s %s pos=(%.2f, %.2f)", kind, body.Name(), body.Position.X(), body.Position.Y())
	}
}
