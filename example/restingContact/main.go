package main

import (
	"fmt"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a circle above a flat, grippy ground
func SetupScene() (*feather2d.World, actor.BodyID, actor.BodyID) {
	world := feather2d.NewWorld(mgl64.Vec2{0, 500}, 1280, 960)

	groundID, err := world.AddStatic(mgl64.Vec2{0, 100}, actor.NewHalfspace(0), 1.0)
	if err != nil {
		panic(err)
	}

	circleID, err := world.Spawn(mgl64.Vec2{100, 0}, mgl64.Vec2{0, 0}, &actor.Circle{Radius: 10}, 1.0)
	if err != nil {
		panic(err)
	}

	return world, groundID, circleID
}

func main() {
	fmt.Println("Resting contact: circle r=10 dropped on the plane y=100")
	fmt.Println("=======================================================")

	world, groundID, circleID := SetupScene()

	ground, _ := world.Shape(groundID)
	fmt.Printf("Ground normal: %v\n", ground.(*actor.Halfspace).Normal())
	fmt.Printf("Gravity: %v\n\n", world.Gravity)

	world.Events.Subscribe(feather2d.COLLISION_ENTER, func(event feather2d.Event) {
		a, b := event.Pair()
		fmt.Printf(">> contact enter %d-%d\n", a, b)
	})

	const maxSteps = 120
	for step := 0; step < maxSteps; step++ {
		world.Step(feather2d.DefaultTimestep)

		body, ok := world.Body(circleID)
		if !ok {
			fmt.Printf("step %3d: circle culled\n", step+1)
			return
		}
		fmt.Printf("step %3d: pos=(%.3f, %.3f) vel=(%.3f, %.3f) force=%v collided=%v\n",
			step+1,
			body.Position.X(), body.Position.Y(),
			body.Velocity.X(), body.Velocity.Y(),
			body.NetForce(), body.Collided)
	}

	position, _ := world.Position(circleID)
	fmt.Printf("\nFinal y = %.4f (expected %.1f)\n", position.Y(), 100.0-10.0)
}
