package feather2d

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestLauncher_Origin(t *testing.T) {
	l := DefaultLauncher()
	origin := l.Origin(actor.NewBounds(1280, 960))

	// measured from the bottom-left corner
	if origin != (mgl64.Vec2{200, 760}) {
		t.Errorf("Origin() = %v, want [200 760]", origin)
	}
}

func TestLauncher_LaunchVelocity(t *testing.T) {
	tests := []struct {
		speed, angle float64
		want         mgl64.Vec2
	}{
		{0, 30, mgl64.Vec2{0, 0}},
		{100, 0, mgl64.Vec2{100, 0}},
		{100, 90, mgl64.Vec2{0, -100}},
		{200, 30, mgl64.Vec2{200 * math.Sqrt(3) / 2, -100}},
		{50, 180, mgl64.Vec2{-50, 0}},
	}

	for _, tt := range tests {
		l := Launcher{Speed: tt.speed, Angle: tt.angle}
		if got := l.LaunchVelocity(); !vec2AlmostEqual(got, tt.want, 1e-9) {
			t.Errorf("speed %v angle %v: LaunchVelocity() = %v, want %v", tt.speed, tt.angle, got, tt.want)
		}
	}
}

func TestLauncher_Launch(t *testing.T) {
	w := NewWorld(mgl64.Vec2{0, 500}, 1280, 960)
	l := Launcher{Speed: 100, Angle: 90, X: 50, Y: 60, Mass: 3}

	id, err := l.Launch(w)
	if err != nil {
		t.Fatal(err)
	}

	body, ok := w.Body(id)
	if !ok {
		t.Fatal("launched body not found")
	}
	if body.Position != (mgl64.Vec2{50, 900}) {
		t.Errorf("Position = %v, want [50 900]", body.Position)
	}
	if !vec2AlmostEqual(body.Velocity, mgl64.Vec2{0, -100}, 1e-9) {
		t.Errorf("Velocity = %v, want [0 -100]", body.Velocity)
	}
	if radius(body) != DefaultLaunchRadius {
		t.Errorf("radius = %v, want the default %v", radius(body), DefaultLaunchRadius)
	}
	if body.Material.GetMass() != 3 {
		t.Errorf("mass = %v, want 3", body.Material.GetMass())
	}
}

func TestLauncher_Launch_InvalidMass(t *testing.T) {
	w := NewWorld(mgl64.Vec2{0, 500}, 1280, 960)
	l := DefaultLauncher()
	l.Mass = 0

	if _, err := l.Launch(w); err == nil {
		t.Error("Launch with zero mass should fail")
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d, want 0", w.Len())
	}
}

func TestLauncher_Scatter(t *testing.T) {
	w := NewWorld(mgl64.Vec2{0, 500}, 1280, 960)
	l := DefaultLauncher()
	l.Mass = 5
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 100; i++ {
		id, err := l.Scatter(w, rng)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := w.Body(id)
		if r := radius(body); r < 10 || r >= 30 {
			t.Errorf("scatter radius %v outside [10, 30)", r)
		}
		if body.Material.GetMass() != 1 {
			t.Errorf("scatter mass = %v, want 1", body.Material.GetMass())
		}
	}
}
