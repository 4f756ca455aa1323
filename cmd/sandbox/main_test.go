package main

import (
	"testing"

	"github.com/akmonengine/feather2d"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"defaults", Config{Steps: 600, Report: 60}, false},
		{"run forever", Config{Steps: 0}, false},
		{"negative steps", Config{Steps: -1}, true},
		{"negative report", Config{Report: -5}, true},
		{"watch without files", Config{Watch: true}, true},
		{"watch scene", Config{Watch: true, SceneFile: "testdata/ramp.yaml"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Default(t *testing.T) {
	sb, err := load(&Config{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sb.world.Len() != 1 || sb.spawner != nil {
		t.Errorf("default sandbox: %d bodies, spawner %v", sb.world.Len(), sb.spawner)
	}
	if sb.timestep != feather2d.DefaultTimestep {
		t.Errorf("timestep = %v", sb.timestep)
	}
}

func TestLoad_SceneAndScript(t *testing.T) {
	sb, err := load(&Config{
		SceneFile:  "testdata/ramp.yaml",
		ScriptFile: "testdata/rain.tengo",
		Workers:    3,
		Seed:       9,
	})
	if err != nil {
		t.Fatal(err)
	}
	if sb.world.Workers != 3 || sb.world.CullPolicy != feather2d.CullDynamicOnly {
		t.Errorf("Workers = %d, CullPolicy = %v", sb.world.Workers, sb.world.CullPolicy)
	}

	for tick := 0; tick < 60; tick++ {
		if err := sb.spawner.Tick(sb.world); err != nil {
			t.Fatal(err)
		}
		sb.world.Step(sb.timestep)
	}

	// 3 scene bodies, launches at 0 and 30, scatters at 0, 15, 30 and 45
	if got := sb.world.Len(); got != 3+2+4 {
		t.Errorf("Len() = %d, want 9", got)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	if _, err := load(&Config{SceneFile: "testdata/missing.yaml"}); err == nil {
		t.Error("load with a missing scene should fail")
	}
	if _, err := load(&Config{ScriptFile: "testdata/missing.tengo"}); err == nil {
		t.Error("load with a missing script should fail")
	}
}
