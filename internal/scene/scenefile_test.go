package scene

import (
	"os"
	"path/filepath"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/physics"
)

func TestLoadBuildsNodesAndBodies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	data := `{
  "nodes": [
    {
      "name": "ground",
      "position": [0, -0.5, 0],
      "rotation": [0, 0, 0],
      "mesh": {"kind": "box", "size": [20, 1, 20]},
      "physics": {"mass": 0, "shape": 0}
    },
    {
      "name": "ball",
      "position": [0, 5, 0],
      "rotation": [0, 0, 0],
      "mesh": {"kind": "sphere", "radius": 0.5},
      "physics": {"mass": 1, "shape": 1, "interactable": true}
    }
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testScene(t)
	if err := s.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(s.Nodes) != 2 {
		t.Fatalf("node count %d, want 2", len(s.Nodes))
	}
	if s.Engine.BodyCount() != 2 {
		t.Errorf("body count %d, want 2", s.Engine.BodyCount())
	}
	ball := s.FindByName("ball")
	if ball == nil {
		t.Fatal("ball node missing after load")
	}
	if ball.Physics.Shape != physics.Sphere {
		t.Errorf("ball shape %v, want Sphere", ball.Physics.Shape)
	}
	if ball.Physics.Mass != 1 {
		t.Errorf("ball mass %v, want 1", ball.Physics.Mass)
	}
}

func TestLoadMissingScaleDefaultsToUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	data := `{"nodes": [{"name": "n", "position": [1, 2, 3], "rotation": [0, 0, 0]}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := testScene(t)
	if err := s.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	n := s.FindByName("n")
	if n.Scale != rl.NewVector3(1, 1, 1) {
		t.Errorf("scale %v, want unit", n.Scale)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	s := testScene(t)
	if err := s.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing scene file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := testScene(t)
	n := dynamicBall("ball", rl.NewVector3(2, 8, -1))
	n.Tags = []string{"dynamic"}
	if err := src.Add(n); err != nil {
		t.Fatalf("add: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := src.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	dst := testScene(t)
	if err := dst.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	got := dst.FindByName("ball")
	if got == nil {
		t.Fatal("ball missing after round trip")
	}
	if got.Position != n.Position {
		t.Errorf("position %v, want %v", got.Position, n.Position)
	}
	if got.Physics == nil || got.Physics.Shape != physics.Sphere || !got.Physics.Interactable {
		t.Error("physics attributes lost in the round trip")
	}
	if got.Mesh == nil {
		t.Fatal("mesh definition lost in the round trip")
	}
	if len(got.Tags) != 1 || got.Tags[0] != "dynamic" {
		t.Errorf("tags %v, want [dynamic]", got.Tags)
	}
}
