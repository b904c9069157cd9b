package scene

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/physics"
)

func testScene(t *testing.T) *Scene {
	t.Helper()
	engine := physics.NewEngine(physics.DefaultSettings())
	t.Cleanup(engine.Dispose)
	return NewScene(engine)
}

func dynamicBall(name string, pos rl.Vector3) *Node {
	n := NewNode(name)
	n.Position = pos
	n.Mesh = NewSphereMesh(0.5, 8, 8)
	n.Physics = physics.NewObject(n)
	n.Physics.Shape = physics.Sphere
	n.Physics.Mass = 1
	n.Physics.Interactable = true
	return n
}

func TestAddWiresPhysicsObject(t *testing.T) {
	s := testScene(t)
	n := dynamicBall("ball", rl.NewVector3(0, 10, 0))
	if err := s.Add(n); err != nil {
		t.Fatalf("add: %v", err)
	}

	if s.Engine.BodyCount() != 1 {
		t.Errorf("body count %d, want 1", s.Engine.BodyCount())
	}
	if n.Physics.Geometry != n.Mesh {
		t.Error("node mesh should become the collision geometry")
	}
	if got := n.Physics.InitialWorldTransform.M13; got != 10 {
		t.Errorf("initial transform Y = %v, want 10", got)
	}
}

func TestAddWithoutPhysicsIsSceneOnly(t *testing.T) {
	s := testScene(t)
	if err := s.Add(NewNode("marker")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Engine.BodyCount() != 0 {
		t.Errorf("body count %d, want 0", s.Engine.BodyCount())
	}
	if len(s.Nodes) != 1 {
		t.Errorf("node count %d, want 1", len(s.Nodes))
	}
}

func TestUpdateDropsNodeUnderGravity(t *testing.T) {
	s := testScene(t)
	n := dynamicBall("ball", rl.NewVector3(0, 10, 0))
	if err := s.Add(n); err != nil {
		t.Fatalf("add: %v", err)
	}

	for i := 0; i < 60; i++ {
		s.Update(0.016)
	}
	if n.Position.Y >= 10 {
		t.Errorf("node stayed at Y=%v, expected it to fall", n.Position.Y)
	}
}

func TestRemoveDetachesBody(t *testing.T) {
	s := testScene(t)
	n := dynamicBall("ball", rl.NewVector3(0, 5, 0))
	if err := s.Add(n); err != nil {
		t.Fatalf("add: %v", err)
	}

	s.Remove(n)
	if s.Engine.BodyCount() != 0 {
		t.Errorf("body count %d after removal, want 0", s.Engine.BodyCount())
	}
	if len(s.Nodes) != 0 {
		t.Errorf("node count %d after removal, want 0", len(s.Nodes))
	}
}

func TestFindByName(t *testing.T) {
	s := testScene(t)
	a := NewNode("a")
	b := NewNode("b")
	s.Add(a)
	s.Add(b)

	if s.FindByName("b") != b {
		t.Error("FindByName missed an existing node")
	}
	if s.FindByName("missing") != nil {
		t.Error("FindByName invented a node")
	}
}
