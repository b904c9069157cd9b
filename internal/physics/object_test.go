package physics

import (
	"encoding/json"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewObjectDefaults(t *testing.T) {
	obj := NewObject("container")

	if obj.Container != "container" {
		t.Error("Container should be kept")
	}
	if obj.Mass != 1 {
		t.Errorf("Default mass = %v, want 1", obj.Mass)
	}
	if obj.Shape != Box {
		t.Errorf("Default shape = %v, want Box", obj.Shape)
	}
	if !obj.Collidable || !obj.ApplyGravity {
		t.Error("Objects should default to collidable and gravity-affected")
	}
	if obj.Interactable || obj.Pickable {
		t.Error("Objects should not default to interactable or pickable")
	}
	if obj.LinearDamping >= 0 {
		t.Error("Linear damping should default to unset (negative)")
	}
	if obj.AngularDamping.X >= 0 {
		t.Error("Angular damping should default to unset (negative)")
	}
}

func TestObjectSerializeRoundTrip(t *testing.T) {
	obj := NewObject(nil)
	obj.Mass = 2.5
	obj.Shape = Capsule
	obj.ShapeData = []float32{0.5, 2}
	obj.Interactable = true
	obj.Pickable = true
	obj.ApplyGravity = false
	obj.MaterialName = "rubber"
	obj.InitialLinearVelocity = rl.NewVector3(1, 2, 3)
	obj.LinearDamping = 0.1

	// Through JSON, the way a scene file carries it.
	raw, err := json.Marshal(obj.Serialize())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var bag map[string]any
	if err := json.Unmarshal(raw, &bag); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := NewObject(nil)
	restored.Deserialize(bag)

	if restored.Mass != 2.5 {
		t.Errorf("Mass = %v, want 2.5", restored.Mass)
	}
	if restored.Shape != Capsule {
		t.Errorf("Shape = %v, want Capsule", restored.Shape)
	}
	if len(restored.ShapeData) != 2 || restored.ShapeData[1] != 2 {
		t.Errorf("ShapeData = %v, want [0.5 2]", restored.ShapeData)
	}
	if !restored.Interactable || !restored.Pickable {
		t.Error("Flags lost in round trip")
	}
	if restored.ApplyGravity {
		t.Error("ApplyGravity=false lost in round trip")
	}
	if restored.MaterialName != "rubber" {
		t.Errorf("MaterialName = %q, want rubber", restored.MaterialName)
	}
	if restored.InitialLinearVelocity != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("InitialLinearVelocity = %v", restored.InitialLinearVelocity)
	}
	if restored.LinearDamping != 0.1 {
		t.Errorf("LinearDamping = %v, want 0.1", restored.LinearDamping)
	}
}

func TestDeserializeIgnoresMissingKeys(t *testing.T) {
	obj := NewObject(nil)
	obj.Mass = 7
	obj.Deserialize(map[string]any{"pickable": true})
	if obj.Mass != 7 {
		t.Error("Missing keys should leave current values alone")
	}
	if !obj.Pickable {
		t.Error("Present keys should apply")
	}
}
