package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestForwardIsUnitLength(t *testing.T) {
	c := New(rl.Vector3{})
	c.Yaw = 30
	c.Pitch = -45

	l := rl.Vector3Length(c.Forward())
	if l < 0.999 || l > 1.001 {
		t.Errorf("forward vector has length %v, want 1", l)
	}
}

func TestLookAtThenForwardPointsAtTarget(t *testing.T) {
	c := New(rl.Vector3{X: 0, Y: 5, Z: 0})
	target := rl.Vector3{X: 10, Y: 0, Z: 10}
	c.LookAt(target)

	dir := c.Forward()
	want := rl.Vector3Normalize(rl.Vector3Subtract(target, c.Position))
	if rl.Vector3DotProduct(dir, want) < 0.999 {
		t.Errorf("forward %v does not point at target, want direction %v", dir, want)
	}
}

func TestLookAtClampsPitch(t *testing.T) {
	c := New(rl.Vector3{})
	c.LookAt(rl.Vector3{X: 0.0001, Y: 100, Z: 0})
	if c.Pitch > 89 {
		t.Errorf("pitch %v exceeds clamp", c.Pitch)
	}
}

func TestPickRaySpansMaxDistance(t *testing.T) {
	c := New(rl.Vector3{X: 1, Y: 2, Z: 3})
	near, far := c.PickRay(50)

	if near != c.Position {
		t.Errorf("near point %v, want camera position %v", near, c.Position)
	}
	if d := rl.Vector3Length(rl.Vector3Subtract(far, near)); d < 49.99 || d > 50.01 {
		t.Errorf("ray length %v, want 50", d)
	}
}
