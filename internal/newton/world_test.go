package newton

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func gravityCallback(b *Body, dt float32) {
	b.AddForce(rl.NewVector3(0, -9.8*b.Mass(), 0))
}

func dynamicSphere(w *World, radius float32, pos rl.Vector3) *Body {
	b := w.CreateBody(NewSphere(radius))
	b.SetMatrix(rl.MatrixTranslate(pos.X, pos.Y, pos.Z))
	b.SetMassMatrix(1, NewSphere(radius).ConvexInertia())
	b.SetForceAndTorqueCallback(gravityCallback)
	return b
}

func TestBodyFallsUnderGravity(t *testing.T) {
	w := NewWorld()
	b := dynamicSphere(w, 1, rl.NewVector3(0, 100, 0))

	for i := 0; i < 100; i++ {
		w.Step(0.01)
	}
	y := b.Matrix().M13
	// Semi-implicit Euler over 1s: a bit more than 0.5*g.
	if y > 96 || y < 94 {
		t.Errorf("Body at y = %v after 1s of gravity, expected around 95", y)
	}
	if b.Velocity().Y > -9 {
		t.Errorf("Velocity.Y = %v, expected around -9.8", b.Velocity().Y)
	}
}

func TestStaticBodyIgnoresForces(t *testing.T) {
	w := NewWorld()
	b := w.CreateBody(NewBox(1, 1, 1))
	b.SetMatrix(rl.MatrixTranslate(0, 5, 0))
	b.SetForceAndTorqueCallback(gravityCallback)

	for i := 0; i < 50; i++ {
		w.Step(0.01)
	}
	if b.Matrix().M13 != 5 {
		t.Errorf("Static body moved to y = %v", b.Matrix().M13)
	}
}

func TestSphereRestsOnGround(t *testing.T) {
	w := NewWorld()
	ground := w.CreateBody(NewBox(100, 1, 100))
	ground.SetMatrix(rl.MatrixTranslate(0, -0.5, 0))

	ball := dynamicSphere(w, 1, rl.NewVector3(0, 3, 0))

	for i := 0; i < 600; i++ {
		w.Step(0.008)
	}
	y := ball.Matrix().M13
	if y < 0.5 || y > 1.6 {
		t.Errorf("Ball settled at y = %v, expected to rest near 1", y)
	}
}

func TestContactBeginAndEnd(t *testing.T) {
	w := NewWorld()
	groupA := w.CreateGroupID()
	groupB := w.CreateGroupID()

	var began, ended bool
	pair := DefaultMaterialPair()
	pair.OnBegin = func(b0, b1 *Body) bool { began = true; return true }
	pair.OnEnd = func(b0, b1 *Body) { ended = true }
	w.SetPairProperties(groupA, groupB, pair)

	static := w.CreateBody(NewBox(2, 2, 2))
	static.SetMaterialGroupID(groupA)

	mover := w.CreateBody(NewSphere(1))
	mover.SetMassMatrix(1, NewSphere(1).ConvexInertia())
	mover.SetMatrix(rl.MatrixTranslate(0.5, 0, 0))
	mover.SetMaterialGroupID(groupB)

	w.Step(0.01)
	if !began {
		t.Fatal("OnBegin should fire for a fresh overlap")
	}

	mover.SetMatrix(rl.MatrixTranslate(50, 0, 0))
	w.Step(0.01)
	if !ended {
		t.Error("OnEnd should fire once the bodies separate")
	}
}

func TestContactBeginCanReject(t *testing.T) {
	w := NewWorld()
	g := w.CreateGroupID()
	pair := DefaultMaterialPair()
	pair.OnBegin = func(b0, b1 *Body) bool { return false }
	w.SetPairProperties(0, g, pair)

	static := w.CreateBody(NewBox(4, 4, 4))
	mover := w.CreateBody(NewSphere(1))
	mover.SetMassMatrix(1, NewSphere(1).ConvexInertia())
	mover.SetMatrix(rl.MatrixTranslate(0, 1, 0))
	mover.SetMaterialGroupID(g)
	_ = static

	before := mover.Matrix().M13
	w.Step(0.01)
	if mover.Matrix().M13 != before {
		t.Error("Rejected contact should apply no correction")
	}
}

func TestNonCollidablePairPassesThrough(t *testing.T) {
	w := NewWorld()
	g := w.CreateGroupID()
	pair := DefaultMaterialPair()
	pair.Collidable = false
	w.SetPairProperties(0, g, pair)

	static := w.CreateBody(NewBox(4, 4, 4))
	_ = static
	mover := w.CreateBody(NewSphere(1))
	mover.SetMassMatrix(1, NewSphere(1).ConvexInertia())
	mover.SetVelocity(rl.NewVector3(1, 0, 0))
	mover.SetMaterialGroupID(g)

	w.Step(0.01)
	v := mover.Velocity()
	if v.X != 1 {
		t.Errorf("Non-collidable pair should leave velocity alone, got %v", v)
	}
}

func TestGhostBodyGeneratesNoContacts(t *testing.T) {
	w := NewWorld()
	static := w.CreateBody(NewBox(4, 4, 4))
	_ = static

	mover := w.CreateBody(NewSphere(1))
	mover.SetMassMatrix(1, NewSphere(1).ConvexInertia())
	mover.SetVelocity(rl.NewVector3(1, 0, 0))
	mover.SetCollidable(false)

	w.Step(0.01)
	if mover.Velocity().X != 1 {
		t.Errorf("Ghost body should pass through, velocity = %v", mover.Velocity())
	}
}

func TestAutoSleep(t *testing.T) {
	w := NewWorld()
	b := w.CreateBody(NewBox(1, 1, 1))
	b.SetMassMatrix(1, NewBox(1, 1, 1).ConvexInertia())
	// no force callback, no motion

	for i := 0; i < 100; i++ {
		w.Step(0.01)
	}
	if !b.Sleeping() {
		t.Error("Idle body should fall asleep")
	}

	b.SetVelocity(rl.NewVector3(5, 0, 0))
	if b.Sleeping() {
		t.Error("Setting velocity should wake the body")
	}
}

func TestSleepDisabled(t *testing.T) {
	w := NewWorld()
	b := w.CreateBody(NewBox(1, 1, 1))
	b.SetMassMatrix(1, NewBox(1, 1, 1).ConvexInertia())
	b.SetAutoSleep(false)

	for i := 0; i < 100; i++ {
		w.Step(0.01)
	}
	if b.Sleeping() {
		t.Error("Body with auto sleep disabled should stay awake")
	}
}

func TestDestroyBodyDropsJoints(t *testing.T) {
	w := NewWorld()
	a := w.CreateBody(NewSphere(1))
	b := w.CreateBody(NewSphere(1))
	w.CreateBallSocket(rl.NewVector3(0, 1, 0), a, b)

	if w.JointCount() != 1 {
		t.Fatalf("Expected 1 joint, got %d", w.JointCount())
	}
	w.DestroyBody(a)
	if w.JointCount() != 0 {
		t.Errorf("Destroying a body should remove its joints, got %d", w.JointCount())
	}
	if w.BodyCount() != 1 {
		t.Errorf("Expected 1 remaining body, got %d", w.BodyCount())
	}
}

func TestLinearDamping(t *testing.T) {
	w := NewWorld()
	b := w.CreateBody(NewSphere(1))
	b.SetMassMatrix(1, NewSphere(1).ConvexInertia())
	b.SetAutoSleep(false)
	b.SetLinearDamping(2)
	b.SetVelocity(rl.NewVector3(10, 0, 0))

	for i := 0; i < 100; i++ {
		w.Step(0.01)
	}
	if v := b.Velocity().X; v >= 10 || v <= 0 {
		t.Errorf("Damped velocity = %v, expected decayed but positive", v)
	}
	if b.Velocity().X > 2 {
		t.Errorf("Velocity %v barely decayed under damping", b.Velocity().X)
	}
}

func TestJointSuppressesContactsByDefault(t *testing.T) {
	w := NewWorld()
	a := dynamicSphere(w, 1, rl.NewVector3(0, 0, 0))
	b := dynamicSphere(w, 1, rl.NewVector3(1.5, 0, 0))

	began := 0
	pair := DefaultMaterialPair()
	pair.OnBegin = func(b0, b1 *Body) bool {
		began++
		return true
	}
	w.SetPairProperties(0, 0, pair)

	joint := w.CreateBallSocket(rl.NewVector3(0.75, 0, 0), a, b)
	w.Step(0.01)
	if began != 0 {
		t.Errorf("joint-linked overlapping bodies produced %d contact begins, want 0", began)
	}

	joint.SetCollisionState(true)
	w.Step(0.01)
	if began == 0 {
		t.Error("enabling joint collision should restore contact generation")
	}
}
