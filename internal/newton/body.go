package newton

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ForceTorqueCallback runs once per substep for every active dynamic body,
// inside Step. It is the only place AddForce/AddTorque may be called.
type ForceTorqueCallback func(b *Body, timestep float32)

// TransformCallback runs after integration for every body that moved.
type TransformCallback func(b *Body, matrix rl.Matrix)

// Sleep thresholds, shared by every body.
const (
	sleepVelocityThreshold = 0.05 // units/sec
	sleepOmegaThreshold    = 0.05 // rad/sec
	sleepTimeThreshold     = 0.5  // seconds below the thresholds before sleeping
)

// Body is one rigid body owned by a World. The matrix carries rotation and
// translation only; scale never enters the solver.
type Body struct {
	world *World
	shape *Shape

	matrix rl.Matrix
	veloc  rl.Vector3
	omega  rl.Vector3

	mass    float32
	invMass float32
	inertia rl.Vector3 // diagonal, mass-scaled
	com     rl.Vector3

	linearDamping  float32
	angularDamping rl.Vector3

	force  rl.Vector3 // valid inside the force callback only
	torque rl.Vector3

	materialGroup int
	userData      any

	forceCallback     ForceTorqueCallback
	transformCallback TransformCallback

	frozen     bool
	ghost      bool // excluded from contact generation
	sleeping   bool
	autoSleep  bool
	sleepTimer float32

	destroyed bool
}

// CreateBody adds a body with the given collision shape to the world. Bodies
// start static (zero mass), awake and unfrozen at the identity transform.
func (w *World) CreateBody(shape *Shape) *Body {
	b := &Body{
		world:          w,
		shape:          shape,
		matrix:         rl.MatrixIdentity(),
		invMass:        0,
		autoSleep:      true,
		linearDamping:  0,
		angularDamping: rl.Vector3{},
	}
	w.bodies = append(w.bodies, b)
	return b
}

// DestroyBody removes the body and any joints attached to it.
func (w *World) DestroyBody(b *Body) {
	if b == nil || b.destroyed {
		return
	}
	b.destroyed = true
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	kept := w.joints[:0]
	for _, j := range w.joints {
		if j.child != b && j.parent != b {
			kept = append(kept, j)
		}
	}
	w.joints = kept
}

func (b *Body) Shape() *Shape     { return b.shape }
func (b *Body) Matrix() rl.Matrix { return b.matrix }

// SetShape replaces the body's collision shape in place, keeping its pose.
func (b *Body) SetShape(s *Shape) {
	if s != nil {
		b.shape = s
	}
}

// SetMatrix teleports the body. Velocity is preserved.
func (b *Body) SetMatrix(m rl.Matrix) {
	b.matrix = m
}

func (b *Body) Velocity() rl.Vector3 { return b.veloc }
func (b *Body) Omega() rl.Vector3    { return b.omega }

func (b *Body) SetVelocity(v rl.Vector3) {
	b.veloc = v
	b.wake()
}

func (b *Body) SetOmega(v rl.Vector3) {
	b.omega = v
	b.wake()
}

// SetMassMatrix assigns mass and the diagonal inertia tensor. Zero mass
// makes the body static. Inertia components are taken by magnitude, so
// callers may pass axis-corrected values with sign conventions of their own.
func (b *Body) SetMassMatrix(mass float32, inertia rl.Vector3) {
	b.mass = mass
	b.inertia = rl.NewVector3(math32.Abs(inertia.X), math32.Abs(inertia.Y), math32.Abs(inertia.Z))
	if mass > 0 {
		b.invMass = 1 / mass
	} else {
		b.invMass = 0
	}
}

func (b *Body) Mass() float32 { return b.mass }
func (b *Body) Inertia() rl.Vector3 { return b.inertia }
func (b *Body) SetCenterOfMass(c rl.Vector3) { b.com = c }
func (b *Body) CenterOfMass() rl.Vector3 { return b.com }

func (b *Body) SetLinearDamping(d float32) { b.linearDamping = d }
func (b *Body) SetAngularDamping(d rl.Vector3) { b.angularDamping = d }
func (b *Body) SetMaterialGroupID(id int) { b.materialGroup = id }
func (b *Body) MaterialGroupID() int { return b.materialGroup }
func (b *Body) SetUserData(v any) { b.userData = v }
func (b *Body) UserData() any { return b.userData }

func (b *Body) SetForceAndTorqueCallback(fn ForceTorqueCallback) { b.forceCallback = fn }
func (b *Body) SetTransformCallback(fn TransformCallback)        { b.transformCallback = fn }

// SetAutoSleep controls whether the body may deactivate when at rest.
func (b *Body) SetAutoSleep(enabled bool) {
	b.autoSleep = enabled
	if !enabled {
		b.sleeping = false
		b.sleepTimer = 0
	}
}

// Freeze removes the body from integration and collision until Unfreeze.
func (b *Body) Freeze() { b.frozen = true }
func (b *Body) Unfreeze() { b.frozen = false; b.wake() }
func (b *Body) Frozen() bool { return b.frozen }

// SetCollidable toggles contact generation. A non-collidable body still
// integrates and can be joint-constrained; it just passes through others.
func (b *Body) SetCollidable(enabled bool) { b.ghost = !enabled }
func (b *Body) Collidable() bool { return !b.ghost }
func (b *Body) Sleeping() bool { return b.sleeping }

// AddForce accumulates a world-space force for the current substep. Only
// meaningful inside a force/torque callback; Step clears the accumulator
// before each callback runs.
func (b *Body) AddForce(f rl.Vector3) {
	b.force = rl.Vector3Add(b.force, f)
}

// AddTorque accumulates a world-space torque for the current substep.
func (b *Body) AddTorque(t rl.Vector3) {
	b.torque = rl.Vector3Add(b.torque, t)
}

// AABB returns the world-space bounds of the body's collision shape.
func (b *Body) AABB() AABB {
	return b.shape.worldOBB(b.matrix).WorldAABB()
}

// ForEachPolygon walks the body's collision geometry in world space.
func (b *Body) ForEachPolygon(fn func(face []rl.Vector3)) {
	b.shape.ForEachPolygon(b.matrix, fn)
}

func (b *Body) dynamic() bool {
	return b.mass > 0 && !b.frozen
}

func (b *Body) wake() {
	b.sleeping = false
	b.sleepTimer = 0
}

func (b *Body) trySleep(dt float32) {
	if !b.autoSleep || b.sleeping {
		return
	}
	speed := rl.Vector3Length(b.veloc)
	angSpeed := rl.Vector3Length(b.omega)
	if speed < sleepVelocityThreshold && angSpeed < sleepOmegaThreshold {
		b.sleepTimer += dt
		if b.sleepTimer >= sleepTimeThreshold {
			b.sleeping = true
			b.veloc = rl.Vector3{}
			b.omega = rl.Vector3{}
		}
	} else {
		b.sleepTimer = 0
	}
}

func (b *Body) position() rl.Vector3 {
	return translationOf(b.matrix)
}

func (b *Body) setPosition(p rl.Vector3) {
	b.matrix.M12 = p.X
	b.matrix.M13 = p.Y
	b.matrix.M14 = p.Z
}
