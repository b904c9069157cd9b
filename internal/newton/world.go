package newton

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World owns every body, joint and material pair of one simulation. All
// methods must be called from the simulation-owner goroutine; the force,
// transform and contact callbacks run synchronously inside Step.
type World struct {
	bodies []*Body
	joints []*Joint

	groupCount  int
	pairs       map[[2]int]*MaterialPair
	defaultPair MaterialPair

	// contact begin/end tracking across steps
	activeContacts  map[bodyPair]bool
	currentContacts map[bodyPair]bool
}

type bodyPair struct {
	a, b *Body
}

// makeBodyPair creates a consistent pair key (smaller pointer first).
func makeBodyPair(a, b *Body) bodyPair {
	if uintptr(unsafe.Pointer(a)) > uintptr(unsafe.Pointer(b)) {
		a, b = b, a
	}
	return bodyPair{a: a, b: b}
}

func NewWorld() *World {
	return &World{
		pairs:           make(map[[2]int]*MaterialPair),
		defaultPair:     DefaultMaterialPair(),
		activeContacts:  make(map[bodyPair]bool),
		currentContacts: make(map[bodyPair]bool),
	}
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int { return len(w.bodies) }

// JointCount returns the number of live joints.
func (w *World) JointCount() int { return len(w.joints) }

// Destroy drops every body and joint. The world stays usable.
func (w *World) Destroy() {
	w.bodies = nil
	w.joints = nil
	w.activeContacts = make(map[bodyPair]bool)
	w.currentContacts = make(map[bodyPair]bool)
}

// Step advances the simulation by one fixed timestep: force callbacks,
// integration, contact resolution, joint solving, then transform callbacks.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}

	w.currentContacts = make(map[bodyPair]bool)

	// 1. forces and integration
	for _, b := range w.bodies {
		if !b.dynamic() || b.sleeping {
			continue
		}

		b.force = rl.Vector3{}
		b.torque = rl.Vector3{}
		if b.forceCallback != nil {
			b.forceCallback(b, dt)
		}

		b.veloc = rl.Vector3Add(b.veloc, rl.Vector3Scale(b.force, b.invMass*dt))
		if b.inertia.X > 0 {
			b.omega.X += b.torque.X / b.inertia.X * dt
		}
		if b.inertia.Y > 0 {
			b.omega.Y += b.torque.Y / b.inertia.Y * dt
		}
		if b.inertia.Z > 0 {
			b.omega.Z += b.torque.Z / b.inertia.Z * dt
		}

		// viscous damping
		if b.linearDamping > 0 {
			b.veloc = rl.Vector3Scale(b.veloc, 1/(1+b.linearDamping*dt))
		}
		b.omega.X /= 1 + b.angularDamping.X*dt
		b.omega.Y /= 1 + b.angularDamping.Y*dt
		b.omega.Z /= 1 + b.angularDamping.Z*dt

		b.setPosition(rl.Vector3Add(b.position(), rl.Vector3Scale(b.veloc, dt)))
		b.integrateOrientation(dt)
	}

	// 2. contacts
	w.resolveContacts()

	// 3. joints
	for _, j := range w.joints {
		j.solve(dt)
		if j.userCallback != nil {
			j.userCallback(j, dt)
		}
	}

	// 4. sleep accounting and transform callbacks
	for _, b := range w.bodies {
		if !b.dynamic() || b.sleeping {
			continue
		}
		b.trySleep(dt)
		if b.transformCallback != nil {
			b.transformCallback(b, b.matrix)
		}
	}

	w.dispatchContactEnds()
}

func (w *World) resolveContacts() {
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := w.bodies[i], w.bodies[j]
			if a.frozen || b.frozen || a.ghost || b.ghost {
				continue
			}
			if !a.dynamic() && !b.dynamic() {
				continue
			}
			if a.sleeping && b.sleeping {
				continue
			}

			pair := w.PairProperties(a.materialGroup, b.materialGroup)
			if !pair.Collidable {
				continue
			}
			if w.contactsSuppressed(a, b) {
				continue
			}
			if !a.AABB().Intersects(b.AABB()) {
				continue
			}

			contacts := Collide(4, a.shape, a.matrix, b.shape, b.matrix)
			if len(contacts) == 0 {
				continue
			}

			key := makeBodyPair(a, b)
			began := !w.activeContacts[key]
			w.currentContacts[key] = true

			if began && pair.OnBegin != nil {
				if !pair.OnBegin(a, b) {
					continue
				}
			}

			w.wakeOnContact(a, b)
			for k := range contacts {
				w.resolveContact(a, b, &contacts[k], pair)
			}
		}
	}
	w.activeContacts, w.currentContacts = w.currentContacts, w.activeContacts
}

// contactsSuppressed reports whether a joint links the two bodies and its
// collision state leaves contact generation between them disabled.
func (w *World) contactsSuppressed(a, b *Body) bool {
	for _, j := range w.joints {
		if j.collisionEnabled {
			continue
		}
		if (j.child == a && j.parent == b) || (j.child == b && j.parent == a) {
			return true
		}
	}
	return false
}

// resolveContact applies positional correction plus an impulse response for
// one contact point. The contact normal points from b toward a.
func (w *World) resolveContact(a, b *Body, c *ContactPoint, pair *MaterialPair) {
	invMassSum := a.invMass + b.invMass
	if invMassSum == 0 {
		return
	}

	// softness relaxes how much of the penetration is corrected per step
	correction := c.Penetration * (1 - clamp(pair.Softness, 0, 1))
	push := rl.Vector3Scale(c.Normal, correction)
	if a.invMass > 0 {
		a.setPosition(rl.Vector3Add(a.position(), rl.Vector3Scale(push, a.invMass/invMassSum)))
	}
	if b.invMass > 0 {
		b.setPosition(rl.Vector3Subtract(b.position(), rl.Vector3Scale(push, b.invMass/invMassSum)))
	}

	relVel := rl.Vector3Subtract(a.veloc, b.veloc)
	velAlongNormal := rl.Vector3DotProduct(relVel, c.Normal)
	normalSpeed := -velAlongNormal

	if pair.OnProcess != nil {
		pair.OnProcess(&Contact{
			Body0:       a,
			Body1:       b,
			Position:    c.Position,
			Normal:      c.Normal,
			Penetration: c.Penetration,
			NormalSpeed: normalSpeed,
		})
	}

	// only respond when closing
	if velAlongNormal > 0 {
		return
	}

	e := clamp(pair.Elasticity, 0, 1)
	jimp := -(1 + e) * velAlongNormal / invMassSum
	impulse := rl.Vector3Scale(c.Normal, jimp)

	a.veloc = rl.Vector3Add(a.veloc, rl.Vector3Scale(impulse, a.invMass))
	b.veloc = rl.Vector3Subtract(b.veloc, rl.Vector3Scale(impulse, b.invMass))

	// kinetic friction damps the tangential velocity
	tangent := rl.Vector3Subtract(relVel, rl.Vector3Scale(c.Normal, velAlongNormal))
	tangentSpeed := rl.Vector3Length(tangent)
	if tangentSpeed > 0.0001 {
		friction := clamp(pair.KineticFriction, 0, 1)
		drag := rl.Vector3Scale(tangent, friction)
		a.veloc = rl.Vector3Subtract(a.veloc, rl.Vector3Scale(drag, a.invMass/invMassSum))
		b.veloc = rl.Vector3Add(b.veloc, rl.Vector3Scale(drag, b.invMass/invMassSum))
	}

	// crude torque from the contact offset keeps boxes from sliding unnaturally
	if a.invMass > 0 {
		ra := rl.Vector3Subtract(c.Position, a.position())
		it := cross(ra, impulse)
		applyAngularImpulse(a, it)
	}
	if b.invMass > 0 {
		rb := rl.Vector3Subtract(c.Position, b.position())
		it := cross(rb, rl.Vector3Negate(impulse))
		applyAngularImpulse(b, it)
	}
}

func applyAngularImpulse(b *Body, t rl.Vector3) {
	if b.inertia.X > 0 {
		b.omega.X += t.X / b.inertia.X
	}
	if b.inertia.Y > 0 {
		b.omega.Y += t.Y / b.inertia.Y
	}
	if b.inertia.Z > 0 {
		b.omega.Z += t.Z / b.inertia.Z
	}
}

// wakeOnContact wakes sleeping bodies only when the relative velocity is
// significant, so settled stacks stay asleep.
func (w *World) wakeOnContact(a, b *Body) {
	relVel := rl.Vector3Subtract(a.veloc, b.veloc)
	if rl.Vector3Length(relVel) > sleepVelocityThreshold*2 {
		if a.sleeping {
			a.wake()
		}
		if b.sleeping {
			b.wake()
		}
	}
}

func (w *World) dispatchContactEnds() {
	// activeContacts now holds this step (swapped in resolveContacts);
	// currentContacts holds the previous step
	for key := range w.currentContacts {
		if !w.activeContacts[key] {
			pair := w.PairProperties(key.a.materialGroup, key.b.materialGroup)
			if pair.OnEnd != nil {
				pair.OnEnd(key.a, key.b)
			}
		}
	}
}

// integrateOrientation advances the body quaternion by omega over dt and
// rebuilds the rotation part of the matrix.
func (b *Body) integrateOrientation(dt float32) {
	o := b.omega
	if o.X == 0 && o.Y == 0 && o.Z == 0 {
		return
	}

	q := rl.QuaternionFromMatrix(b.matrix)

	// dq/dt = 0.5 * (0, omega) * q
	half := dt * 0.5
	dq := rl.Quaternion{
		X: half * (o.X*q.W + o.Y*q.Z - o.Z*q.Y),
		Y: half * (o.Y*q.W + o.Z*q.X - o.X*q.Z),
		Z: half * (o.Z*q.W + o.X*q.Y - o.Y*q.X),
		W: half * (-o.X*q.X - o.Y*q.Y - o.Z*q.Z),
	}
	q.X += dq.X
	q.Y += dq.Y
	q.Z += dq.Z
	q.W += dq.W
	q = rl.QuaternionNormalize(q)

	pos := b.position()
	b.matrix = rl.QuaternionToMatrix(q)
	b.setPosition(pos)
}
