package physics

import (
	"log"
	"sync"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

// Stepping constants: the simulation aims for two substeps per 16 ms
// frame and never runs fewer than two or more than five per update.
const (
	targetFrameTime = 0.016
	stepsPerFrame   = 2
	minSubsteps     = 2
	maxSubsteps     = 5
)

// record ties a registered object to its simulation body. The force and
// torque stacks may be pushed from any goroutine; they are drained
// inside the body's force callback every substep.
type record struct {
	object *Object
	body   *newton.Body
	scale  rl.Vector3

	stackMu sync.Mutex
	forces  []rl.Vector3
	torques []rl.Vector3
	// wake marks a queued unfreeze: pushes may come from any goroutine,
	// so the body itself is only touched on the simulation thread.
	wake bool
}

type objectPair [2]*Object

// Engine owns a simulation world and the bookkeeping that maps scene
// objects onto it. Registry and update methods belong on the loop
// goroutine; AddForce and AddTorque may be called from anywhere.
type Engine struct {
	mu       sync.Mutex
	settings Settings
	world    *newton.World
	gravity  rl.Vector3

	byObject map[*Object]*record
	byBody   map[*newton.Body]*record

	materials map[string]*Material
	groups    map[string]int

	pendingJoints []jointRequest

	pairCallbacks map[*CollisionPair]CollisionCallback

	picked []PickedObject
}

// NewEngine creates an empty simulation with the given settings.
func NewEngine(settings Settings) *Engine {
	return &Engine{
		settings:      settings,
		world:         newton.NewWorld(),
		gravity:       settings.GravityVector(),
		byObject:      make(map[*Object]*record),
		byBody:        make(map[*newton.Body]*record),
		materials:     make(map[string]*Material),
		groups:        make(map[string]int),
		pairCallbacks: make(map[*CollisionPair]CollisionCallback),
	}
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() Settings { return e.settings }

// BodyCount reports how many bodies the simulation currently holds.
func (e *Engine) BodyCount() int { return e.world.BodyCount() }

// JointCount reports how many materialized joints exist. Pending joints
// waiting on unregistered objects are not counted.
func (e *Engine) JointCount() int { return e.world.JointCount() }

// SetGravity changes the world gravity for subsequent steps.
func (e *Engine) SetGravity(g rl.Vector3) {
	e.mu.Lock()
	e.gravity = g
	e.mu.Unlock()
}

// AddPhysicsObject registers an object and creates its simulation body
// at the object's compound initial transform. Adding an object twice is
// a no-op. Vehicles are validated before anything is created.
func (e *Engine) AddPhysicsObject(obj *Object) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.byObject[obj]; ok {
		return nil
	}
	if obj.Vehicle != nil {
		if err := obj.Vehicle.validate(); err != nil {
			return err
		}
	}

	scale, rotation, translation := decompose(obj.CompoundInitialWorldTransform)
	shape, err := e.buildCollision(obj, scale)
	if err != nil {
		return err
	}

	body := e.world.CreateBody(shape)
	body.SetUserData(obj)
	body.SetMatrix(composeBodyMatrix(obj, rotation, translation))
	body.SetCollidable(obj.Collidable)
	if !obj.Collidable {
		body.Freeze()
	}
	body.SetMaterialGroupID(e.groupFor(obj.MaterialName))

	rec := &record{object: obj, body: body, scale: scale}

	if isDynamic(obj) {
		e.applyDynamics(rec, shape)
	}

	e.byObject[obj] = rec
	e.byBody[body] = rec
	obj.PhysicsWorldTransform = obj.CompoundInitialWorldTransform

	if obj.Vehicle != nil {
		e.attachVehicle(rec)
	}
	e.resolveJoints()
	return nil
}

// isDynamic reports whether an object simulates: it needs both mass and
// the interactable flag. Triangle meshes are always eligible for a body
// but never dynamic.
func isDynamic(obj *Object) bool {
	return obj.Mass != 0 && obj.Interactable && obj.Shape != TriangleMesh
}

// applyDynamics installs mass, inertia, damping, initial velocities and
// the default callbacks on a dynamic body. Callers hold e.mu.
func (e *Engine) applyDynamics(rec *record, shape *newton.Shape) {
	obj := rec.object
	body := rec.body

	body.SetMassMatrix(obj.Mass, computeInertia(obj, shape))
	body.SetCenterOfMass(correctedCenterOfMass(obj))

	if obj.LinearDamping >= 0 {
		body.SetLinearDamping(obj.LinearDamping)
	}
	if obj.AngularDamping.X >= 0 && obj.AngularDamping.Y >= 0 && obj.AngularDamping.Z >= 0 {
		body.SetAngularDamping(obj.AngularDamping)
	}
	if obj.NeverDeactivate {
		body.SetAutoSleep(false)
	}

	body.SetVelocity(obj.InitialLinearVelocity)
	body.SetOmega(obj.InitialAngularVelocity)

	body.SetForceAndTorqueCallback(e.applyBodyForces)
	body.SetTransformCallback(e.publishTransform)
}

// applyBodyForces is the single force callback shared by every dynamic
// body; it runs once per substep inside the world step. Vehicle chassis
// route to their own callback, everything else gets gravity plus the
// drained force and torque stacks.
func (e *Engine) applyBodyForces(b *newton.Body, timestep float32) {
	rec := e.bodyRecord(b)
	if rec == nil {
		return
	}
	if v := rec.object.Vehicle; v != nil {
		v.ForceCallback(b, timestep)
		return
	}
	if rec.object.ApplyGravity {
		b.AddForce(rl.Vector3Scale(e.gravity, b.Mass()))
	}
	rec.stackMu.Lock()
	for _, f := range rec.forces {
		b.AddForce(f)
	}
	for _, t := range rec.torques {
		b.AddTorque(t)
	}
	rec.forces = rec.forces[:0]
	rec.torques = rec.torques[:0]
	rec.stackMu.Unlock()
}

// publishTransform is the single transform callback shared by every
// body: it writes the simulated pose back onto the object, then hands
// vehicles their chassis pose.
func (e *Engine) publishTransform(b *newton.Body, m rl.Matrix) {
	rec := e.bodyRecord(b)
	if rec == nil {
		return
	}
	e.writeBackTransform(rec, m)
	if v := rec.object.Vehicle; v != nil {
		v.TransformCallback(b, m)
	}
}

// bodyRecord is the locked body-to-record lookup the shared callbacks
// use. Step runs without the engine lock held, so taking it here is
// safe.
func (e *Engine) bodyRecord(b *newton.Body) *record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.byBody[b]
}

// writeBackTransform folds the object's scale and any axis correction
// back into the simulated pose and publishes it on the object.
func (e *Engine) writeBackTransform(rec *record, m rl.Matrix) {
	obj := rec.object
	out := rl.MatrixScale(rec.scale.X, rec.scale.Y, rec.scale.Z)
	if obj.Shape.axiallyRotated() {
		out = rl.MatrixMultiply(out, rl.MatrixRotateZ(-math32.Pi/2))
	}
	obj.PhysicsWorldTransform = rl.MatrixMultiply(out, m)
}

// ModifyPhysicsObject moves a registered object to a new pose and
// re-applies its simulation properties. Unregistered objects are ignored.
func (e *Engine) ModifyPhysicsObject(obj *Object, newTransform rl.Matrix) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := e.byObject[obj]
	if rec == nil {
		return
	}
	scale, rotation, translation := decompose(newTransform)
	if scale != rec.scale {
		shape, err := e.buildCollision(obj, scale)
		if err != nil {
			log.Printf("Physics: rebuilding collision for modified object failed: %v", err)
		} else {
			rec.body.SetShape(shape)
		}
	}
	rec.scale = scale
	rec.body.SetMatrix(composeBodyMatrix(obj, rotation, translation))
	rec.body.SetCollidable(obj.Collidable)
	if obj.Collidable {
		rec.body.Unfreeze()
	} else {
		rec.body.Freeze()
	}
	rec.body.SetMaterialGroupID(e.groupFor(obj.MaterialName))
	if isDynamic(obj) {
		e.applyDynamics(rec, rec.body.Shape())
	} else {
		rec.body.SetMassMatrix(0, rl.Vector3{})
		rec.body.SetForceAndTorqueCallback(nil)
	}
	obj.Modified = false
	e.writeBackTransform(rec, rec.body.Matrix())
}

// RemovePhysicsObject takes an object out of the simulation, destroying
// its body and any joints attached to it. Unknown objects are ignored.
func (e *Engine) RemovePhysicsObject(obj *Object) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := e.byObject[obj]
	if rec == nil {
		return
	}
	if obj.Vehicle != nil {
		e.detachVehicle(rec)
	}
	e.world.DestroyBody(rec.body)
	delete(e.byObject, obj)
	delete(e.byBody, rec.body)
}

// SetTransform teleports a registered object, bypassing integration. The
// body is unfrozen and woken so it resumes simulating from the new pose.
func (e *Engine) SetTransform(obj *Object, transform rl.Matrix) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := e.byObject[obj]
	if rec == nil {
		return
	}
	scale, rotation, translation := decompose(transform)
	rec.scale = scale
	rec.body.SetMatrix(composeBodyMatrix(obj, rotation, translation))
	rec.body.Unfreeze()
	e.writeBackTransform(rec, rec.body.Matrix())
}

// GetBody returns the simulation body behind a registered object, or nil.
func (e *Engine) GetBody(obj *Object) *newton.Body {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rec := e.byObject[obj]; rec != nil {
		return rec.body
	}
	return nil
}

// GetPhysicsObject returns the object a body simulates, or nil.
func (e *Engine) GetPhysicsObject(body *newton.Body) *Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	if rec := e.byBody[body]; rec != nil {
		return rec.object
	}
	return nil
}

// ApplyLinearVelocity unfreezes the body and sets its velocity
// immediately.
func (e *Engine) ApplyLinearVelocity(obj *Object, velocity rl.Vector3) {
	if body := e.GetBody(obj); body != nil {
		body.Unfreeze()
		body.SetVelocity(velocity)
	}
}

// ApplyAngularVelocity unfreezes the body and sets its angular velocity
// immediately.
func (e *Engine) ApplyAngularVelocity(obj *Object, omega rl.Vector3) {
	if body := e.GetBody(obj); body != nil {
		body.Unfreeze()
		body.SetOmega(omega)
	}
}

// AddForce queues a force for the object's next substep and marks the
// body to be unfrozen and woken, so a sleeping body still receives it.
// Safe to call from any goroutine; forces accumulate until the body's
// force callback drains them.
func (e *Engine) AddForce(obj *Object, force rl.Vector3) {
	e.mu.Lock()
	rec := e.byObject[obj]
	e.mu.Unlock()
	if rec == nil {
		return
	}
	rec.stackMu.Lock()
	rec.forces = append(rec.forces, force)
	rec.wake = true
	rec.stackMu.Unlock()
}

// AddTorque queues a torque for the object's next substep, unfreezing
// and waking the body the same way AddForce does.
func (e *Engine) AddTorque(obj *Object, torque rl.Vector3) {
	e.mu.Lock()
	rec := e.byObject[obj]
	e.mu.Unlock()
	if rec == nil {
		return
	}
	rec.stackMu.Lock()
	rec.torques = append(rec.torques, torque)
	rec.wake = true
	rec.stackMu.Unlock()
}

// GetAxisAlignedBoundingBox returns the world bounds of an object's
// collision volume. Unregistered objects yield zero bounds.
func (e *Engine) GetAxisAlignedBoundingBox(obj *Object) (min, max rl.Vector3) {
	body := e.GetBody(obj)
	if body == nil {
		return rl.Vector3{}, rl.Vector3{}
	}
	box := body.AABB()
	return box.Min, box.Max
}

// collisionMeshMaxVerts caps the per-face vertex buffer when exporting
// collision geometry.
const collisionMeshMaxVerts = 16

// GetCollisionMesh exports the collision volume of a registered object
// as world-space faces, for debug drawing. Faces beyond the vertex
// budget are truncated with a warning.
func (e *Engine) GetCollisionMesh(obj *Object) [][]rl.Vector3 {
	body := e.GetBody(obj)
	if body == nil {
		return nil
	}
	var faces [][]rl.Vector3
	body.ForEachPolygon(func(face []rl.Vector3) {
		if len(face) > collisionMeshMaxVerts {
			log.Printf("Physics: collision face has %d vertices, truncating to %d",
				len(face), collisionMeshMaxVerts)
			face = face[:collisionMeshMaxVerts]
		}
		out := make([]rl.Vector3, len(face))
		copy(out, face)
		faces = append(faces, out)
	})
	return faces
}

// AddPhysicsMaterial registers the surface response between two named
// material groups. Registering the same pair again is a no-op.
func (e *Engine) AddPhysicsMaterial(mat *Material) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := mat.pairName()
	if _, ok := e.materials[key]; ok {
		return
	}
	e.materials[key] = mat

	pair := newton.DefaultMaterialPair()
	pair.Collidable = mat.Collidable
	if mat.StaticFriction >= 0 && mat.KineticFriction >= 0 && mat.KineticFriction <= mat.StaticFriction {
		pair.StaticFriction = mat.StaticFriction
		pair.KineticFriction = mat.KineticFriction
	}
	if mat.Elasticity >= 0 {
		pair.Elasticity = mat.Elasticity
	}
	if mat.Softness >= 0 {
		pair.Softness = mat.Softness
	}
	if mat.ContactBegin != nil {
		pair.OnBegin = func(b0, b1 *newton.Body) bool {
			mat.ContactBegin(e.objectOf(b0), e.objectOf(b1))
			return true
		}
	}
	if mat.ContactProcess != nil {
		pair.OnProcess = func(c *newton.Contact) {
			mat.ContactProcess(ContactReport{
				Object1:     e.objectOf(c.Body0),
				Object2:     e.objectOf(c.Body1),
				Position:    c.Position,
				Normal:      c.Normal,
				Penetration: c.Penetration,
				NormalSpeed: c.NormalSpeed,
			})
		}
	}
	if mat.ContactEnd != nil {
		pair.OnEnd = func(b0, b1 *newton.Body) {
			mat.ContactEnd(e.objectOf(b0), e.objectOf(b1))
		}
	}
	e.world.SetPairProperties(e.groupFor(mat.MaterialName1), e.groupFor(mat.MaterialName2), pair)
}

// RemovePhysicsMaterial restores the default response for a pair.
func (e *Engine) RemovePhysicsMaterial(name1, name2 string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.materials, name1+name2)
	g1, ok1 := e.groups[name1]
	g2, ok2 := e.groups[name2]
	if ok1 && ok2 {
		e.world.SetPairProperties(g1, g2, newton.DefaultMaterialPair())
	}
}

// RemoveAllPhysicsMaterials restores the default response for every
// registered pair.
func (e *Engine) RemoveAllPhysicsMaterials() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, mat := range e.materials {
		g1, ok1 := e.groups[mat.MaterialName1]
		g2, ok2 := e.groups[mat.MaterialName2]
		if ok1 && ok2 {
			e.world.SetPairProperties(g1, g2, newton.DefaultMaterialPair())
		}
	}
	e.materials = make(map[string]*Material)
}

// groupFor returns the native material group for a name, allocating one
// on first use. The empty name is the default group. Callers hold e.mu.
func (e *Engine) groupFor(name string) int {
	if name == "" {
		return 0
	}
	if id, ok := e.groups[name]; ok {
		return id
	}
	id := e.world.CreateGroupID()
	e.groups[name] = id
	return id
}

// objectOf is the body-to-object lookup used inside material callbacks.
func (e *Engine) objectOf(body *newton.Body) *Object {
	if rec := e.bodyRecord(body); rec != nil {
		return rec.object
	}
	return nil
}

// recordFor is the lock-held lookup used by joint resolution.
func (e *Engine) recordFor(obj *Object) *record {
	return e.byObject[obj]
}

// AddCollisionCallback queries the pair's overlap after every update.
// At most one callback exists per distinct object pair; registering
// again replaces it.
func (e *Engine) AddCollisionCallback(pair *CollisionPair, callback CollisionCallback) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for existing := range e.pairCallbacks {
		if samePair(existing, pair) {
			delete(e.pairCallbacks, existing)
		}
	}
	e.pairCallbacks[pair] = callback
}

// RemoveCollisionCallback stops querying the pair.
func (e *Engine) RemoveCollisionCallback(pair *CollisionPair) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for existing := range e.pairCallbacks {
		if samePair(existing, pair) {
			delete(e.pairCallbacks, existing)
		}
	}
}

// RemoveAllCollisionCallbacks drops every registered pair query.
func (e *Engine) RemoveAllCollisionCallbacks() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pairCallbacks = make(map[*CollisionPair]CollisionCallback)
}

func samePair(a, b *CollisionPair) bool {
	if a.Object1 == b.Object1 && a.Object2 == b.Object2 {
		return true
	}
	return a.Object1 == b.Object2 && a.Object2 == b.Object1
}

// Update advances the simulation by elapsed seconds, splitting it into
// two to five substeps, then evaluates registered collision pairs. The
// engine lock is not held during stepping, so contact and force
// callbacks may read engine state (lookups, AddForce, velocity queries);
// they must not Add or Remove objects mid-step.
func (e *Engine) Update(elapsed float32) {
	e.wakePendingBodies()
	steps := substepCount(elapsed)
	dt := elapsed / float32(steps)
	for i := 0; i < steps; i++ {
		e.world.Step(dt)
	}
	e.updateVehicleTires(dt)
	e.evaluateCollisionPairs()
}

// wakePendingBodies unfreezes every body with a queued force or torque.
// It runs on the simulation thread before stepping, so pushes made from
// other goroutines never touch body state directly.
func (e *Engine) wakePendingBodies() {
	e.mu.Lock()
	recs := make([]*record, 0, len(e.byObject))
	for _, rec := range e.byObject {
		recs = append(recs, rec)
	}
	e.mu.Unlock()
	for _, rec := range recs {
		rec.stackMu.Lock()
		wake := rec.wake
		rec.wake = false
		rec.stackMu.Unlock()
		if wake {
			rec.body.Unfreeze()
		}
	}
}

// updateVehicleTires gives every vehicle its per-frame tire callback
// so callers can advance wheel spin and suspension state.
func (e *Engine) updateVehicleTires(dt float32) {
	e.mu.Lock()
	var updates []func(float32)
	for _, rec := range e.byObject {
		if v := rec.object.Vehicle; v != nil {
			updates = append(updates, v.TireUpdate)
		}
	}
	e.mu.Unlock()
	for _, update := range updates {
		update(dt)
	}
}

// substepCount aims for two substeps per 16 ms frame, clamped to [2,5].
func substepCount(elapsed float32) int {
	steps := int(math32.Round(elapsed / targetFrameTime * stepsPerFrame))
	if steps < minSubsteps {
		steps = minSubsteps
	}
	if steps > maxSubsteps {
		steps = maxSubsteps
	}
	return steps
}

// evaluateCollisionPairs refills every registered pair's contact slices
// and invokes its callback. A panicking callback is logged and skipped
// so one bad pair cannot take down the update.
func (e *Engine) evaluateCollisionPairs() {
	e.mu.Lock()
	pairs := make(map[*CollisionPair]CollisionCallback, len(e.pairCallbacks))
	for pair, callback := range e.pairCallbacks {
		pairs[pair] = callback
	}
	e.mu.Unlock()

	for pair, callback := range pairs {
		e.evaluatePair(pair, callback)
	}
}

func (e *Engine) evaluatePair(pair *CollisionPair, callback CollisionCallback) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Physics: collision pair evaluation failed: %v", r)
		}
	}()

	e.mu.Lock()
	rec1 := e.byObject[pair.Object1]
	rec2 := e.byObject[pair.Object2]
	e.mu.Unlock()
	if rec1 == nil || rec2 == nil {
		return
	}
	contacts := newton.Collide(pair.MaxSize,
		rec1.body.Shape(), rec1.body.Matrix(),
		rec2.body.Shape(), rec2.body.Matrix())
	if len(contacts) == 0 {
		return
	}
	pair.reset()
	for i := range contacts {
		pair.ContactPoints = append(pair.ContactPoints, contacts[i].Position)
		pair.Normals = append(pair.Normals, contacts[i].Normal)
		pair.Penetrations = append(pair.Penetrations, contacts[i].Penetration)
	}
	callback(pair)
}

// Dispose tears down the whole simulation. The engine is unusable after.
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.world.Destroy()
	e.byObject = nil
	e.byBody = nil
	e.materials = nil
	e.groups = nil
	e.pendingJoints = nil
	e.pairCallbacks = nil
}

// Reset drops every object, material, joint and callback and starts an
// empty world with the same settings.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.world.Destroy()
	e.world = newton.NewWorld()
	e.byObject = make(map[*Object]*record)
	e.byBody = make(map[*newton.Body]*record)
	e.materials = make(map[string]*Material)
	e.groups = make(map[string]int)
	e.pendingJoints = nil
	e.pairCallbacks = make(map[*CollisionPair]CollisionCallback)
}

// composeBodyMatrix builds the scale-free native pose for an object:
// its rotation and translation, with the 90 degree correction about Z
// folded in first for primitives authored along a different axis.
func composeBodyMatrix(obj *Object, rotation rl.Matrix, translation rl.Vector3) rl.Matrix {
	m := rotation
	if obj.Shape.axiallyRotated() {
		m = rl.MatrixMultiply(rl.MatrixRotateZ(math32.Pi/2), rotation)
	}
	m.M12 = translation.X
	m.M13 = translation.Y
	m.M14 = translation.Z
	return m
}

// correctedCenterOfMass maps the declared center of mass into the
// native frame of axially rotated primitives.
func correctedCenterOfMass(obj *Object) rl.Vector3 {
	if obj.Shape.axiallyRotated() {
		return swapXY(obj.CenterOfMass)
	}
	return obj.CenterOfMass
}

// decompose splits a column-basis transform into per-axis scale, a
// pure-rotation matrix and a translation. Zero-length basis vectors
// decompose to unit scale.
func decompose(m rl.Matrix) (scale rl.Vector3, rotation rl.Matrix, translation rl.Vector3) {
	sx := math32.Sqrt(m.M0*m.M0 + m.M1*m.M1 + m.M2*m.M2)
	sy := math32.Sqrt(m.M4*m.M4 + m.M5*m.M5 + m.M6*m.M6)
	sz := math32.Sqrt(m.M8*m.M8 + m.M9*m.M9 + m.M10*m.M10)
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	rotation = rl.MatrixIdentity()
	rotation.M0, rotation.M1, rotation.M2 = m.M0/sx, m.M1/sx, m.M2/sx
	rotation.M4, rotation.M5, rotation.M6 = m.M4/sy, m.M5/sy, m.M6/sy
	rotation.M8, rotation.M9, rotation.M10 = m.M8/sz, m.M9/sz, m.M10/sz
	return rl.NewVector3(sx, sy, sz), rotation, rl.NewVector3(m.M12, m.M13, m.M14)
}

// translationOf extracts the position column of a transform.
func translationOf(m rl.Matrix) rl.Vector3 {
	return rl.NewVector3(m.M12, m.M13, m.M14)
}

// rotateDirection transforms a direction by the rotation part of a
// matrix only.
func rotateDirection(v rl.Vector3, m rl.Matrix) rl.Vector3 {
	return rl.NewVector3(
		m.M0*v.X+m.M4*v.Y+m.M8*v.Z,
		m.M1*v.X+m.M5*v.Y+m.M9*v.Z,
		m.M2*v.X+m.M6*v.Y+m.M10*v.Z,
	)
}
