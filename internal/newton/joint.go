package newton

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// JointKind identifies the constraint type of a Joint.
type JointKind int

const (
	JointBallSocket JointKind = iota
	JointHinge
	JointSlider
	JointCorkscrew
	JointUniversal
	JointUpVector
)

// JointCallback runs once per Step after the joint was solved.
type JointCallback func(j *Joint, timestep float32)

// Joint links a child body to a parent body (or to the world when parent is
// nil). Anchors are stored in each body's local space so the constraint
// follows the bodies.
type Joint struct {
	kind   JointKind
	world  *World
	child  *Body
	parent *Body

	childPivot  rl.Vector3 // local to child
	parentPivot rl.Vector3 // local to parent, world space when parent is nil
	childPin    rl.Vector3
	parentPin   rl.Vector3
	childPin1   rl.Vector3 // universal second axis
	parentPin1  rl.Vector3

	maxCone  float32 // ball-and-socket cone limit, radians, 0 = unlimited
	maxTwist float32

	stiffness        float32
	collisionEnabled bool
	userCallback     JointCallback
}

func (w *World) newJoint(kind JointKind, child, parent *Body) *Joint {
	j := &Joint{
		kind:      kind,
		world:     w,
		child:     child,
		parent:    parent,
		stiffness: 0.9,
	}
	w.joints = append(w.joints, j)
	return j
}

// CreateBallSocket constrains the child's pivot to the parent's, leaving
// all rotation free. The pivot is given in world space.
func (w *World) CreateBallSocket(pivot rl.Vector3, child, parent *Body) *Joint {
	j := w.newJoint(JointBallSocket, child, parent)
	j.setPivot(pivot)
	return j
}

// SetConeLimits restricts a ball-and-socket joint to a cone around pin with
// a twist limit. Angles are in radians; zero disables the limit.
func (j *Joint) SetConeLimits(pin rl.Vector3, maxCone, maxTwist float32) {
	if j.kind != JointBallSocket {
		return
	}
	j.setPin(pin)
	j.maxCone = maxCone
	j.maxTwist = maxTwist
}

// CreateHinge allows rotation about pin only. Pivot and pin are world space.
func (w *World) CreateHinge(pivot, pin rl.Vector3, child, parent *Body) *Joint {
	j := w.newJoint(JointHinge, child, parent)
	j.setPivot(pivot)
	j.setPin(pin)
	return j
}

// CreateSlider allows translation along pin only.
func (w *World) CreateSlider(pivot, pin rl.Vector3, child, parent *Body) *Joint {
	j := w.newJoint(JointSlider, child, parent)
	j.setPivot(pivot)
	j.setPin(pin)
	return j
}

// CreateCorkscrew allows translation along and rotation about pin.
func (w *World) CreateCorkscrew(pivot, pin rl.Vector3, child, parent *Body) *Joint {
	j := w.newJoint(JointCorkscrew, child, parent)
	j.setPivot(pivot)
	j.setPin(pin)
	return j
}

// CreateUniversal allows rotation about two perpendicular pins.
func (w *World) CreateUniversal(pivot, pin0, pin1 rl.Vector3, child, parent *Body) *Joint {
	j := w.newJoint(JointUniversal, child, parent)
	j.setPivot(pivot)
	j.setPin(pin0)
	j.childPin1 = j.toChildLocalDir(pin1)
	j.parentPin1 = j.toParentLocalDir(pin1)
	return j
}

// CreateUpVector keeps the child's pin aligned with a fixed world direction.
// There is no positional constraint.
func (w *World) CreateUpVector(pin rl.Vector3, child *Body) *Joint {
	j := w.newJoint(JointUpVector, child, nil)
	j.childPin = j.toChildLocalDir(pin)
	j.parentPin = rl.Vector3Normalize(pin) // world space
	return j
}

// DestroyJoint removes the joint from the world.
func (w *World) DestroyJoint(j *Joint) {
	for i, other := range w.joints {
		if other == j {
			w.joints = append(w.joints[:i], w.joints[i+1:]...)
			return
		}
	}
}

func (j *Joint) Kind() JointKind { return j.kind }
func (j *Joint) Child() *Body    { return j.child }
func (j *Joint) Parent() *Body   { return j.parent }

// SetStiffness sets how much of the constraint error is corrected per step,
// in (0, 1].
func (j *Joint) SetStiffness(s float32) { j.stiffness = clamp(s, 0, 1) }

// SetCollisionState enables collision between the two linked bodies.
func (j *Joint) SetCollisionState(enabled bool) { j.collisionEnabled = enabled }

func (j *Joint) SetUserCallback(fn JointCallback) { j.userCallback = fn }

func (j *Joint) setPivot(worldPivot rl.Vector3) {
	j.childPivot = rl.Vector3Transform(worldPivot, rl.MatrixInvert(j.child.matrix))
	if j.parent != nil {
		j.parentPivot = rl.Vector3Transform(worldPivot, rl.MatrixInvert(j.parent.matrix))
	} else {
		j.parentPivot = worldPivot
	}
}

func (j *Joint) setPin(worldPin rl.Vector3) {
	j.childPin = j.toChildLocalDir(worldPin)
	j.parentPin = j.toParentLocalDir(worldPin)
}

func (j *Joint) toChildLocalDir(worldDir rl.Vector3) rl.Vector3 {
	return rotateOnly(rl.MatrixInvert(j.child.matrix), rl.Vector3Normalize(worldDir))
}

func (j *Joint) toParentLocalDir(worldDir rl.Vector3) rl.Vector3 {
	if j.parent == nil {
		return rl.Vector3Normalize(worldDir)
	}
	return rotateOnly(rl.MatrixInvert(j.parent.matrix), rl.Vector3Normalize(worldDir))
}

// rotateOnly transforms a direction by the rotation part of a matrix.
func rotateOnly(m rl.Matrix, v rl.Vector3) rl.Vector3 {
	m.M12, m.M13, m.M14 = 0, 0, 0
	return rl.Vector3Transform(v, m)
}

func (j *Joint) worldChildPivot() rl.Vector3 {
	return rl.Vector3Transform(j.childPivot, j.child.matrix)
}

func (j *Joint) worldParentPivot() rl.Vector3 {
	if j.parent == nil {
		return j.parentPivot
	}
	return rl.Vector3Transform(j.parentPivot, j.parent.matrix)
}

func (j *Joint) worldParentPin() rl.Vector3 {
	if j.parent == nil {
		return j.parentPin
	}
	return rotateOnly(j.parent.matrix, j.parentPin)
}

func (j *Joint) worldChildPin() rl.Vector3 {
	return rotateOnly(j.child.matrix, j.childPin)
}

// solve applies one iteration of positional projection for the constraint.
func (j *Joint) solve(dt float32) {
	if j.child == nil || j.child.destroyed {
		return
	}

	switch j.kind {
	case JointUpVector:
		j.alignPins(j.worldChildPin(), j.parentPin)
		return
	case JointHinge, JointSlider:
		j.alignPins(j.worldChildPin(), j.worldParentPin())
	case JointCorkscrew:
		j.alignPins(j.worldChildPin(), j.worldParentPin())
	case JointBallSocket:
		if j.maxCone > 0 {
			j.limitCone()
		}
	}

	// positional constraint on the pivot
	err := rl.Vector3Subtract(j.worldParentPivot(), j.worldChildPivot())
	if j.kind == JointSlider || j.kind == JointCorkscrew {
		// translation along the pin is free
		pin := j.worldParentPin()
		err = rl.Vector3Subtract(err, rl.Vector3Scale(pin, rl.Vector3DotProduct(err, pin)))
	}

	errLen := rl.Vector3Length(err)
	if errLen < 1e-5 {
		return
	}

	childShare, parentShare := j.massShares()
	correction := rl.Vector3Scale(err, j.stiffness)
	if childShare > 0 {
		j.child.setPosition(rl.Vector3Add(j.child.position(), rl.Vector3Scale(correction, childShare)))
		j.child.wake()
	}
	if parentShare > 0 {
		j.parent.setPosition(rl.Vector3Subtract(j.parent.position(), rl.Vector3Scale(correction, parentShare)))
		j.parent.wake()
	}

	// kill the separating component of the relative velocity
	dir := rl.Vector3Scale(err, 1/errLen)
	var parentVel rl.Vector3
	if j.parent != nil {
		parentVel = j.parent.veloc
	}
	relVel := rl.Vector3Subtract(j.child.veloc, parentVel)
	sep := rl.Vector3DotProduct(relVel, dir)
	if sep < 0 {
		fix := rl.Vector3Scale(dir, sep)
		if childShare > 0 {
			j.child.veloc = rl.Vector3Subtract(j.child.veloc, rl.Vector3Scale(fix, childShare))
		}
		if parentShare > 0 {
			j.parent.veloc = rl.Vector3Add(j.parent.veloc, rl.Vector3Scale(fix, parentShare))
		}
	}
	_ = dt
}

// massShares splits a correction between child and parent by inverse mass.
// A static or world-anchored side absorbs nothing.
func (j *Joint) massShares() (childShare, parentShare float32) {
	ci := j.child.invMass
	pi := float32(0)
	if j.parent != nil {
		pi = j.parent.invMass
	}
	sum := ci + pi
	if sum == 0 {
		// both static: move the child, the constraint must hold
		return 1, 0
	}
	return ci / sum, pi / sum
}

// alignPins rotates the child so its pin matches the target direction.
func (j *Joint) alignPins(current, target rl.Vector3) {
	axis := rl.Vector3CrossProduct(current, target)
	axisLen := rl.Vector3Length(axis)
	dot := clamp(rl.Vector3DotProduct(current, target), -1, 1)
	if axisLen < 1e-5 {
		return
	}
	angle := math32.Acos(dot) * j.stiffness
	if angle < 1e-5 {
		return
	}
	j.rotateChild(rl.Vector3Scale(axis, 1/axisLen), angle)
}

func (j *Joint) limitCone() {
	current := j.worldChildPin()
	target := j.worldParentPin()
	dot := clamp(rl.Vector3DotProduct(current, target), -1, 1)
	angle := math32.Acos(dot)
	if angle <= j.maxCone {
		return
	}
	axis := rl.Vector3CrossProduct(current, target)
	axisLen := rl.Vector3Length(axis)
	if axisLen < 1e-5 {
		return
	}
	j.rotateChild(rl.Vector3Scale(axis, 1/axisLen), angle-j.maxCone)
}

// rotateChild applies a rotation about the joint pivot to the child body.
func (j *Joint) rotateChild(axis rl.Vector3, angle float32) {
	pivot := j.worldChildPivot()
	rot := rl.MatrixRotate(axis, angle)

	pos := j.child.position()
	m := j.child.matrix
	m.M12, m.M13, m.M14 = 0, 0, 0
	m = rl.MatrixMultiply(m, rot)

	// rotate the body origin around the pivot as well
	offset := rl.Vector3Subtract(pos, pivot)
	offset = rl.Vector3Transform(offset, rot)
	newPos := rl.Vector3Add(pivot, offset)

	j.child.matrix = m
	j.child.setPosition(newPos)
	j.child.wake()
}
