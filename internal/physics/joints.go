package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

// JointInfo describes one constraint between two objects. Positions and
// pins are in world coordinates at creation time.
type JointInfo interface {
	common() *JointCommon
}

// JointCommon carries the settings shared by every joint kind. A zero
// Stiffness leaves the solver default in place.
type JointCommon struct {
	EnableCollision bool
	Stiffness       float32
	Callback        newton.JointCallback
}

func (c *JointCommon) common() *JointCommon { return c }

// BallAndSocketInfo constrains a shared pivot point, optionally with a
// cone and twist limit around Pin.
type BallAndSocketInfo struct {
	JointCommon
	Pivot rl.Vector3

	UseLimits     bool
	Pin           rl.Vector3
	MaxConeAngle  float32
	MaxTwistAngle float32
}

// HingeInfo allows rotation about Pin through Pivot only.
type HingeInfo struct {
	JointCommon
	Pivot rl.Vector3
	Pin   rl.Vector3
}

// SliderInfo allows translation along Pin through Pivot only.
type SliderInfo struct {
	JointCommon
	Pivot rl.Vector3
	Pin   rl.Vector3
}

// CorkscrewInfo allows both rotation about and translation along Pin.
type CorkscrewInfo struct {
	JointCommon
	Pivot rl.Vector3
	Pin   rl.Vector3
}

// UniversalInfo allows rotation about two perpendicular pins.
type UniversalInfo struct {
	JointCommon
	Pivot rl.Vector3
	Pin0  rl.Vector3
	Pin1  rl.Vector3
}

// UpVectorInfo keeps the child's Pin axis pointed at a fixed world
// direction. It has no parent.
type UpVectorInfo struct {
	JointCommon
	Pin rl.Vector3
}

// jointRequest is a joint whose bodies may not exist yet. The queue is
// drained every time an object registration completes.
type jointRequest struct {
	child  *Object
	parent *Object
	info   JointInfo
}

// CreateJoint constrains child to parent. Either object may still be
// unregistered; the joint is held until both have bodies. A nil parent
// anchors the child to the world.
func (e *Engine) CreateJoint(child, parent *Object, info JointInfo) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingJoints = append(e.pendingJoints, jointRequest{child: child, parent: parent, info: info})
	e.resolveJoints()
}

// resolveJoints materializes every pending joint whose bodies are all
// registered, keeping the rest queued. Callers hold e.mu.
func (e *Engine) resolveJoints() {
	remaining := e.pendingJoints[:0]
	for _, req := range e.pendingJoints {
		if !e.materializeJoint(req) {
			remaining = append(remaining, req)
		}
	}
	e.pendingJoints = remaining
}

func (e *Engine) materializeJoint(req jointRequest) bool {
	childRec := e.recordFor(req.child)
	if childRec == nil {
		return false
	}
	var parentBody *newton.Body
	if req.parent != nil {
		parentRec := e.recordFor(req.parent)
		if parentRec == nil {
			return false
		}
		parentBody = parentRec.body
	}

	var joint *newton.Joint
	switch info := req.info.(type) {
	case *BallAndSocketInfo:
		joint = e.world.CreateBallSocket(info.Pivot, childRec.body, parentBody)
		if info.UseLimits {
			joint.SetConeLimits(info.Pin, info.MaxConeAngle, info.MaxTwistAngle)
		}
	case *HingeInfo:
		joint = e.world.CreateHinge(info.Pivot, info.Pin, childRec.body, parentBody)
	case *SliderInfo:
		joint = e.world.CreateSlider(info.Pivot, info.Pin, childRec.body, parentBody)
	case *CorkscrewInfo:
		joint = e.world.CreateCorkscrew(info.Pivot, info.Pin, childRec.body, parentBody)
	case *UniversalInfo:
		joint = e.world.CreateUniversal(info.Pivot, info.Pin0, info.Pin1, childRec.body, parentBody)
	case *UpVectorInfo:
		joint = e.world.CreateUpVector(info.Pin, childRec.body)
	default:
		log.Printf("Physics: unknown joint info %T, dropping", req.info)
		return true
	}

	c := req.info.common()
	joint.SetCollisionState(c.EnableCollision)
	if c.Stiffness > 0 {
		joint.SetStiffness(c.Stiffness)
	}
	if c.Callback != nil {
		joint.SetUserCallback(c.Callback)
	}
	return true
}
