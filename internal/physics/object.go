package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

// ShapeType selects the collision volume built for an object.
type ShapeType int

const (
	Box ShapeType = iota
	Sphere
	Cone
	Capsule
	Cylinder
	ChamferCylinder
	Compound
	ConvexHull
	TriangleMesh
)

func (s ShapeType) String() string {
	switch s {
	case Box:
		return "Box"
	case Sphere:
		return "Sphere"
	case Cone:
		return "Cone"
	case Capsule:
		return "Capsule"
	case Cylinder:
		return "Cylinder"
	case ChamferCylinder:
		return "ChamferCylinder"
	case Compound:
		return "Compound"
	case ConvexHull:
		return "ConvexHull"
	case TriangleMesh:
		return "TriangleMesh"
	default:
		return "Unknown"
	}
}

// axiallyRotated reports whether the native shape is authored along a
// different axis than the scene convention and needs the 90 degree
// correction about Z when bodies are created and read back.
func (s ShapeType) axiallyRotated() bool {
	switch s {
	case Cone, Capsule, Cylinder, ChamferCylinder:
		return true
	}
	return false
}

// TreeBuilder overrides the default triangle-mesh collision construction
// for a single object.
type TreeBuilder func(provider GeometryProvider, scale rl.Vector3) *newton.Shape

// Object is the per-entity physics description the engine consumes. It is
// a plain data record owned by the caller; the engine reads it at
// registration and writes PhysicsWorldTransform back every step.
type Object struct {
	// Container is the scene entity this object simulates, kept only so
	// callbacks can reach back to it. The engine never inspects it.
	Container any

	// Geometry supplies model-space data for collision construction.
	Geometry GeometryProvider

	Mass      float32
	Shape     ShapeType
	ShapeData []float32

	// MomentOfInertia, when non-zero, overrides the computed inertia.
	MomentOfInertia rl.Vector3
	CenterOfMass    rl.Vector3

	Pickable        bool
	Collidable      bool
	Interactable    bool
	Manipulatable   bool
	ApplyGravity    bool
	NeverDeactivate bool

	MaterialName string

	InitialLinearVelocity  rl.Vector3
	InitialAngularVelocity rl.Vector3

	// LinearDamping applies when non-negative. AngularDamping applies
	// per axis when every component is non-negative.
	LinearDamping  float32
	AngularDamping rl.Vector3

	// TreeBuilder, when set, replaces the default TriangleMesh build.
	TreeBuilder TreeBuilder

	// Vehicle marks the object as a vehicle chassis needing tire setup.
	Vehicle *VehicleSetup

	// InitialWorldTransform is the pose the body is created at.
	// CompoundInitialWorldTransform additionally folds in any parent or
	// attachment transform and is what the engine actually decomposes.
	InitialWorldTransform         rl.Matrix
	CompoundInitialWorldTransform rl.Matrix

	// PhysicsWorldTransform is written by the engine after every step:
	// the simulated pose with the object's scale folded back in.
	PhysicsWorldTransform rl.Matrix

	// Modified is set by callers after changing simulation-relevant
	// fields so the engine knows to re-apply them.
	Modified bool
}

// NewObject returns an object with the engine defaults: unit mass, box
// shape, collidable, gravity-affected, not interactable.
func NewObject(container any) *Object {
	identity := rl.MatrixIdentity()
	return &Object{
		Container:                     container,
		Mass:                          1,
		Shape:                         Box,
		Collidable:                    true,
		ApplyGravity:                  true,
		LinearDamping:                 -1,
		AngularDamping:                rl.NewVector3(-1, -1, -1),
		InitialWorldTransform:         identity,
		CompoundInitialWorldTransform: identity,
		PhysicsWorldTransform:         identity,
	}
}

// Serialize flattens the object's simulation settings into an attribute
// map for scene persistence. Transforms and geometry are the scene's
// responsibility and are not included.
func (o *Object) Serialize() map[string]any {
	data := make(map[string]any)
	data["mass"] = o.Mass
	data["shape"] = int(o.Shape)
	if len(o.ShapeData) > 0 {
		shapeData := make([]any, len(o.ShapeData))
		for i, v := range o.ShapeData {
			shapeData[i] = v
		}
		data["shapeData"] = shapeData
	}
	data["momentOfInertia"] = []any{o.MomentOfInertia.X, o.MomentOfInertia.Y, o.MomentOfInertia.Z}
	data["centerOfMass"] = []any{o.CenterOfMass.X, o.CenterOfMass.Y, o.CenterOfMass.Z}
	data["pickable"] = o.Pickable
	data["collidable"] = o.Collidable
	data["interactable"] = o.Interactable
	data["manipulatable"] = o.Manipulatable
	data["applyGravity"] = o.ApplyGravity
	data["neverDeactivate"] = o.NeverDeactivate
	data["materialName"] = o.MaterialName
	data["initialLinearVelocity"] = []any{o.InitialLinearVelocity.X, o.InitialLinearVelocity.Y, o.InitialLinearVelocity.Z}
	data["initialAngularVelocity"] = []any{o.InitialAngularVelocity.X, o.InitialAngularVelocity.Y, o.InitialAngularVelocity.Z}
	data["linearDamping"] = o.LinearDamping
	data["angularDamping"] = []any{o.AngularDamping.X, o.AngularDamping.Y, o.AngularDamping.Z}
	return data
}

// Deserialize restores simulation settings from an attribute map,
// leaving missing keys at their current values.
func (o *Object) Deserialize(data map[string]any) {
	if v, ok := data["mass"].(float64); ok {
		o.Mass = float32(v)
	}
	if v, ok := data["shape"].(float64); ok {
		o.Shape = ShapeType(int(v))
	}
	if raw, ok := data["shapeData"].([]any); ok {
		o.ShapeData = make([]float32, 0, len(raw))
		for _, entry := range raw {
			if f, ok := entry.(float64); ok {
				o.ShapeData = append(o.ShapeData, float32(f))
			}
		}
	}
	if v, ok := deserializeVector3(data["momentOfInertia"]); ok {
		o.MomentOfInertia = v
	}
	if v, ok := deserializeVector3(data["centerOfMass"]); ok {
		o.CenterOfMass = v
	}
	if v, ok := data["pickable"].(bool); ok {
		o.Pickable = v
	}
	if v, ok := data["collidable"].(bool); ok {
		o.Collidable = v
	}
	if v, ok := data["interactable"].(bool); ok {
		o.Interactable = v
	}
	if v, ok := data["manipulatable"].(bool); ok {
		o.Manipulatable = v
	}
	if v, ok := data["applyGravity"].(bool); ok {
		o.ApplyGravity = v
	}
	if v, ok := data["neverDeactivate"].(bool); ok {
		o.NeverDeactivate = v
	}
	if v, ok := data["materialName"].(string); ok {
		o.MaterialName = v
	}
	if v, ok := deserializeVector3(data["initialLinearVelocity"]); ok {
		o.InitialLinearVelocity = v
	}
	if v, ok := deserializeVector3(data["initialAngularVelocity"]); ok {
		o.InitialAngularVelocity = v
	}
	if v, ok := data["linearDamping"].(float64); ok {
		o.LinearDamping = float32(v)
	}
	if v, ok := deserializeVector3(data["angularDamping"]); ok {
		o.AngularDamping = v
	}
}

func deserializeVector3(raw any) (rl.Vector3, bool) {
	entries, ok := raw.([]any)
	if !ok || len(entries) != 3 {
		return rl.Vector3{}, false
	}
	var out [3]float32
	for i, entry := range entries {
		f, ok := entry.(float64)
		if !ok {
			return rl.Vector3{}, false
		}
		out[i] = float32(f)
	}
	return rl.NewVector3(out[0], out[1], out[2]), true
}
