package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ContactReport carries the per-contact data handed to a material's
// process callback. Normal points from Object2 toward Object1.
type ContactReport struct {
	Object1     *Object
	Object2     *Object
	Position    rl.Vector3
	Normal      rl.Vector3
	Penetration float32
	NormalSpeed float32
}

// Material describes how two named material groups interact. Negative
// friction or elasticity values leave the engine defaults in place, and
// a kinetic friction above the static one is ignored as a pair.
type Material struct {
	MaterialName1 string
	MaterialName2 string

	Collidable      bool
	StaticFriction  float32
	KineticFriction float32
	Elasticity      float32
	Softness        float32

	// ContactBegin fires once when two bodies of this pair first touch.
	ContactBegin func(obj1, obj2 *Object)
	// ContactProcess fires for every contact point while they stay in touch.
	ContactProcess func(contact ContactReport)
	// ContactEnd fires once when the bodies separate.
	ContactEnd func(obj1, obj2 *Object)
}

// NewMaterial returns a material pair with engine defaults: collidable,
// friction and elasticity left to the simulation's own values.
func NewMaterial(name1, name2 string) *Material {
	return &Material{
		MaterialName1:   name1,
		MaterialName2:   name2,
		Collidable:      true,
		StaticFriction:  -1,
		KineticFriction: -1,
		Elasticity:      -1,
		Softness:        -1,
	}
}

// pairName is the registry key for a material pair: the two group names
// concatenated in the order they were supplied.
func (m *Material) pairName() string {
	return m.MaterialName1 + m.MaterialName2
}
