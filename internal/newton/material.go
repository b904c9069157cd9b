package newton

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact describes one resolved contact point, passed to the process
// callback of the owning material pair.
type Contact struct {
	Body0, Body1 *Body
	Position     rl.Vector3
	Normal       rl.Vector3 // points from Body1 toward Body0
	Penetration  float32
	NormalSpeed  float32 // closing speed along the normal at impact
}

// MaterialPair holds the surface response for one pair of material groups.
type MaterialPair struct {
	Collidable      bool
	StaticFriction  float32
	KineticFriction float32
	Elasticity      float32
	Softness        float32

	// OnBegin fires when two bodies of this pair first touch. Returning
	// false rejects the contact for this step.
	OnBegin func(b0, b1 *Body) bool
	// OnProcess fires for every resolved contact point.
	OnProcess func(c *Contact)
	// OnEnd fires when the bodies separate.
	OnEnd func(b0, b1 *Body)
}

// DefaultMaterialPair is the response used when no pair was registered.
func DefaultMaterialPair() MaterialPair {
	return MaterialPair{
		Collidable:      true,
		StaticFriction:  0.9,
		KineticFriction: 0.5,
		Elasticity:      0.4,
		Softness:        0.1,
	}
}

// CreateGroupID allocates a new material group. Group 0 always exists.
func (w *World) CreateGroupID() int {
	w.groupCount++
	return w.groupCount
}

// SetPairProperties registers the surface response for a pair of groups.
// Order of the two ids does not matter.
func (w *World) SetPairProperties(g0, g1 int, p MaterialPair) {
	w.pairs[pairKey(g0, g1)] = &p
}

// PairProperties returns the registered response for a group pair, or the
// world default.
func (w *World) PairProperties(g0, g1 int) *MaterialPair {
	if p, ok := w.pairs[pairKey(g0, g1)]; ok {
		return p
	}
	return &w.defaultPair
}

func pairKey(g0, g1 int) [2]int {
	if g0 > g1 {
		g0, g1 = g1, g0
	}
	return [2]int{g0, g1}
}
