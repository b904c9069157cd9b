package physics

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

// PickedObject is one pickable object intersected by a pick ray.
// PickParam is the fractional position along the segment, so results
// sort nearest first.
type PickedObject struct {
	PhysicsObject *Object
	PickParam     float32
}

// PickRayCast shoots a segment from near to far and returns every
// pickable registered object it crosses, nearest first. The result
// slice is reused across calls.
func (e *Engine) PickRayCast(near, far rl.Vector3) []PickedObject {
	e.picked = e.picked[:0]
	e.world.RayCast(near, far, func(b *newton.Body, normal rl.Vector3, t float32) float32 {
		obj := e.objectOf(b)
		if obj != nil && obj.Pickable {
			e.picked = append(e.picked, PickedObject{PhysicsObject: obj, PickParam: t})
		}
		return 1
	})
	sort.Slice(e.picked, func(i, j int) bool {
		return e.picked[i].PickParam < e.picked[j].PickParam
	})
	return e.picked
}
