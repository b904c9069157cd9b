package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionCallback receives a pair whose contact slices have just been
// refilled for the current frame.
type CollisionCallback func(pair *CollisionPair)

// CollisionPair names two objects whose overlap is queried after every
// update. The engine refills the contact slices before invoking the
// pair's callback; between frames they hold the last result.
type CollisionPair struct {
	Object1 *Object
	Object2 *Object

	// MaxSize caps how many contact points a query may return.
	MaxSize int

	ContactPoints []rl.Vector3
	Normals       []rl.Vector3
	Penetrations  []float32
}

// NewCollisionPair pairs two objects for contact queries. maxSize below
// one is raised to one.
func NewCollisionPair(obj1, obj2 *Object, maxSize int) *CollisionPair {
	if maxSize < 1 {
		maxSize = 1
	}
	return &CollisionPair{Object1: obj1, Object2: obj2, MaxSize: maxSize}
}

func (p *CollisionPair) reset() {
	p.ContactPoints = p.ContactPoints[:0]
	p.Normals = p.Normals[:0]
	p.Penetrations = p.Penetrations[:0]
}
