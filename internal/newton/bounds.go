package newton

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

// Union returns the smallest AABB containing both boxes.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: vector3Min(a.Min, b.Min),
		Max: vector3Max(a.Max, b.Max),
	}
}

// OBB represents an oriented bounding box in world space.
type OBB struct {
	Center   rl.Vector3    // world-space center
	HalfSize rl.Vector3    // half-extents along local axes
	Axes     [3]rl.Vector3 // local X, Y, Z axes (rotated)
}

// NewOBBFromMatrix places a local box (center + half extents) into world
// space using a rotation+translation matrix. The matrix basis is assumed
// orthonormal; bodies never carry scale.
func NewOBBFromMatrix(localCenter, halfSize rl.Vector3, m rl.Matrix) OBB {
	axes := [3]rl.Vector3{
		{X: m.M0, Y: m.M1, Z: m.M2},
		{X: m.M4, Y: m.M5, Z: m.M6},
		{X: m.M8, Y: m.M9, Z: m.M10},
	}
	center := rl.Vector3Transform(localCenter, m)
	return OBB{Center: center, HalfSize: halfSize, Axes: axes}
}

// IntersectsOBB tests two OBBs with the Separating Axis Theorem.
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)

	// 15 axes: 3 face normals each plus 9 edge cross products
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// Skip near-zero axes (parallel edges)
			if rl.Vector3Length(axis) > 0.0001 {
				axis = rl.Vector3Normalize(axis)
				if !overlapOnAxis(a, b, axis, t) {
					return false
				}
			}
		}
	}
	return true
}

func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	aProj := a.HalfSize.X*math32.Abs(rl.Vector3DotProduct(a.Axes[0], axis)) +
		a.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(a.Axes[1], axis)) +
		a.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(a.Axes[2], axis))

	bProj := b.HalfSize.X*math32.Abs(rl.Vector3DotProduct(b.Axes[0], axis)) +
		b.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(b.Axes[1], axis)) +
		b.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(b.Axes[2], axis))

	distance := math32.Abs(rl.Vector3DotProduct(t, axis))
	return distance <= aProj+bProj
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b',
// or the zero vector when the boxes do not overlap.
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	if !a.IntersectsOBB(b) {
		return rl.Vector3Zero()
	}

	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math32.MaxFloat32)
	var mtv rl.Vector3

	testAxis := func(axis rl.Vector3) {
		if rl.Vector3Length(axis) < 0.0001 {
			return
		}
		axis = rl.Vector3Normalize(axis)

		aProj := a.HalfSize.X*math32.Abs(rl.Vector3DotProduct(a.Axes[0], axis)) +
			a.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(a.Axes[1], axis)) +
			a.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(a.Axes[2], axis))

		bProj := b.HalfSize.X*math32.Abs(rl.Vector3DotProduct(b.Axes[0], axis)) +
			b.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(b.Axes[1], axis)) +
			b.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(b.Axes[2], axis))

		dist := rl.Vector3DotProduct(t, axis)
		penetration := aProj + bProj - math32.Abs(dist)

		if penetration < minPenetration {
			minPenetration = penetration
			// Push away from B
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
		}
	}

	return mtv
}

// ClosestPoint returns the closest point on the OBB surface to the given point.
func (o OBB) ClosestPoint(point rl.Vector3) rl.Vector3 {
	local := rl.Vector3Subtract(point, o.Center)
	localX := rl.Vector3DotProduct(local, o.Axes[0])
	localY := rl.Vector3DotProduct(local, o.Axes[1])
	localZ := rl.Vector3DotProduct(local, o.Axes[2])

	closestX := clamp(localX, -o.HalfSize.X, o.HalfSize.X)
	closestY := clamp(localY, -o.HalfSize.Y, o.HalfSize.Y)
	closestZ := clamp(localZ, -o.HalfSize.Z, o.HalfSize.Z)

	result := o.Center
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[0], closestX))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], closestY))
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], closestZ))
	return result
}

// WorldAABB returns the axis-aligned bounds of the OBB.
func (o OBB) WorldAABB() AABB {
	ext := rl.Vector3{
		X: o.HalfSize.X*math32.Abs(o.Axes[0].X) + o.HalfSize.Y*math32.Abs(o.Axes[1].X) + o.HalfSize.Z*math32.Abs(o.Axes[2].X),
		Y: o.HalfSize.X*math32.Abs(o.Axes[0].Y) + o.HalfSize.Y*math32.Abs(o.Axes[1].Y) + o.HalfSize.Z*math32.Abs(o.Axes[2].Y),
		Z: o.HalfSize.X*math32.Abs(o.Axes[0].Z) + o.HalfSize.Y*math32.Abs(o.Axes[1].Z) + o.HalfSize.Z*math32.Abs(o.Axes[2].Z),
	}
	return AABB{
		Min: rl.Vector3Subtract(o.Center, ext),
		Max: rl.Vector3Add(o.Center, ext),
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Min(a.X, b.X),
		Y: math32.Min(a.Y, b.Y),
		Z: math32.Min(a.Z, b.Z),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Max(a.X, b.X),
		Y: math32.Max(a.Y, b.Y),
		Z: math32.Max(a.Z, b.Z),
	}
}

func cross(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
