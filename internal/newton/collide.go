package newton

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ContactPoint is one narrow-phase result. The normal points from shape B
// toward shape A, so translating A by normal*penetration separates the pair.
type ContactPoint struct {
	Position    rl.Vector3
	Normal      rl.Vector3
	Penetration float32
}

// Collide runs the narrow phase between two shapes under explicit world
// matrices and returns up to max contact points. It performs no broad-phase
// reject and touches no body state, so it can be used for standalone pair
// queries.
func Collide(max int, sa *Shape, ma rl.Matrix, sb *Shape, mb rl.Matrix) []ContactPoint {
	if max <= 0 {
		return nil
	}

	switch {
	case sa.kind == ShapeTree && sb.kind == ShapeTree:
		// two static meshes never generate contacts
		return nil
	case sa.kind == ShapeTree:
		contacts := collideTree(max, sb, mb, sa, ma)
		return flipContacts(contacts)
	case sb.kind == ShapeTree:
		return collideTree(max, sa, ma, sb, mb)
	case sa.kind == ShapeCompound:
		var out []ContactPoint
		for _, h := range sa.hulls {
			out = append(out, Collide(max-len(out), h, ma, sb, mb)...)
			if len(out) >= max {
				break
			}
		}
		return out
	case sb.kind == ShapeCompound:
		var out []ContactPoint
		for _, h := range sb.hulls {
			out = append(out, Collide(max-len(out), sa, ma, h, mb)...)
			if len(out) >= max {
				break
			}
		}
		return out
	case sa.kind == ShapeSphere && sb.kind == ShapeSphere:
		return collideSpheres(sa, ma, sb, mb)
	case sa.kind == ShapeSphere:
		return collideSphereBox(sa, ma, sb, mb)
	case sb.kind == ShapeSphere:
		return flipContacts(collideSphereBox(sb, mb, sa, ma))
	default:
		return collideBoxes(max, sa, ma, sb, mb)
	}
}

func flipContacts(contacts []ContactPoint) []ContactPoint {
	for i := range contacts {
		contacts[i].Normal = rl.Vector3Negate(contacts[i].Normal)
	}
	return contacts
}

func sphereCenter(s *Shape, m rl.Matrix) rl.Vector3 {
	return rl.Vector3Transform(s.LocalAABB().Center(), m)
}

func collideSpheres(sa *Shape, ma rl.Matrix, sb *Shape, mb rl.Matrix) []ContactPoint {
	ca := sphereCenter(sa, ma)
	cb := sphereCenter(sb, mb)

	diff := rl.Vector3Subtract(ca, cb)
	dist := rl.Vector3Length(diff)
	minDist := sa.radius + sb.radius
	if dist >= minDist || dist < 0.0001 {
		return nil
	}

	normal := rl.Vector3Scale(diff, 1/dist)
	penetration := minDist - dist
	position := rl.Vector3Add(cb, rl.Vector3Scale(normal, sb.radius-penetration/2))
	return []ContactPoint{{Position: position, Normal: normal, Penetration: penetration}}
}

// collideSphereBox tests a sphere against any convex shape approximated by
// its oriented bounds.
func collideSphereBox(sphere *Shape, ms rl.Matrix, box *Shape, mb rl.Matrix) []ContactPoint {
	center := sphereCenter(sphere, ms)
	obb := box.worldOBB(mb)

	closest := obb.ClosestPoint(center)
	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)
	if dist >= sphere.radius {
		return nil
	}
	if dist < 0.0001 {
		// center inside the box, push out along the shallowest face
		sphereOBB := OBB{
			Center:   center,
			HalfSize: rl.Vector3{X: sphere.radius, Y: sphere.radius, Z: sphere.radius},
			Axes:     [3]rl.Vector3{{X: 1}, {Y: 1}, {Z: 1}},
		}
		mtv := sphereOBB.ResolveOBB(obb)
		l := rl.Vector3Length(mtv)
		if l < 0.0001 {
			return nil
		}
		return []ContactPoint{{Position: center, Normal: rl.Vector3Scale(mtv, 1/l), Penetration: l}}
	}

	normal := rl.Vector3Scale(diff, 1/dist)
	return []ContactPoint{{Position: closest, Normal: normal, Penetration: sphere.radius - dist}}
}

// collideBoxes runs the SAT between the oriented bounds of two convex
// shapes. A single contact at the overlap midpoint is produced; stacked
// boxes get one extra support contact when there is room in the buffer.
func collideBoxes(max int, sa *Shape, ma rl.Matrix, sb *Shape, mb rl.Matrix) []ContactPoint {
	oa := sa.worldOBB(ma)
	ob := sb.worldOBB(mb)

	mtv := oa.ResolveOBB(ob)
	penetration := rl.Vector3Length(mtv)
	if penetration < 0.0001 {
		return nil
	}
	normal := rl.Vector3Scale(mtv, 1/penetration)

	// contact point: deepest point of A against B's surface
	deep := oa.Center
	deep = rl.Vector3Subtract(deep, rl.Vector3Scale(normal, projectExtent(oa, normal)))
	position := ob.ClosestPoint(deep)

	contacts := []ContactPoint{{Position: position, Normal: normal, Penetration: penetration}}
	if max > 1 {
		// a second point across the contact face keeps stacks from wobbling
		side := rl.Vector3CrossProduct(normal, oa.Axes[1])
		if rl.Vector3Length(side) < 0.01 {
			side = rl.Vector3CrossProduct(normal, oa.Axes[0])
		}
		if rl.Vector3Length(side) > 0.01 {
			side = rl.Vector3Normalize(side)
			offset := rl.Vector3Scale(side, projectExtent(oa, side)*0.5)
			contacts = append(contacts, ContactPoint{
				Position:    rl.Vector3Add(position, offset),
				Normal:      normal,
				Penetration: penetration,
			})
		}
	}
	return contacts
}

func projectExtent(o OBB, axis rl.Vector3) float32 {
	return o.HalfSize.X*math32.Abs(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*math32.Abs(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*math32.Abs(rl.Vector3DotProduct(o.Axes[2], axis))
}

// collideTree tests a convex shape (approximated by its bounding sphere)
// against a triangle tree.
func collideTree(max int, conv *Shape, mc rl.Matrix, tree *Shape, mt rl.Matrix) []ContactPoint {
	if tree.tree == nil {
		return nil
	}

	var center rl.Vector3
	var radius float32
	if conv.kind == ShapeSphere {
		center = sphereCenter(conv, mc)
		radius = conv.radius
	} else {
		// conservative sphere: half the smallest OBB dimension
		obb := conv.worldOBB(mc)
		center = obb.Center
		radius = math32.Min(obb.HalfSize.X, math32.Min(obb.HalfSize.Y, obb.HalfSize.Z))
	}

	hit, push, point := tree.tree.sphereIntersect(mt, center, radius)
	if !hit {
		return nil
	}
	penetration := rl.Vector3Length(push)
	if penetration < 0.0001 {
		return nil
	}
	normal := rl.Vector3Scale(push, 1/penetration)
	_ = max
	return []ContactPoint{{Position: point, Normal: normal, Penetration: penetration}}
}
