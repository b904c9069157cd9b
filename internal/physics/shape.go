package physics

import (
	"log"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

// buildCollision constructs the native collision volume for an object,
// already scaled by the object's world scale. The returned shape is in
// native axis convention: axially symmetric primitives run along X and
// get the 90 degree correction when the body is created.
func (e *Engine) buildCollision(obj *Object, scale rl.Vector3) (*newton.Shape, error) {
	if e.settings.UseBoundingBox {
		return buildBoundingBox(obj, scale), nil
	}

	switch obj.Shape {
	case Box:
		dx, dy, dz := boxDimensions(obj, scale)
		return withOffset(obj, scale, newton.NewBox(dx, dy, dz)), nil

	case Sphere:
		var radius float32
		if len(obj.ShapeData) >= 1 {
			radius = obj.ShapeData[0]
		} else {
			min, max := obj.Geometry.BoundingBox()
			size := rl.Vector3Subtract(max, min)
			radius = math32.Max(size.X, math32.Max(size.Y, size.Z)) / 2
		}
		radius *= math32.Max(scale.X, math32.Max(scale.Y, scale.Z))
		return withOffset(obj, scale, newton.NewSphere(radius)), nil

	case Cone:
		radius, height := radialDimensions(obj, scale)
		return withOffset(obj, scale, newton.NewCone(radius, height)), nil

	case Capsule:
		radius, height := radialDimensions(obj, scale)
		return withOffset(obj, scale, newton.NewCapsule(radius, height)), nil

	case Cylinder:
		radius, height := radialDimensions(obj, scale)
		return withOffset(obj, scale, newton.NewCylinder(radius, height)), nil

	case ChamferCylinder:
		radius, height := radialDimensions(obj, scale)
		return withOffset(obj, scale, newton.NewChamferCylinder(radius, height)), nil

	case Compound:
		return buildCompound(obj, scale)

	case ConvexHull:
		points := obj.Geometry.Vertices()
		if len(points) == 0 {
			return nil, configErrorf("Geometry", "convex hull needs at least one vertex")
		}
		scaled := make([]rl.Vector3, len(points))
		for i, p := range points {
			scaled[i] = rl.Vector3Multiply(p, scale)
		}
		return withOffset(obj, scale, newton.NewConvexHull(scaled)), nil

	case TriangleMesh:
		if obj.TreeBuilder != nil {
			return obj.TreeBuilder(obj.Geometry, scale), nil
		}
		return buildTree(obj, scale), nil

	default:
		return buildBoundingBox(obj, scale), nil
	}
}

// buildBoundingBox is both the UseBoundingBox fast path and the
// fallback for unrecognized shape types.
func buildBoundingBox(obj *Object, scale rl.Vector3) *newton.Shape {
	dx, dy, dz := boxDimensions(obj, scale)
	return withOffset(obj, scale, newton.NewBox(dx, dy, dz))
}

// boxDimensions uses explicit shape data when all three extents are
// given, otherwise the geometry's bounds. Either way the object's
// scale applies.
func boxDimensions(obj *Object, scale rl.Vector3) (dx, dy, dz float32) {
	if len(obj.ShapeData) >= 3 {
		return obj.ShapeData[0] * scale.X, obj.ShapeData[1] * scale.Y, obj.ShapeData[2] * scale.Z
	}
	min, max := obj.Geometry.BoundingBox()
	size := rl.Vector3Subtract(max, min)
	return size.X * scale.X, size.Y * scale.Y, size.Z * scale.Z
}

// radialDimensions resolves (radius, height) for the axially symmetric
// primitives. Height runs along scene Y; radius spans the X/Z plane.
func radialDimensions(obj *Object, scale rl.Vector3) (radius, height float32) {
	if len(obj.ShapeData) >= 2 {
		radius, height = obj.ShapeData[0], obj.ShapeData[1]
	} else {
		min, max := obj.Geometry.BoundingBox()
		size := rl.Vector3Subtract(max, min)
		radius = math32.Max(size.X, size.Z) / 2
		height = size.Y
	}
	radius *= math32.Max(scale.X, scale.Z)
	height *= scale.Y
	return radius, height
}

// buildCompound parses the packed hull stream in ShapeData: repeated
// blocks of a vertex count followed by that many XYZ triples.
func buildCompound(obj *Object, scale rl.Vector3) (*newton.Shape, error) {
	data := obj.ShapeData
	if len(data) == 0 {
		return nil, configErrorf("ShapeData", "compound shape has no hull data")
	}
	var hulls []*newton.Shape
	for i := 0; i < len(data); {
		count := int(data[i])
		i++
		if count <= 0 {
			return nil, configErrorf("ShapeData", "compound hull %d has vertex count %d", len(hulls), count)
		}
		if i+count*3 > len(data) {
			return nil, configErrorf("ShapeData", "compound hull %d truncated: need %d floats, have %d",
				len(hulls), count*3, len(data)-i)
		}
		points := make([]rl.Vector3, count)
		for j := 0; j < count; j++ {
			points[j] = rl.Vector3{
				X: data[i] * scale.X,
				Y: data[i+1] * scale.Y,
				Z: data[i+2] * scale.Z,
			}
			i += 3
		}
		hulls = append(hulls, newton.NewConvexHull(points))
	}
	return withOffset(obj, scale, newton.NewCompound(hulls)), nil
}

// buildTree flattens the object's geometry into a static triangle
// collision tree. Multi-part models contribute each part under its own
// transform; flat meshes are walked according to their topology.
func buildTree(obj *Object, scale rl.Vector3) *newton.Shape {
	tree := newton.BeginTree()
	addFace := func(v0, v1, v2 rl.Vector3) {
		tree.AddFace(
			rl.Vector3Multiply(v0, scale),
			rl.Vector3Multiply(v1, scale),
			rl.Vector3Multiply(v2, scale),
			0,
		)
	}

	parts := obj.Geometry.MeshParts()
	if len(parts) > 0 {
		for _, part := range parts {
			for i := 0; i+2 < len(part.Indices); i += 3 {
				addFace(
					rl.Vector3Transform(part.Vertices[part.Indices[i]], part.Transform),
					rl.Vector3Transform(part.Vertices[part.Indices[i+1]], part.Transform),
					rl.Vector3Transform(part.Vertices[part.Indices[i+2]], part.Transform),
				)
			}
		}
	} else if prim := obj.Geometry.Primitive(); prim != nil {
		walkTriangles(prim, addFace)
	}

	tree.EndTree()
	return tree
}

// walkTriangles enumerates a primitive mesh's faces. Non-surface
// topologies contribute nothing to a collision tree.
func walkTriangles(prim *PrimitiveMesh, fn func(v0, v1, v2 rl.Vector3)) {
	at := func(i int) rl.Vector3 {
		if prim.Indices != nil {
			return prim.Vertices[prim.Indices[i]]
		}
		return prim.Vertices[i]
	}
	n := len(prim.Vertices)
	if prim.Indices != nil {
		n = len(prim.Indices)
	}

	switch prim.Topology {
	case TriangleList:
		for i := 0; i+2 < n; i += 3 {
			fn(at(i), at(i+1), at(i+2))
		}
	case TriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				fn(at(i), at(i+1), at(i+2))
			} else {
				fn(at(i+1), at(i), at(i+2))
			}
		}
	case TriangleFan:
		for i := 1; i+1 < n; i++ {
			fn(at(0), at(i), at(i+1))
		}
	default:
		log.Printf("Physics: topology %v carries no collision faces, skipping", prim.Topology)
	}
}

// withOffset shifts the shape by the geometry's origin displacement,
// scaled into world units. Rotation of the offset is not carried over;
// only the translation matters for collision placement.
func withOffset(obj *Object, scale rl.Vector3, shape *newton.Shape) *newton.Shape {
	if obj.Geometry == nil || !obj.Geometry.OffsetFromOrigin() {
		return shape
	}
	off := obj.Geometry.OffsetTransform()
	shape.SetOffset(rl.MatrixTranslate(off.M12*scale.X, off.M13*scale.Y, off.M14*scale.Z))
	return shape
}

// computeInertia resolves the inertia tensor diagonal for a body of the
// given shape and mass. A caller-declared MomentOfInertia wins; the
// axis correction for rotated primitives is applied afterwards either way.
func computeInertia(obj *Object, shape *newton.Shape) rl.Vector3 {
	inertia := obj.MomentOfInertia
	if inertia == (rl.Vector3{}) {
		inertia = rl.Vector3Scale(shape.ConvexInertia(), obj.Mass)
	}
	if obj.Shape.axiallyRotated() {
		inertia = swapXY(inertia)
	}
	return inertia
}

// swapXY maps a scene-axis vector into the native frame of a primitive
// authored along X: the 90 degree rotation about Z exchanges the X and
// Y components and flips the sign of the one landing on Y.
func swapXY(v rl.Vector3) rl.Vector3 {
	return rl.NewVector3(v.Y, -v.X, v.Z)
}
