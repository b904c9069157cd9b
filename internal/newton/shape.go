package newton

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind identifies the collision geometry of a Shape.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCone
	ShapeCapsule
	ShapeCylinder
	ShapeChamferCylinder
	ShapeConvexHull
	ShapeCompound
	ShapeTree
)

// Shape is an immutable collision geometry handle. Primitives with a length
// (cone, capsule, cylinder, chamfer cylinder) are authored along the X axis,
// matching the convention of the solver's contact generation.
type Shape struct {
	kind ShapeKind

	// box extents (full size)
	dx, dy, dz float32

	// radius/height primitives
	radius float32
	height float32

	points []rl.Vector3 // convex hull cloud
	hulls  []*Shape     // compound children
	tree   *treeData

	offset    rl.Matrix // local placement of the geometry on the body
	hasOffset bool
}

func NewBox(dx, dy, dz float32) *Shape {
	return &Shape{kind: ShapeBox, dx: dx, dy: dy, dz: dz}
}

func NewSphere(radius float32) *Shape {
	return &Shape{kind: ShapeSphere, radius: radius}
}

func NewCone(radius, height float32) *Shape {
	return &Shape{kind: ShapeCone, radius: radius, height: height}
}

func NewCapsule(radius, height float32) *Shape {
	return &Shape{kind: ShapeCapsule, radius: radius, height: height}
}

func NewCylinder(radius, height float32) *Shape {
	return &Shape{kind: ShapeCylinder, radius: radius, height: height}
}

func NewChamferCylinder(radius, height float32) *Shape {
	return &Shape{kind: ShapeChamferCylinder, radius: radius, height: height}
}

// NewConvexHull builds a convex shape from a point cloud. Contact generation
// uses the cloud's oriented bounds; the points themselves are kept for
// polygon iteration and inertia queries.
func NewConvexHull(points []rl.Vector3) *Shape {
	cloud := make([]rl.Vector3, len(points))
	copy(cloud, points)
	return &Shape{kind: ShapeConvexHull, points: cloud}
}

// NewCompound merges several convex shapes into one collision handle.
func NewCompound(hulls []*Shape) *Shape {
	children := make([]*Shape, len(hulls))
	copy(children, hulls)
	return &Shape{kind: ShapeCompound, hulls: children}
}

// SetOffset places the geometry away from the body origin.
func (s *Shape) SetOffset(m rl.Matrix) {
	s.offset = m
	s.hasOffset = true
}

func (s *Shape) Kind() ShapeKind { return s.kind }

// LocalAABB returns the shape bounds in body space, offset included.
func (s *Shape) LocalAABB() AABB {
	var box AABB
	switch s.kind {
	case ShapeBox:
		box = NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: s.dx, Y: s.dy, Z: s.dz})
	case ShapeSphere:
		box = NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2 * s.radius, Y: 2 * s.radius, Z: 2 * s.radius})
	case ShapeCone, ShapeCylinder, ShapeChamferCylinder:
		box = NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: s.height, Y: 2 * s.radius, Z: 2 * s.radius})
	case ShapeCapsule:
		// caps extend past the cylindrical section
		box = NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: s.height + 2*s.radius, Y: 2 * s.radius, Z: 2 * s.radius})
	case ShapeConvexHull:
		box = boundsOfPoints(s.points)
	case ShapeCompound:
		if len(s.hulls) == 0 {
			return AABB{}
		}
		box = s.hulls[0].LocalAABB()
		for _, h := range s.hulls[1:] {
			box = box.Union(h.LocalAABB())
		}
	case ShapeTree:
		if s.tree != nil {
			box = s.tree.bounds
		}
	}
	if s.hasOffset {
		box.Min = rl.Vector3Add(box.Min, translationOf(s.offset))
		box.Max = rl.Vector3Add(box.Max, translationOf(s.offset))
	}
	return box
}

// worldOBB places the shape's local bounds under a body matrix.
func (s *Shape) worldOBB(m rl.Matrix) OBB {
	local := s.LocalAABB()
	return NewOBBFromMatrix(local.Center(), rl.Vector3Scale(local.Size(), 0.5), m)
}

// boundingRadius is the radius of the sphere enclosing the shape, measured
// from the body origin.
func (s *Shape) boundingRadius() float32 {
	box := s.LocalAABB()
	a := rl.Vector3Length(box.Min)
	b := rl.Vector3Length(box.Max)
	return math32.Max(a, b)
}

// ConvexInertia returns the unit-mass inertia diagonal of the shape about
// its own center. Callers scale by body mass.
func (s *Shape) ConvexInertia() rl.Vector3 {
	switch s.kind {
	case ShapeBox:
		return boxInertia(s.dx, s.dy, s.dz)
	case ShapeSphere:
		i := 2.0 / 5.0 * s.radius * s.radius
		return rl.Vector3{X: i, Y: i, Z: i}
	case ShapeCylinder, ShapeChamferCylinder:
		// solid cylinder along X
		axial := s.radius * s.radius / 2
		perp := (3*s.radius*s.radius + s.height*s.height) / 12
		return rl.Vector3{X: axial, Y: perp, Z: perp}
	case ShapeCapsule:
		// approximated as the enclosing cylinder
		h := s.height + 2*s.radius
		axial := s.radius * s.radius / 2
		perp := (3*s.radius*s.radius + h*h) / 12
		return rl.Vector3{X: axial, Y: perp, Z: perp}
	case ShapeCone:
		axial := 3.0 / 10.0 * s.radius * s.radius
		perp := 3.0/20.0*s.radius*s.radius + 3.0/80.0*s.height*s.height
		return rl.Vector3{X: axial, Y: perp, Z: perp}
	default:
		// hulls, compounds and trees fall back to their bounding box
		size := s.LocalAABB().Size()
		return boxInertia(size.X, size.Y, size.Z)
	}
}

func boxInertia(dx, dy, dz float32) rl.Vector3 {
	return rl.Vector3{
		X: (dy*dy + dz*dz) / 12,
		Y: (dx*dx + dz*dz) / 12,
		Z: (dx*dx + dy*dy) / 12,
	}
}

// ForEachPolygon walks the shape's collision geometry under the given world
// matrix, one face at a time. Trees yield their triangles; convex shapes
// yield the six quads of their oriented bounds, which is the resolution the
// contact solver works at.
func (s *Shape) ForEachPolygon(m rl.Matrix, fn func(face []rl.Vector3)) {
	switch s.kind {
	case ShapeTree:
		if s.tree == nil {
			return
		}
		for i := range s.tree.triangles {
			tri := &s.tree.triangles[i]
			fn([]rl.Vector3{
				rl.Vector3Transform(tri.V0, m),
				rl.Vector3Transform(tri.V1, m),
				rl.Vector3Transform(tri.V2, m),
			})
		}
	case ShapeCompound:
		for _, h := range s.hulls {
			h.ForEachPolygon(m, fn)
		}
	default:
		obb := s.worldOBB(m)
		corners := obbCorners(obb)
		for _, q := range boxQuads {
			fn([]rl.Vector3{corners[q[0]], corners[q[1]], corners[q[2]], corners[q[3]]})
		}
	}
}

// corner order: (±x)(±y)(±z) with bit 0 = x, bit 1 = y, bit 2 = z
var boxQuads = [6][4]int{
	{0, 2, 6, 4},
	{1, 5, 7, 3},
	{0, 4, 5, 1},
	{2, 3, 7, 6},
	{0, 1, 3, 2},
	{4, 6, 7, 5},
}

func obbCorners(o OBB) [8]rl.Vector3 {
	var out [8]rl.Vector3
	for i := 0; i < 8; i++ {
		sx := float32(-1)
		if i&1 != 0 {
			sx = 1
		}
		sy := float32(-1)
		if i&2 != 0 {
			sy = 1
		}
		sz := float32(-1)
		if i&4 != 0 {
			sz = 1
		}
		c := o.Center
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[0], sx*o.HalfSize.X))
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[1], sy*o.HalfSize.Y))
		c = rl.Vector3Add(c, rl.Vector3Scale(o.Axes[2], sz*o.HalfSize.Z))
		out[i] = c
	}
	return out
}

func boundsOfPoints(points []rl.Vector3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = vector3Min(box.Min, p)
		box.Max = vector3Max(box.Max, p)
	}
	return box
}

func translationOf(m rl.Matrix) rl.Vector3 {
	return rl.Vector3{X: m.M12, Y: m.M13, Z: m.M14}
}
