package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PrimitiveTopology identifies how a vertex/index stream encodes faces.
type PrimitiveTopology int

const (
	TriangleList PrimitiveTopology = iota
	TriangleStrip
	TriangleFan
	LineList
	LineStrip
	PointList
)

func (t PrimitiveTopology) String() string {
	switch t {
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case LineList:
		return "LineList"
	case LineStrip:
		return "LineStrip"
	case PointList:
		return "PointList"
	default:
		return "Unknown"
	}
}

// MeshPart is one indexed triangle-list section of a multi-part model,
// carrying its own local transform (bone or part offset).
type MeshPart struct {
	Vertices  []rl.Vector3
	Indices   []uint16
	Transform rl.Matrix
}

// PrimitiveMesh is a single vertex stream with an explicit topology.
// Indices may be nil, in which case vertices are walked in order.
type PrimitiveMesh struct {
	Vertices []rl.Vector3
	Indices  []uint16
	Topology PrimitiveTopology
}

// GeometryProvider supplies the model-space geometry the engine builds
// collision volumes from. Scene nodes implement it; the engine never
// touches rendering data directly.
type GeometryProvider interface {
	// BoundingBox returns the model-space axis-aligned bounds.
	BoundingBox() (min, max rl.Vector3)

	// OffsetFromOrigin reports whether the model's geometric center is
	// displaced from its local origin. When true, OffsetTransform gives
	// the displacement and the built collision volume is shifted by it.
	OffsetFromOrigin() bool
	OffsetTransform() rl.Matrix

	// Vertices returns every model-space vertex, used for convex hulls.
	Vertices() []rl.Vector3

	// MeshParts returns the indexed sections of a multi-part model.
	// An empty slice means the geometry is a single PrimitiveMesh.
	MeshParts() []MeshPart

	// Primitive returns the flat mesh used when MeshParts is empty.
	// May be nil when the provider has no triangle data at all.
	Primitive() *PrimitiveMesh
}
