package scene

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/physics"
)

// Mesh is generated triangle geometry in model space. It satisfies
// physics.GeometryProvider, so a node's mesh doubles as its collision
// source without any GPU resources involved.
type Mesh struct {
	vertices []rl.Vector3
	indices  []uint16

	min, max rl.Vector3

	offset    rl.Matrix
	hasOffset bool

	def *MeshDef // how this mesh was described in a scene file, if it was
}

func (m *Mesh) BoundingBox() (min, max rl.Vector3) { return m.min, m.max }
func (m *Mesh) OffsetFromOrigin() bool             { return m.hasOffset }
func (m *Mesh) OffsetTransform() rl.Matrix         { return m.offset }
func (m *Mesh) Vertices() []rl.Vector3             { return m.vertices }
func (m *Mesh) MeshParts() []physics.MeshPart      { return nil }

func (m *Mesh) Primitive() *physics.PrimitiveMesh {
	return &physics.PrimitiveMesh{
		Vertices: m.vertices,
		Indices:  m.indices,
		Topology: physics.TriangleList,
	}
}

// SetOffset marks the mesh as displaced from its local origin.
func (m *Mesh) SetOffset(offset rl.Vector3) {
	m.offset = rl.MatrixTranslate(offset.X, offset.Y, offset.Z)
	m.hasOffset = true
}

func (m *Mesh) finish() *Mesh {
	if len(m.vertices) == 0 {
		return m
	}
	m.min, m.max = m.vertices[0], m.vertices[0]
	for _, v := range m.vertices[1:] {
		m.min = rl.NewVector3(
			math32.Min(m.min.X, v.X), math32.Min(m.min.Y, v.Y), math32.Min(m.min.Z, v.Z))
		m.max = rl.NewVector3(
			math32.Max(m.max.X, v.X), math32.Max(m.max.Y, v.Y), math32.Max(m.max.Z, v.Z))
	}
	return m
}

// NewBoxMesh builds an origin-centered box with the given full extents.
func NewBoxMesh(dx, dy, dz float32) *Mesh {
	hx, hy, hz := dx/2, dy/2, dz/2
	m := &Mesh{
		vertices: []rl.Vector3{
			{X: -hx, Y: -hy, Z: -hz},
			{X: hx, Y: -hy, Z: -hz},
			{X: hx, Y: hy, Z: -hz},
			{X: -hx, Y: hy, Z: -hz},
			{X: -hx, Y: -hy, Z: hz},
			{X: hx, Y: -hy, Z: hz},
			{X: hx, Y: hy, Z: hz},
			{X: -hx, Y: hy, Z: hz},
		},
		indices: []uint16{
			0, 2, 1, 0, 3, 2, // back
			4, 5, 6, 4, 6, 7, // front
			0, 1, 5, 0, 5, 4, // bottom
			3, 7, 6, 3, 6, 2, // top
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
	m.def = &MeshDef{Kind: "box", Size: []float32{dx, dy, dz}}
	return m.finish()
}

// NewPlaneMesh builds a flat quad in the XZ plane at Y=0.
func NewPlaneMesh(width, depth float32) *Mesh {
	hw, hd := width/2, depth/2
	m := &Mesh{
		vertices: []rl.Vector3{
			{X: -hw, Z: -hd},
			{X: hw, Z: -hd},
			{X: hw, Z: hd},
			{X: -hw, Z: hd},
		},
		indices: []uint16{0, 2, 1, 0, 3, 2},
	}
	m.def = &MeshDef{Kind: "plane", Size: []float32{width, depth}}
	return m.finish()
}

// NewSphereMesh builds a UV sphere centered at the origin.
func NewSphereMesh(radius float32, rings, slices int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if slices < 3 {
		slices = 3
	}
	m := &Mesh{def: &MeshDef{Kind: "sphere", Radius: radius}}
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		for s := 0; s <= slices; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(slices)
			m.vertices = append(m.vertices, rl.Vector3{
				X: radius * math32.Sin(phi) * math32.Cos(theta),
				Y: radius * math32.Cos(phi),
				Z: radius * math32.Sin(phi) * math32.Sin(theta),
			})
		}
	}
	stride := uint16(slices + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < slices; s++ {
			i0 := uint16(r)*stride + uint16(s)
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1
			m.indices = append(m.indices, i0, i2, i1, i1, i2, i3)
		}
	}
	return m.finish()
}

// NewCylinderMesh builds a cylinder along Y centered at the origin.
func NewCylinderMesh(radius, height float32, slices int) *Mesh {
	if slices < 3 {
		slices = 3
	}
	m := &Mesh{def: &MeshDef{Kind: "cylinder", Radius: radius, Height: height}}
	hy := height / 2
	for s := 0; s <= slices; s++ {
		theta := 2 * math32.Pi * float32(s) / float32(slices)
		x := radius * math32.Cos(theta)
		z := radius * math32.Sin(theta)
		m.vertices = append(m.vertices,
			rl.Vector3{X: x, Y: -hy, Z: z},
			rl.Vector3{X: x, Y: hy, Z: z},
		)
	}
	for s := 0; s < slices; s++ {
		i0 := uint16(s * 2)
		m.indices = append(m.indices,
			i0, i0+1, i0+2,
			i0+2, i0+1, i0+3,
		)
	}
	// cap fans
	bottomCenter := uint16(len(m.vertices))
	m.vertices = append(m.vertices, rl.Vector3{Y: -hy}, rl.Vector3{Y: hy})
	for s := 0; s < slices; s++ {
		i0 := uint16(s * 2)
		m.indices = append(m.indices,
			bottomCenter, i0+2, i0,
			bottomCenter+1, i0+1, i0+3,
		)
	}
	return m.finish()
}
