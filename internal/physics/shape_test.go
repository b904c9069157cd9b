package physics

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/newton"
)

func TestBoxFromShapeDataScaled(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = Box
	obj.ShapeData = []float32{2, 4, 6}

	shape, err := e.buildCollision(obj, rl.NewVector3(2, 1, 0.5))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	size := shape.LocalAABB().Size()
	if size.X != 4 || size.Y != 4 || size.Z != 3 {
		t.Errorf("Box size = %v, want (4, 4, 3)", size)
	}
}

func TestBoxFromGeometryBounds(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = Box
	obj.Geometry = &stubGeometry{
		min: rl.NewVector3(-1, -2, -3),
		max: rl.NewVector3(1, 2, 3),
	}

	shape, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	size := shape.LocalAABB().Size()
	if size.X != 2 || size.Y != 4 || size.Z != 6 {
		t.Errorf("Box size = %v, want (2, 4, 6)", size)
	}
}

func TestBoundingBoxModeOverridesShape(t *testing.T) {
	settings := DefaultSettings()
	settings.UseBoundingBox = true
	e := NewEngine(settings)

	obj := NewObject(nil)
	obj.Shape = Sphere
	obj.ShapeData = []float32{1, 1, 1}

	shape, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	if shape.Kind() != newton.ShapeBox {
		t.Errorf("Bounding box mode built %v, want a box", shape.Kind())
	}
}

func TestCapsuleFromBounds(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = Capsule
	obj.Geometry = &stubGeometry{
		min: rl.NewVector3(-0.5, -2, -0.5),
		max: rl.NewVector3(0.5, 2, 0.5),
	}

	shape, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	if shape.Kind() != newton.ShapeCapsule {
		t.Fatalf("Expected a capsule, got %v", shape.Kind())
	}
	// Height from the Y extent, radius from the wider of X/Z.
	size := shape.LocalAABB().Size()
	if size.Y != 1 || size.Z != 1 {
		t.Errorf("Capsule cross-section = (%v, %v), want (1, 1)", size.Y, size.Z)
	}
}

func TestCompoundStreamParsing(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = Compound
	// Two hulls: a 4-point block and a 3-point block.
	obj.ShapeData = []float32{
		4,
		0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1,
		3,
		2, 0, 0, 3, 0, 0, 2, 1, 0,
	}

	shape, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatalf("Valid compound rejected: %v", err)
	}
	if shape.Kind() != newton.ShapeCompound {
		t.Errorf("Expected a compound shape, got %v", shape.Kind())
	}
}

func TestCompoundStreamErrors(t *testing.T) {
	e := NewEngine(DefaultSettings())

	cases := []struct {
		name string
		data []float32
	}{
		{"empty", nil},
		{"zero count", []float32{0}},
		{"truncated", []float32{3, 0, 0, 0, 1, 1}},
		{"negative count", []float32{-2, 0, 0, 0}},
	}
	for _, c := range cases {
		obj := NewObject(nil)
		obj.Shape = Compound
		obj.ShapeData = c.data
		_, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
		if err == nil {
			t.Errorf("%s compound data should be rejected", c.name)
			continue
		}
		var cfg *ConfigError
		if !errors.As(err, &cfg) {
			t.Errorf("%s: expected ConfigError, got %T", c.name, err)
		}
	}
}

func TestDeclaredInertiaAxisSwap(t *testing.T) {
	obj := NewObject(nil)
	obj.Shape = Cylinder
	obj.ShapeData = []float32{1, 2}
	obj.MomentOfInertia = rl.NewVector3(1, 2, 3)

	shape := newton.NewCylinder(1, 2)
	inertia := computeInertia(obj, shape)
	want := rl.NewVector3(2, -1, 3)
	if inertia != want {
		t.Errorf("Axis-swapped inertia = %v, want %v", inertia, want)
	}

	// Box shapes keep the declared values untouched.
	obj.Shape = Box
	inertia = computeInertia(obj, newton.NewBox(1, 1, 1))
	if inertia != obj.MomentOfInertia {
		t.Errorf("Box inertia = %v, want %v", inertia, obj.MomentOfInertia)
	}
}

func TestTriangleMeshFromParts(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = TriangleMesh
	obj.Geometry = &stubGeometry{
		parts: []MeshPart{{
			Vertices: []rl.Vector3{
				{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
			},
			Indices:   []uint16{0, 1, 2, 1, 3, 2},
			Transform: rl.MatrixIdentity(),
		}},
	}

	shape, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	if shape.FaceCount() != 2 {
		t.Errorf("Tree has %d faces, want 2", shape.FaceCount())
	}
}

func TestTriangleMeshBuilderOverride(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = TriangleMesh
	obj.Geometry = &stubGeometry{}
	called := false
	obj.TreeBuilder = func(provider GeometryProvider, scale rl.Vector3) *newton.Shape {
		called = true
		tree := newton.BeginTree()
		tree.AddFace(rl.NewVector3(0, 0, 0), rl.NewVector3(1, 0, 0), rl.NewVector3(0, 0, 1), 0)
		tree.EndTree()
		return tree
	}

	shape, err := e.buildCollision(obj, rl.NewVector3(1, 1, 1))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	if !called {
		t.Error("Custom tree builder was not invoked")
	}
	if shape.FaceCount() != 1 {
		t.Errorf("Override tree has %d faces, want 1", shape.FaceCount())
	}
}

func TestTopologyWalks(t *testing.T) {
	quad := []rl.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1}, {X: 2, Y: 0, Z: 0},
	}
	cases := []struct {
		topology PrimitiveTopology
		want     int
	}{
		{TriangleList, 1}, // 5 verts: one full triple
		{TriangleStrip, 3},
		{TriangleFan, 3},
		{LineList, 0},
	}
	for _, c := range cases {
		faces := 0
		walkTriangles(&PrimitiveMesh{Vertices: quad, Topology: c.topology},
			func(v0, v1, v2 rl.Vector3) { faces++ })
		if faces != c.want {
			t.Errorf("%v walked %d faces, want %d", c.topology, faces, c.want)
		}
	}
}

func TestGeometryOffsetShiftsVolume(t *testing.T) {
	e := NewEngine(DefaultSettings())
	obj := NewObject(nil)
	obj.Shape = Box
	obj.ShapeData = []float32{2, 2, 2}
	obj.Geometry = &stubGeometry{
		hasOff: true,
		offset: rl.MatrixTranslate(3, 0, 0),
	}

	shape, err := e.buildCollision(obj, rl.NewVector3(2, 1, 1))
	if err != nil {
		t.Fatalf("buildCollision failed: %v", err)
	}
	box := shape.LocalAABB()
	center := box.Center()
	if center.X != 6 {
		t.Errorf("Offset volume center.X = %v, want 6 (offset scaled by scale.X)", center.X)
	}
}
