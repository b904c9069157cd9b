package newton

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Triangle is a single tree-collision face with a precomputed normal and a
// caller-defined attribute id.
type Triangle struct {
	V0, V1, V2 rl.Vector3
	Normal     rl.Vector3
	Attribute  int
}

type bvhNode struct {
	bounds    AABB
	left      *bvhNode
	right     *bvhNode
	triangles []int // leaf only, indices into the triangle array
}

type treeData struct {
	triangles []Triangle
	root      *bvhNode
	bounds    AABB
	building  bool
}

// BeginTree starts an incremental tree-collision build. Faces are fed one at
// a time with AddFace and the hierarchy is constructed by EndTree.
func BeginTree() *Shape {
	return &Shape{kind: ShapeTree, tree: &treeData{building: true}}
}

// AddFace appends one triangle to a tree under construction. Calling it
// after EndTree is a no-op.
func (s *Shape) AddFace(v0, v1, v2 rl.Vector3, attribute int) {
	if s.kind != ShapeTree || s.tree == nil || !s.tree.building {
		return
	}
	edge1 := rl.Vector3Subtract(v1, v0)
	edge2 := rl.Vector3Subtract(v2, v0)
	normal := rl.Vector3Normalize(rl.Vector3CrossProduct(edge1, edge2))
	s.tree.triangles = append(s.tree.triangles, Triangle{V0: v0, V1: v1, V2: v2, Normal: normal, Attribute: attribute})
}

// EndTree finishes the build and constructs the bounding volume hierarchy.
func (s *Shape) EndTree() {
	if s.kind != ShapeTree || s.tree == nil {
		return
	}
	t := s.tree
	t.building = false
	if len(t.triangles) == 0 {
		return
	}

	indices := make([]int, len(t.triangles))
	for i := range indices {
		indices[i] = i
	}
	t.root = t.buildNode(indices, 0)
	t.bounds = t.root.bounds
}

// FaceCount returns the number of faces in a tree shape.
func (s *Shape) FaceCount() int {
	if s.kind != ShapeTree || s.tree == nil {
		return 0
	}
	return len(s.tree.triangles)
}

func (t *treeData) buildNode(indices []int, depth int) *bvhNode {
	node := &bvhNode{}
	node.bounds = t.computeBounds(indices)

	if len(indices) <= 4 || depth > 20 {
		node.triangles = indices
		return node
	}

	// split on the longest axis
	size := rl.Vector3Subtract(node.bounds.Max, node.bounds.Min)
	axis := 0
	if size.Y > size.X {
		axis = 1
	}
	if size.Z > axisValue(size, axis) {
		axis = 2
	}

	mid := t.partition(indices, axis)
	if mid == 0 || mid == len(indices) {
		node.triangles = indices
		return node
	}

	node.left = t.buildNode(indices[:mid], depth+1)
	node.right = t.buildNode(indices[mid:], depth+1)
	return node
}

func (t *treeData) computeBounds(indices []int) AABB {
	bounds := AABB{
		Min: rl.Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: rl.Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
	for _, idx := range indices {
		tri := &t.triangles[idx]
		bounds.Min = vector3Min(bounds.Min, tri.V0)
		bounds.Min = vector3Min(bounds.Min, tri.V1)
		bounds.Min = vector3Min(bounds.Min, tri.V2)
		bounds.Max = vector3Max(bounds.Max, tri.V0)
		bounds.Max = vector3Max(bounds.Max, tri.V1)
		bounds.Max = vector3Max(bounds.Max, tri.V2)
	}
	return bounds
}

func (t *treeData) partition(indices []int, axis int) int {
	center := float32(0)
	for _, idx := range indices {
		center += axisValue(t.centroid(idx), axis)
	}
	center /= float32(len(indices))

	left := 0
	right := len(indices) - 1
	for left <= right {
		if axisValue(t.centroid(indices[left]), axis) < center {
			left++
		} else {
			indices[left], indices[right] = indices[right], indices[left]
			right--
		}
	}
	return left
}

func (t *treeData) centroid(idx int) rl.Vector3 {
	tri := &t.triangles[idx]
	return rl.Vector3Scale(rl.Vector3Add(rl.Vector3Add(tri.V0, tri.V1), tri.V2), 1.0/3.0)
}

func (t *treeData) query(node *bvhNode, box AABB) []int {
	if node == nil || !node.bounds.Intersects(box) {
		return nil
	}
	if node.triangles != nil {
		return node.triangles
	}
	left := t.query(node.left, box)
	right := t.query(node.right, box)
	return append(left, right...)
}

// sphereIntersect tests a world-space sphere against the tree under the
// given body matrix. It returns the accumulated push-out vector and the
// deepest contact found.
func (t *treeData) sphereIntersect(m rl.Matrix, center rl.Vector3, radius float32) (bool, rl.Vector3, rl.Vector3) {
	if t.root == nil {
		return false, rl.Vector3{}, rl.Vector3{}
	}

	// move the sphere into tree-local space
	inv := rl.MatrixInvert(m)
	local := rl.Vector3Transform(center, inv)

	query := AABB{
		Min: rl.Vector3{X: local.X - radius, Y: local.Y - radius, Z: local.Z - radius},
		Max: rl.Vector3{X: local.X + radius, Y: local.Y + radius, Z: local.Z + radius},
	}
	candidates := t.query(t.root, query)

	var totalPush rl.Vector3
	var contact rl.Vector3
	hit := false
	deepest := float32(0)

	for _, idx := range candidates {
		tri := &t.triangles[idx]
		if ok, push, point := sphereTriangleIntersect(local, radius, tri); ok {
			// keep the largest push per axis so shared edges don't double-count
			if math32.Abs(push.X) > math32.Abs(totalPush.X) {
				totalPush.X = push.X
			}
			if math32.Abs(push.Y) > math32.Abs(totalPush.Y) {
				totalPush.Y = push.Y
			}
			if math32.Abs(push.Z) > math32.Abs(totalPush.Z) {
				totalPush.Z = push.Z
			}
			if d := rl.Vector3Length(push); d > deepest {
				deepest = d
				contact = point
			}
			hit = true
		}
	}
	if !hit {
		return false, rl.Vector3{}, rl.Vector3{}
	}

	// back to world space; the push is a direction so drop translation
	rot := m
	rot.M12, rot.M13, rot.M14 = 0, 0, 0
	return true, rl.Vector3Transform(totalPush, rot), rl.Vector3Transform(contact, m)
}

func sphereTriangleIntersect(center rl.Vector3, radius float32, tri *Triangle) (bool, rl.Vector3, rl.Vector3) {
	closest := closestPointOnTriangle(center, tri.V0, tri.V1, tri.V2)

	diff := rl.Vector3Subtract(center, closest)
	distSq := rl.Vector3DotProduct(diff, diff)
	if distSq >= radius*radius {
		return false, rl.Vector3{}, rl.Vector3{}
	}

	dist := math32.Sqrt(distSq)
	if dist < 0.0001 {
		// center sits on the triangle, push along the face normal
		return true, rl.Vector3Scale(tri.Normal, radius), closest
	}

	pushDir := rl.Vector3Scale(diff, 1.0/dist)
	penetration := radius - dist
	return true, rl.Vector3Scale(pushDir, penetration), closest
}

// closestPointOnTriangle finds the closest point on triangle abc to point p.
func closestPointOnTriangle(p, a, b, c rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v))
	}

	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}

func axisValue(v rl.Vector3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
