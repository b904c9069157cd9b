package scene

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/physics"
)

// Node is one entity in a scene: a transform, optional generated mesh,
// and an optional physics object driven by the simulation.
type Node struct {
	Name string
	Tags []string

	Position rl.Vector3
	Rotation rl.Vector3 // euler angles in degrees, applied X then Y then Z
	Scale    rl.Vector3

	Mesh    *Mesh
	Physics *physics.Object

	Parent   *Node
	Children []*Node
}

// NewNode returns a node at the origin with unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Scale: rl.NewVector3(1, 1, 1),
	}
}

func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// WorldTransform composes the node's local transform with its parent
// chain: scale, then rotation X-Y-Z, then translation.
func (n *Node) WorldTransform() rl.Matrix {
	local := rl.MatrixMultiply(
		rl.MatrixMultiply(
			rl.MatrixScale(n.Scale.X, n.Scale.Y, n.Scale.Z),
			rotationMatrix(n.Rotation),
		),
		rl.MatrixTranslate(n.Position.X, n.Position.Y, n.Position.Z),
	)
	if n.Parent == nil {
		return local
	}
	return rl.MatrixMultiply(local, n.Parent.WorldTransform())
}

// SyncFromPhysics copies the simulated pose back onto the node's
// position and leaves rotation to the physics transform consumers.
func (n *Node) SyncFromPhysics() {
	if n.Physics == nil {
		return
	}
	m := n.Physics.PhysicsWorldTransform
	n.Position = rl.NewVector3(m.M12, m.M13, m.M14)
}

func rotationMatrix(degrees rl.Vector3) rl.Matrix {
	rx := rl.MatrixRotateX(degrees.X * math.Pi / 180)
	ry := rl.MatrixRotateY(degrees.Y * math.Pi / 180)
	rz := rl.MatrixRotateZ(degrees.Z * math.Pi / 180)
	return rl.MatrixMultiply(rl.MatrixMultiply(rx, ry), rz)
}
