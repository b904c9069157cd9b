package scene

import (
	"goblin3d/internal/physics"
)

// Scene owns a flat list of root nodes and the physics engine that
// simulates them.
type Scene struct {
	Engine *physics.Engine
	Nodes  []*Node
}

func NewScene(engine *physics.Engine) *Scene {
	return &Scene{Engine: engine}
}

// Add registers a node with the scene and, when it carries a physics
// object, with the simulation. The node's mesh becomes the collision
// geometry unless one was set explicitly.
func (s *Scene) Add(n *Node) error {
	s.Nodes = append(s.Nodes, n)
	if n.Physics == nil {
		return nil
	}
	n.Physics.Container = n
	if n.Physics.Geometry == nil {
		n.Physics.Geometry = n.Mesh
	}
	wt := n.WorldTransform()
	n.Physics.InitialWorldTransform = wt
	n.Physics.CompoundInitialWorldTransform = wt
	return s.Engine.AddPhysicsObject(n.Physics)
}

// Remove takes a node out of the scene and the simulation.
func (s *Scene) Remove(n *Node) {
	for i, node := range s.Nodes {
		if node == n {
			s.Nodes = append(s.Nodes[:i], s.Nodes[i+1:]...)
			break
		}
	}
	if n.Physics != nil {
		s.Engine.RemovePhysicsObject(n.Physics)
	}
}

// Update advances the simulation and pulls the resulting poses back
// onto the nodes.
func (s *Scene) Update(elapsed float32) {
	s.Engine.Update(elapsed)
	for _, n := range s.Nodes {
		n.SyncFromPhysics()
	}
}

// FindByName returns the first root node with the given name, or nil.
func (s *Scene) FindByName(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}
