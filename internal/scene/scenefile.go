package scene

import (
	"encoding/json"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"goblin3d/internal/physics"
)

// --- JSON types ---

type SceneFile struct {
	Nodes []NodeDef `json:"nodes"`
}

type NodeDef struct {
	Name     string         `json:"name"`
	Tags     []string       `json:"tags,omitempty"`
	Position [3]float32     `json:"position"`
	Rotation [3]float32     `json:"rotation"`
	Scale    [3]float32     `json:"scale"`
	Mesh     *MeshDef       `json:"mesh,omitempty"`
	Physics  map[string]any `json:"physics,omitempty"`
}

type MeshDef struct {
	Kind   string    `json:"kind"`
	Size   []float32 `json:"size,omitempty"`
	Radius float32   `json:"radius,omitempty"`
	Height float32   `json:"height,omitempty"`
}

// --- Loading ---

// Load reads a scene file and adds every node, wiring physics objects
// into the engine as it goes.
func (s *Scene) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	for _, def := range sf.Nodes {
		n := NewNode(def.Name)
		n.Tags = def.Tags
		n.Position = rl.NewVector3(def.Position[0], def.Position[1], def.Position[2])
		n.Rotation = rl.NewVector3(def.Rotation[0], def.Rotation[1], def.Rotation[2])
		if def.Scale != [3]float32{} {
			n.Scale = rl.NewVector3(def.Scale[0], def.Scale[1], def.Scale[2])
		}
		if def.Mesh != nil {
			n.Mesh = buildMesh(def.Mesh)
		}
		if def.Physics != nil {
			n.Physics = physics.NewObject(n)
			n.Physics.Deserialize(def.Physics)
		}
		if err := s.Add(n); err != nil {
			return fmt.Errorf("add node %q: %w", def.Name, err)
		}
	}
	return nil
}

func buildMesh(def *MeshDef) *Mesh {
	var m *Mesh
	switch def.Kind {
	case "box":
		if len(def.Size) >= 3 {
			m = NewBoxMesh(def.Size[0], def.Size[1], def.Size[2])
		}
	case "plane":
		if len(def.Size) >= 2 {
			m = NewPlaneMesh(def.Size[0], def.Size[1])
		}
	case "sphere":
		m = NewSphereMesh(def.Radius, 16, 16)
	case "cylinder":
		m = NewCylinderMesh(def.Radius, def.Height, 16)
	}
	if m != nil {
		m.def = def
	}
	return m
}

// --- Saving ---

// Save writes every root node back to a scene file.
func (s *Scene) Save(path string) error {
	sf := SceneFile{Nodes: make([]NodeDef, 0, len(s.Nodes))}
	for _, n := range s.Nodes {
		def := NodeDef{
			Name:     n.Name,
			Tags:     n.Tags,
			Position: [3]float32{n.Position.X, n.Position.Y, n.Position.Z},
			Rotation: [3]float32{n.Rotation.X, n.Rotation.Y, n.Rotation.Z},
			Scale:    [3]float32{n.Scale.X, n.Scale.Y, n.Scale.Z},
		}
		if n.Mesh != nil {
			def.Mesh = n.Mesh.def
		}
		if n.Physics != nil {
			def.Physics = n.Physics.Serialize()
		}
		sf.Nodes = append(sf.Nodes, def)
	}

	data, err := json.MarshalIndent(&sf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
