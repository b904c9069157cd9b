// Package assets loads shared simulation assets from disk. Material files
// are JSON and cached by path, so repeated lookups are cheap.
package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"goblin3d/internal/physics"
)

// materialDef is the JSON format for physics material files
type materialDef struct {
	Name1           string   `json:"name1"`
	Name2           string   `json:"name2"`
	Collidable      *bool    `json:"collidable,omitempty"`
	StaticFriction  *float32 `json:"static_friction,omitempty"`
	KineticFriction *float32 `json:"kinetic_friction,omitempty"`
	Elasticity      *float32 `json:"elasticity,omitempty"`
	Softness        *float32 `json:"softness,omitempty"`
}

var manager *Manager

type Manager struct {
	materials map[string]*physics.Material
}

func Init() {
	manager = &Manager{
		materials: make(map[string]*physics.Material),
	}
}

// LoadMaterial loads a material pair from a JSON file, caching it for
// reuse. Properties left out of the file keep the engine defaults, and a
// missing or malformed file yields a plain default material.
func LoadMaterial(path string) *physics.Material {
	if manager == nil {
		Init()
	}

	if material, exists := manager.materials[path]; exists {
		return material
	}

	material := physics.NewMaterial("", "")

	data, err := os.ReadFile(path)
	if err != nil {
		return material
	}
	var def materialDef
	if err := json.Unmarshal(data, &def); err != nil {
		return material
	}

	material.MaterialName1 = def.Name1
	material.MaterialName2 = def.Name2
	if def.Collidable != nil {
		material.Collidable = *def.Collidable
	}
	if def.StaticFriction != nil {
		material.StaticFriction = *def.StaticFriction
	}
	if def.KineticFriction != nil {
		material.KineticFriction = *def.KineticFriction
	}
	if def.Elasticity != nil {
		material.Elasticity = *def.Elasticity
	}
	if def.Softness != nil {
		material.Softness = *def.Softness
	}

	manager.materials[path] = material
	return material
}

// LoadMaterialDir registers every .json material in a directory with the
// engine. Files that fail to parse register as defaults rather than
// aborting the batch.
func LoadMaterialDir(engine *physics.Engine, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		engine.AddPhysicsMaterial(LoadMaterial(filepath.Join(dir, e.Name())))
	}
	return nil
}

func Unload() {
	if manager == nil {
		return
	}
	manager.materials = make(map[string]*physics.Material)
}
