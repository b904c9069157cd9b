package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMaterialReadsProperties(t *testing.T) {
	Init()
	path := filepath.Join(t.TempDir(), "wood_on_metal.json")
	data := `{"name1":"wood","name2":"metal","static_friction":0.6,"kinetic_friction":0.4,"elasticity":0.2}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m := LoadMaterial(path)
	if m.MaterialName1 != "wood" || m.MaterialName2 != "metal" {
		t.Errorf("material names %q/%q, want wood/metal", m.MaterialName1, m.MaterialName2)
	}
	if m.StaticFriction != 0.6 {
		t.Errorf("static friction %v, want 0.6", m.StaticFriction)
	}
	if !m.Collidable {
		t.Error("collidable should default to true when not in the file")
	}
	if m.Softness != -1 {
		t.Errorf("softness %v, want the -1 default sentinel", m.Softness)
	}
}

func TestLoadMaterialMissingFileGivesDefault(t *testing.T) {
	Init()
	m := LoadMaterial(filepath.Join(t.TempDir(), "absent.json"))
	if !m.Collidable || m.StaticFriction != -1 {
		t.Error("missing file should yield a default material")
	}
}

func TestLoadMaterialCachesByPath(t *testing.T) {
	Init()
	path := filepath.Join(t.TempDir(), "ice.json")
	if err := os.WriteFile(path, []byte(`{"name1":"ice","name2":"ice"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	first := LoadMaterial(path)
	second := LoadMaterial(path)
	if first != second {
		t.Error("expected the cached material on the second load")
	}
}
