package physics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	dir := t.TempDir()
	prev, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(prev)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Missing file should not be an error: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("Missing file should yield defaults, got %+v", s)
	}
}

func TestLoadSettingsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	prev, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(prev)

	os.MkdirAll(filepath.Dir(SettingsPath), 0755)
	os.WriteFile(SettingsPath, []byte("{nope"), 0644)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("Invalid file should not be an error: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("Invalid file should yield defaults, got %+v", s)
	}
}

func TestSettingsSaveLoad(t *testing.T) {
	dir := t.TempDir()
	prev, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(prev)

	s := DefaultSettings()
	s.Gravity = [3]float32{0, -3.7, 0}
	s.UseBoundingBox = true
	if err := SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded != s {
		t.Errorf("Round trip changed settings: %+v != %+v", loaded, s)
	}
}

func TestWorldSizeFallback(t *testing.T) {
	dir := t.TempDir()
	prev, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(prev)

	s := DefaultSettings()
	s.WorldSize = -10
	SaveSettings(s)

	loaded, _ := LoadSettings()
	if loaded.WorldSize != DefaultSettings().WorldSize {
		t.Errorf("Non-positive world size should fall back, got %v", loaded.WorldSize)
	}
}
