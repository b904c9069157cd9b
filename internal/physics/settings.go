package physics

import (
	"encoding/json"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SettingsPath is the path to the simulation settings file, relative to
// the process working directory.
const SettingsPath = "config/physics.json"

// Settings holds the tunables an engine is created with. Persisted
// across runs; everything that changes per object lives on Object.
type Settings struct {
	// Gravity is the world acceleration applied to gravity-affected
	// bodies, in units per second squared.
	Gravity [3]float32 `json:"gravity"`

	// UseBoundingBox forces every collision volume to a box matching
	// the object's bounds, regardless of its declared shape.
	UseBoundingBox bool `json:"use_bounding_box"`

	// WorldSize is the half-extent of the simulated region. Values at
	// or below zero fall back to the default.
	WorldSize float32 `json:"world_size"`

	// TelemetryAddr, when non-empty, serves the live telemetry stream.
	TelemetryAddr string `json:"telemetry_addr,omitempty"`
}

// DefaultSettings returns standard earth gravity along negative Y and a
// 500 unit world half-extent.
func DefaultSettings() Settings {
	return Settings{
		Gravity:   [3]float32{0, -9.8, 0},
		WorldSize: 500,
	}
}

// GravityVector returns the configured gravity as a vector.
func (s Settings) GravityVector() rl.Vector3 {
	return rl.NewVector3(s.Gravity[0], s.Gravity[1], s.Gravity[2])
}

// LoadSettings reads settings from config/physics.json. If the file is
// missing or invalid, returns DefaultSettings() and does not create a file.
func LoadSettings() (Settings, error) {
	data, err := os.ReadFile(SettingsPath)
	if err != nil {
		return DefaultSettings(), nil
	}
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), nil
	}
	if s.WorldSize <= 0 {
		s.WorldSize = DefaultSettings().WorldSize
	}
	return s, nil
}

// SaveSettings writes settings to config/physics.json, creating the
// config directory if needed.
func SaveSettings(s Settings) error {
	dir := filepath.Dir(SettingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(SettingsPath, data, 0644)
}
