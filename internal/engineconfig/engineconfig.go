package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jinzhu/copier"

	"physbody-engine/internal/physics"
	"physbody-engine/internal/physics3d"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
// ENGINE_CONFIG overrides it.
const EngineConfigPath = "config/engine.json"

// Window describes the raylib window. Width or height 0 means the size of the primary monitor.
type Window struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Title      string `json:"title"`
	TargetFPS  int    `json:"target_fps"`
	Fullscreen bool   `json:"fullscreen"`
}

// Physics mirrors physics.Config field by field so it can be copied across.
type Physics struct {
	GravityX           float64 `json:"gravity_x"`
	GravityY           float64 `json:"gravity_y"`
	PixelsPerUnit      float64 `json:"pixels_per_unit"`
	FixedTimeStep      float64 `json:"fixed_time_step"`
	VelocityIterations int     `json:"velocity_iterations"`
	PositionIterations int     `json:"position_iterations"`
	Debug              bool    `json:"debug"`
}

// Physics3D mirrors physics3d.Config.
type Physics3D struct {
	GravityX      float32 `json:"gravity_x"`
	GravityY      float32 `json:"gravity_y"`
	GravityZ      float32 `json:"gravity_z"`
	FixedTimeStep float32 `json:"fixed_time_step"`
	Iterations    int     `json:"iterations"`
}

// Config holds engine settings read once at startup. Persisted across runs.
type Config struct {
	Window       Window    `json:"window"`
	Physics      Physics   `json:"physics"`
	Physics3D    Physics3D `json:"physics3d"`
	Scene        string    `json:"scene"`
	ShowFPS      bool      `json:"show_fps"`
	ShowMemAlloc bool      `json:"show_memalloc"`
	GridVisible  bool      `json:"grid_visible"`
	StreamAddr   string    `json:"stream_addr,omitempty"`
}

// Default returns the settings used when no config file exists: a 1024x768 window, the intro2d
// scene, physics defaults from the physics packages and debug draw on.
func Default() Config {
	c := Config{
		Window:      Window{Width: 1024, Height: 768, Title: "physbody engine", TargetFPS: 60},
		Scene:       "intro2d",
		GridVisible: true,
	}
	p := physics.DefaultConfig()
	p.Debug = true
	_ = copier.Copy(&c.Physics, &p)
	p3 := physics3d.DefaultConfig()
	_ = copier.Copy(&c.Physics3D, &p3)
	return c
}

// Path returns the config path, honouring ENGINE_CONFIG.
func Path() string {
	if p := os.Getenv("ENGINE_CONFIG"); p != "" {
		return p
	}
	return EngineConfigPath
}

// Load reads the config from Path(). See LoadFrom.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path on top of Default(), so keys missing from the file keep
// their default. A missing file is not an error. An invalid file returns Default() and the error.
func LoadFrom(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("engineconfig: %w", err)
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to Path(). See SaveTo.
func Save(c Config) error {
	return SaveTo(Path(), c)
}

// SaveTo writes c to path, creating the directory if needed.
func SaveTo(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides c from the environment:
// PHYSICS_GRAVITY_X, PHYSICS_GRAVITY_Y, PHYSICS_PIXELS_PER_UNIT, ENGINE_SCENE and ENGINE_STREAM_ADDR.
func (c *Config) ApplyEnv() error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"PHYSICS_GRAVITY_X", &c.Physics.GravityX},
		{"PHYSICS_GRAVITY_Y", &c.Physics.GravityY},
		{"PHYSICS_PIXELS_PER_UNIT", &c.Physics.PixelsPerUnit},
	}
	for _, f := range floats {
		v, ok := os.LookupEnv(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("engineconfig: %s: %w", f.key, err)
		}
		*f.dst = n
	}
	if v := os.Getenv("ENGINE_SCENE"); v != "" {
		c.Scene = v
	}
	if v, ok := os.LookupEnv("ENGINE_STREAM_ADDR"); ok {
		c.StreamAddr = v
	}
	return nil
}

// PhysicsConfig returns the 2D module config. Validation happens in physics.New.
func (c Config) PhysicsConfig() physics.Config {
	var out physics.Config
	_ = copier.Copy(&out, &c.Physics)
	return out
}

// Physics3DConfig returns the 3D module config.
func (c Config) Physics3DConfig() physics3d.Config {
	var out physics3d.Config
	_ = copier.Copy(&out, &c.Physics3D)
	return out
}
