// Package shapes loads body definitions (shape, size, sprite) from YAML files under assets/shapes.
package shapes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"physbody-engine/internal/physics"
	"physbody-engine/internal/units"
)

// Dir is the default shape directory, relative to the working directory.
const Dir = "assets/shapes"

// Def is the YAML definition of a spawnable body (e.g. assets/shapes/wheel.yaml).
// Sizes and vertices are in pixels.
type Def struct {
	Name        string       `yaml:"name"`
	Kind        string       `yaml:"kind"`
	Body        string       `yaml:"body,omitempty"`
	Radius      float64      `yaml:"radius,omitempty"`
	HalfWidth   float64      `yaml:"half_width,omitempty"`
	HalfHeight  float64      `yaml:"half_height,omitempty"`
	Vertices    [][2]float64 `yaml:"vertices,omitempty"`
	Texture     string       `yaml:"texture,omitempty"`
	Anchor      *[2]float64  `yaml:"anchor,omitempty"`
	Density     *float64     `yaml:"density,omitempty"`
	Friction    *float64     `yaml:"friction,omitempty"`
	Restitution *float64     `yaml:"restitution,omitempty"`
}

// Parse decodes one definition and checks that the fields its kind needs are present.
func Parse(data []byte) (Def, error) {
	var d Def
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Def{}, fmt.Errorf("shapes: %w", err)
	}
	if err := d.validate(); err != nil {
		return Def{}, err
	}
	return d, nil
}

func (d Def) validate() error {
	if d.Name == "" {
		return fmt.Errorf("shapes: missing name")
	}
	switch d.Kind {
	case "circle":
		if d.Radius <= 0 {
			return fmt.Errorf("shapes: %s: circle needs a positive radius", d.Name)
		}
	case "box":
		if d.HalfWidth <= 0 || d.HalfHeight <= 0 {
			return fmt.Errorf("shapes: %s: box needs positive half_width and half_height", d.Name)
		}
	case "chain":
		if len(d.Vertices) < 3 {
			return fmt.Errorf("shapes: %s: chain needs at least 3 vertices", d.Name)
		}
	default:
		return fmt.Errorf("shapes: %s: unknown kind %q", d.Name, d.Kind)
	}
	if _, err := d.BodyKind(); err != nil {
		return err
	}
	return nil
}

// BodyKind maps the body field; an empty value means dynamic.
func (d Def) BodyKind() (physics.BodyKind, error) {
	switch strings.ToLower(d.Body) {
	case "", "dynamic":
		return physics.Dynamic, nil
	case "static":
		return physics.Static, nil
	case "kinematic":
		return physics.Kinematic, nil
	}
	return 0, fmt.Errorf("shapes: %s: unknown body %q", d.Name, d.Body)
}

// Points returns the chain vertices as pixel offsets.
func (d Def) Points() []units.Vec2 {
	out := make([]units.Vec2, len(d.Vertices))
	for i, v := range d.Vertices {
		out[i] = units.V(v[0], v[1])
	}
	return out
}

// Options turns the optional material and anchor fields into body options.
func (d Def) Options() []physics.BodyOption {
	var opts []physics.BodyOption
	if d.Density != nil {
		opts = append(opts, physics.WithDensity(*d.Density))
	}
	if d.Friction != nil {
		opts = append(opts, physics.WithFriction(*d.Friction))
	}
	if d.Restitution != nil {
		opts = append(opts, physics.WithRestitution(*d.Restitution))
	}
	if d.Anchor != nil {
		opts = append(opts, physics.WithAnchor(units.V(d.Anchor[0], d.Anchor[1])))
	}
	return opts
}

// Spawn creates the body described by d at pixel position at.
func (d Def) Spawn(m *physics.Module, at units.Vec2) (*physics.PhysBody, error) {
	kind, err := d.BodyKind()
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case "circle":
		return m.CreateCircle(at, d.Radius, kind, d.Options()...)
	case "box":
		return m.CreateBox(at, d.HalfWidth, d.HalfHeight, kind, d.Options()...)
	case "chain":
		return m.CreateChain(at, d.Points(), kind, d.Options()...)
	}
	return nil, fmt.Errorf("shapes: %s: unknown kind %q", d.Name, d.Kind)
}

// Load reads one definition file.
func Load(path string) (Def, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Def{}, fmt.Errorf("shapes: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return Def{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}

// LoadDir reads every *.yaml file in dir, keyed by definition name.
func LoadDir(dir string) (map[string]Def, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("shapes: %w", err)
	}
	sort.Strings(paths)
	defs := make(map[string]Def, len(paths))
	for _, p := range paths {
		d, err := Load(p)
		if err != nil {
			return nil, err
		}
		if _, dup := defs[d.Name]; dup {
			return nil, fmt.Errorf("shapes: duplicate definition %q in %s", d.Name, p)
		}
		defs[d.Name] = d
	}
	return defs, nil
}
