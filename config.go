package conifer

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every constant the generator and its hosts use.
type Config struct {
	Seed   int64        `yaml:"seed"`
	RNG    string       `yaml:"rng"`
	Canvas CanvasConfig `yaml:"canvas"`
	Tree   TreeConfig   `yaml:"tree"`
	Branch BranchConfig `yaml:"branch"`
	Leaf   LeafConfig   `yaml:"leaf"`
}

// CanvasConfig sizes the output surface.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// TreeConfig places the tree and styles its trunk. X and Y are the base of
// the trunk; the apex sits Height units above it.
type TreeConfig struct {
	X          int     `yaml:"x"`
	Y          int     `yaml:"y"`
	Radius     int     `yaml:"radius"`
	Height     int     `yaml:"height"`
	TrunkWidth float64 `yaml:"trunk_width"`
	TrunkColor string  `yaml:"trunk_color"`
	Silhouette string  `yaml:"silhouette"`
}

// BranchConfig controls the branch grid.
type BranchConfig struct {
	XSpacing int     `yaml:"x_spacing"`
	YSpacing int     `yaml:"y_spacing"`
	Length   float64 `yaml:"length"`
}

// LeafConfig controls leaf strokes along a branch.
type LeafConfig struct {
	Spacing    float64 `yaml:"spacing"`
	MaxAngle   float64 `yaml:"max_angle"` // radians either side of the branch axis
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	MinValue   float64 `yaml:"min_value"`
	MaxValue   float64 `yaml:"max_value"`
	ValueRange float64 `yaml:"value_range"`
	Length     float64 `yaml:"length"`
	Width      float64 `yaml:"width"`
}

// DefaultConfig returns the reference tree: seed 536 on an 800x800 canvas.
func DefaultConfig() Config {
	return Config{
		Seed: 536,
		RNG:  AlgorithmXorwow,
		Canvas: CanvasConfig{
			Width:      800,
			Height:     800,
			Background: "white",
		},
		Tree: TreeConfig{
			X:          400,
			Y:          700,
			Radius:     200,
			Height:     600,
			TrunkWidth: 4,
			TrunkColor: "#4e3c2e",
			Silhouette: SilhouetteLinear,
		},
		Branch: BranchConfig{
			XSpacing: 15,
			YSpacing: 15,
			Length:   50,
		},
		Leaf: LeafConfig{
			Spacing:    0.5,
			MaxAngle:   math.Pi / 4,
			Hue:        80,
			Saturation: 0.7,
			MinValue:   0.1,
			MaxValue:   0.2,
			ValueRange: 0.1,
			Length:     15,
			Width:      1,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every constraint violation joined into one error.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	switch c.RNG {
	case "", AlgorithmXorwow, AlgorithmPCG:
	default:
		bad("rng %q must be %q or %q", c.RNG, AlgorithmXorwow, AlgorithmPCG)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		bad("canvas dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		bad("canvas.background: %w", err)
	}

	if c.Tree.Height <= 0 {
		bad("tree.height must be positive, got %d", c.Tree.Height)
	}
	if c.Tree.Radius < 0 {
		bad("tree.radius must not be negative, got %d", c.Tree.Radius)
	}
	if c.Tree.TrunkWidth <= 0 {
		bad("tree.trunk_width must be positive, got %v", c.Tree.TrunkWidth)
	}
	if _, err := ParseColor(c.Tree.TrunkColor); err != nil {
		bad("tree.trunk_color: %w", err)
	}
	if _, err := lookupSilhouette(c.Tree.Silhouette); err != nil {
		bad("tree.silhouette: %w", err)
	}

	if c.Branch.XSpacing <= 0 || c.Branch.YSpacing <= 0 {
		bad("branch spacing must be positive, got x=%d y=%d", c.Branch.XSpacing, c.Branch.YSpacing)
	}
	if c.Branch.Length < 0 {
		bad("branch.length must not be negative, got %v", c.Branch.Length)
	}

	l := c.Leaf
	if l.Spacing <= 0 {
		bad("leaf.spacing must be positive, got %v", l.Spacing)
	}
	if l.MaxAngle <= 0 || l.MaxAngle > math.Pi {
		bad("leaf.max_angle must be in (0, pi], got %v", l.MaxAngle)
	}
	if l.Hue < 0 || l.Hue >= 360 {
		bad("leaf.hue must be in [0, 360), got %v", l.Hue)
	}
	if !unit(l.Saturation) {
		bad("leaf.saturation must be in [0, 1], got %v", l.Saturation)
	}
	if !unit(l.MinValue) || !unit(l.MaxValue) || l.MinValue >= l.MaxValue {
		bad("leaf value band [%v, %v) must be non-empty inside [0, 1]", l.MinValue, l.MaxValue)
	}
	if l.ValueRange <= 0 || l.MaxValue+l.ValueRange > 1 {
		bad("leaf.value_range must be positive and keep max_value+value_range <= 1, got %v", l.ValueRange)
	}
	if l.Length <= 0 || l.Width <= 0 {
		bad("leaf length and width must be positive, got %v and %v", l.Length, l.Width)
	}

	return errors.Join(errs...)
}

func unit(v float64) bool { return v >= 0 && v <= 1 }
