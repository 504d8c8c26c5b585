package conifer

import (
	"fmt"
	"math"
	"time"
)

// Generator draws trees onto a Surface from a seeded Stream it owns.
// A Generator is not safe for concurrent use.
type Generator struct {
	cfg        Config
	stream     *Stream
	surface    Surface
	trunk      Color
	background Color
	stats      Stats
}

// NewGenerator validates cfg and binds a generator to surface.
func NewGenerator(cfg Config, surface Surface) (*Generator, error) {
	if surface == nil {
		return nil, fmt.Errorf("new generator: nil surface")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new generator: %w", err)
	}
	stream, err := NewStream(cfg.Seed, cfg.RNG)
	if err != nil {
		return nil, fmt.Errorf("new generator: %w", err)
	}
	// Both colors parsed in Validate.
	trunk, _ := ParseColor(cfg.Tree.TrunkColor)
	background, _ := ParseColor(cfg.Canvas.Background)
	return &Generator{
		cfg:        cfg,
		stream:     stream,
		surface:    surface,
		trunk:      trunk,
		background: background,
	}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Stream returns the generator's random stream.
func (g *Generator) Stream() *Stream { return g.stream }

// Background returns the clear color used by Regenerate.
func (g *Generator) Background() Color { return g.background }

// SetSurface redirects subsequent drawing.
func (g *Generator) SetSurface(s Surface) { g.surface = s }

// SetSeed changes the seed used by the next Regenerate.
func (g *Generator) SetSeed(seed int64) {
	g.cfg.Seed = seed
	g.stream.SetSeed(seed)
}

// Regenerate reseeds the stream, clears the surface and draws the configured
// tree. Reseeding happens first, so every pass, including the first, draws
// the same tree for the same seed.
func (g *Generator) Regenerate() Stats {
	start := time.Now()
	g.stream.Reseed()
	g.stats = Stats{Seed: g.stream.Seed()}
	g.surface.Clear(g.background)
	g.DrawTree(g.cfg.Tree.Radius, g.cfg.Tree.Height)
	g.stats.Draws = g.stream.Draws()
	g.stats.Elapsed = time.Since(start)
	Logger().Debug("conifer: tree generated", "stats", g.stats)
	return g.stats
}

// DrawTree draws the trunk and the branch grid for a tree of the given base
// radius and height, based at the configured tree position. Rows run from the
// apex down to the base; each row spans the silhouette's half-width either
// side of the trunk. Panics on a non-positive height or negative radius.
func (g *Generator) DrawTree(radius, height int) {
	if height <= 0 {
		panic(fmt.Sprintf("conifer: DrawTree height must be positive, got %d", height))
	}
	if radius < 0 {
		panic(fmt.Sprintf("conifer: DrawTree radius must not be negative, got %d", radius))
	}
	if g.cfg.Branch.XSpacing <= 0 || g.cfg.Branch.YSpacing <= 0 {
		panic(fmt.Sprintf("conifer: DrawTree branch spacing must be positive, got x=%d y=%d",
			g.cfg.Branch.XSpacing, g.cfg.Branch.YSpacing))
	}
	tp, err := newTaper(g.cfg.Tree.Silhouette, radius, height)
	if err != nil {
		panic("conifer: " + err.Error())
	}
	baseX, baseY := g.cfg.Tree.X, g.cfg.Tree.Y
	leaf := &g.cfg.Leaf

	g.surface.SetStrokeWidth(g.cfg.Tree.TrunkWidth)
	g.surface.SetStrokeColor(g.trunk)
	g.surface.DrawLine(float64(baseX), float64(baseY), float64(baseX), float64(baseY-height))

	g.surface.SetStrokeWidth(leaf.Width)
	for branchY := baseY - height; branchY <= baseY; branchY += g.cfg.Branch.YSpacing {
		currentRadius := tp.radiusAt(branchY - baseY + height)
		g.stats.Rows++
		for branchX := baseX - currentRadius; branchX <= baseX+currentRadius; branchX += g.cfg.Branch.XSpacing {
			minValue := g.stream.NextDouble(leaf.MinValue, leaf.MaxValue)
			angle := g.stream.NextDouble(math.Pi, 2*math.Pi)
			g.DrawBranch(
				Vec2{X: float64(branchX), Y: float64(branchY)},
				angle,
				g.cfg.Branch.Length,
				minValue,
				minValue+leaf.ValueRange,
			)
			g.stats.Branches++
		}
	}
}

// RowColumns returns the number of branches in each row of a tree, apex
// first, without drawing anything.
func RowColumns(cfg Config, radius, height int) ([]int, error) {
	if height <= 0 || radius < 0 {
		return nil, fmt.Errorf("row columns: invalid tree %dx%d", radius, height)
	}
	if cfg.Branch.XSpacing <= 0 || cfg.Branch.YSpacing <= 0 {
		return nil, fmt.Errorf("row columns: branch spacing must be positive")
	}
	tp, err := newTaper(cfg.Tree.Silhouette, radius, height)
	if err != nil {
		return nil, fmt.Errorf("row columns: %w", err)
	}
	var cols []int
	for depth := 0; depth <= height; depth += cfg.Branch.YSpacing {
		r := tp.radiusAt(depth)
		cols = append(cols, 2*r/cfg.Branch.XSpacing+1)
	}
	return cols, nil
}

// TreeBounds returns a rectangle containing every stroke of the configured
// tree, including leaves reaching past the outermost branch origins.
func TreeBounds(cfg Config) Rect {
	reach := cfg.Branch.Length + cfg.Leaf.Length + cfg.Leaf.Spacing
	r := float64(cfg.Tree.Radius)
	return Rect{
		X:      float64(cfg.Tree.X) - r - reach,
		Y:      float64(cfg.Tree.Y-cfg.Tree.Height) - reach,
		Width:  2 * (r + reach),
		Height: float64(cfg.Tree.Height) + 2*reach,
	}
}
