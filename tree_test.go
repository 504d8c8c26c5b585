package conifer

import (
	"math"
	"slices"
	"testing"
)

func TestRegenerateDeterministic(t *testing.T) {
	for _, algo := range []string{AlgorithmXorwow, AlgorithmPCG} {
		t.Run(algo, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RNG = algo

			recA, recB := NewRecorder(), NewRecorder()
			genA, err := NewGenerator(cfg, recA)
			if err != nil {
				t.Fatal(err)
			}
			genB, err := NewGenerator(cfg, recB)
			if err != nil {
				t.Fatal(err)
			}
			genA.Regenerate()
			genB.Regenerate()
			if !slices.Equal(recA.Commands(), recB.Commands()) {
				t.Fatal("two generators with the same seed emitted different commands")
			}

			// A second pass on the same generator repeats the first.
			first := slices.Clone(recA.Commands())
			recA.Reset()
			genA.Regenerate()
			if !slices.Equal(first, recA.Commands()) {
				t.Fatal("second Regenerate differs from the first")
			}
		})
	}
}

func TestRegenerateSeedChangesOutput(t *testing.T) {
	gen, rec := newTestGenerator(t)
	gen.Regenerate()
	first := slices.Clone(rec.Commands())

	rec.Reset()
	gen.SetSeed(537)
	gen.Regenerate()
	if slices.Equal(first, rec.Commands()) {
		t.Error("seed 537 drew the same tree as seed 536")
	}
	if gen.Config().Seed != 537 {
		t.Errorf("Config().Seed = %d, want 537", gen.Config().Seed)
	}
}

func TestRegenerateReferenceScenario(t *testing.T) {
	gen, rec := newTestGenerator(t)
	stats := gen.Regenerate()

	cols, err := RowColumns(gen.Config(), 200, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 41 {
		t.Errorf("rows = %d, want 41", len(cols))
	}
	if cols[0] != 1 {
		t.Errorf("apex row columns = %d, want 1", cols[0])
	}
	if last := cols[len(cols)-1]; last != 27 {
		t.Errorf("base row columns = %d, want 27", last)
	}

	var total int
	for _, c := range cols {
		total += c
	}
	if stats.Rows != 41 {
		t.Errorf("stats.Rows = %d, want 41", stats.Rows)
	}
	if stats.Branches != total || total != 574 {
		t.Errorf("stats.Branches = %d, RowColumns total = %d, want 574", stats.Branches, total)
	}
	if stats.Seed != 536 {
		t.Errorf("stats.Seed = %d, want 536", stats.Seed)
	}
	// Two draws per branch plus two per leaf and two discarded per branch.
	wantDraws := uint64(2*stats.Branches + 2*stats.Leaves + 2*stats.Branches)
	if stats.Draws != wantDraws {
		t.Errorf("stats.Draws = %d, want %d", stats.Draws, wantDraws)
	}
	// Trunk plus leaves.
	if n := len(rec.Segments()); n != stats.Leaves+1 {
		t.Errorf("segments = %d, want %d", n, stats.Leaves+1)
	}
}

func TestRegenerateCommandPrologue(t *testing.T) {
	gen, rec := newTestGenerator(t)
	gen.Regenerate()
	cmds := rec.Commands()
	if len(cmds) < 5 {
		t.Fatalf("commands = %d, want more", len(cmds))
	}
	trunk, _ := ParseColor("#4e3c2e")
	want := []Command{
		{Type: CommandClear, Color: ColorWhite},
		{Type: CommandStrokeWidth, Width: 4},
		{Type: CommandStrokeColor, Color: trunk},
		{Type: CommandLine, From: Vec2{400, 700}, To: Vec2{400, 100}},
		{Type: CommandStrokeWidth, Width: 1},
	}
	for i, w := range want {
		if cmds[i] != w {
			t.Errorf("command %d = %+v, want %+v", i, cmds[i], w)
		}
	}
}

func TestRegenerateLeafColors(t *testing.T) {
	gen, rec := newTestGenerator(t)
	gen.Regenerate()
	leaf := gen.Config().Leaf
	lo, hi := leaf.MinValue, leaf.MaxValue+leaf.ValueRange
	for i, s := range rec.Segments()[1:] {
		v := math.Max(s.Color.R, math.Max(s.Color.G, s.Color.B))
		if v < lo-1e-9 || v >= hi+1e-9 {
			t.Fatalf("leaf %d value = %v, outside [%v, %v)", i, v, lo, hi)
		}
		if s.Width != leaf.Width {
			t.Fatalf("leaf %d width = %v, want %v", i, s.Width, leaf.Width)
		}
	}
}

func TestRegenerateWithinBounds(t *testing.T) {
	gen, rec := newTestGenerator(t)
	gen.Regenerate()
	b := TreeBounds(gen.Config())
	for i, s := range rec.Segments() {
		if !b.Contains(s.From.X, s.From.Y) || !b.Contains(s.To.X, s.To.Y) {
			t.Fatalf("segment %d %v-%v outside bounds %+v", i, s.From, s.To, b)
		}
	}
}

// branchTracker groups leaf strokes by branch. Inside a branch consecutive
// leaves are two draws apart; a new branch starts after any other gap.
type branchTracker struct {
	stream   *Stream
	color    Color
	lines    int
	last     uint64
	branches []trackedBranch
}

type trackedBranch struct {
	startDraws uint64 // stream draws before the branch's minValue
	leaves     []Segment
}

func (b *branchTracker) Clear(Color) {}

func (b *branchTracker) SetStrokeWidth(float64) {}

func (b *branchTracker) SetStrokeColor(c Color) { b.color = c }

func (b *branchTracker) DrawLine(x0, y0, x1, y1 float64) {
	b.lines++
	draws := b.stream.Draws()
	defer func() { b.last = draws }()
	if b.lines == 1 {
		return // trunk
	}
	if len(b.branches) == 0 || draws-b.last != 2 {
		// minValue, axis angle, first leaf angle, first leaf value.
		b.branches = append(b.branches, trackedBranch{startDraws: draws - 4})
	}
	cur := &b.branches[len(b.branches)-1]
	cur.leaves = append(cur.leaves, Segment{
		From:  Vec2{x0, y0},
		To:    Vec2{x1, y1},
		Color: b.color,
	})
}

func newTrackedGenerator(t *testing.T, cfg Config) (*Generator, *branchTracker) {
	t.Helper()
	tr := &branchTracker{}
	gen, err := NewGenerator(cfg, tr)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	tr.stream = gen.Stream()
	return gen, tr
}

func leafValue(c Color) float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

func TestDrawTreeBranchOrigins(t *testing.T) {
	gen, tr := newTrackedGenerator(t, DefaultConfig())
	gen.DrawTree(30, 30)
	// Rows at depth 0, 15, 30 with radius 0, 15, 30: 1 + 3 + 5 branches.
	want := []Vec2{
		{400, 670},
		{385, 685}, {400, 685}, {415, 685},
		{370, 700}, {385, 700}, {400, 700}, {415, 700}, {430, 700},
	}
	if got := gen.stats.Branches; got != len(want) {
		t.Errorf("branches = %d, want %d", got, len(want))
	}
	if len(tr.branches) != len(want) {
		t.Fatalf("tracked branches = %d, want %d", len(tr.branches), len(want))
	}
	leaves := 0
	for i, b := range tr.branches {
		if got := b.leaves[0].From; got != want[i] {
			t.Errorf("branch %d starts at %v, want %v", i, got, want[i])
		}
		leaves += len(b.leaves)
	}
	if leaves != gen.stats.Leaves {
		t.Errorf("tracked leaves = %d, want %d", leaves, gen.stats.Leaves)
	}
}

func TestRegenerateBranchValueBands(t *testing.T) {
	gen, tr := newTrackedGenerator(t, DefaultConfig())
	stats := gen.Regenerate()
	if len(tr.branches) != stats.Branches {
		t.Fatalf("tracked branches = %d, want %d", len(tr.branches), stats.Branches)
	}
	leaf := gen.Config().Leaf

	// Replay the stream to recover each branch's minValue.
	replay, err := NewStream(gen.Config().Seed, gen.Config().RNG)
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range tr.branches {
		for replay.Draws() < b.startDraws {
			replay.NextDouble(0, 1)
		}
		minValue := replay.NextDouble(leaf.MinValue, leaf.MaxValue)
		if minValue < leaf.MinValue || minValue >= leaf.MaxValue {
			t.Fatalf("branch %d minValue = %v, outside [%v, %v)", i, minValue, leaf.MinValue, leaf.MaxValue)
		}
		hi := minValue + leaf.ValueRange
		for j, s := range b.leaves {
			if v := leafValue(s.Color); v < minValue-1e-9 || v >= hi+1e-9 {
				t.Fatalf("branch %d leaf %d value = %v, outside [%v, %v)", i, j, v, minValue, hi)
			}
		}
	}
}

func TestRegenerateSeedHighBits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tree.Radius = 30
	cfg.Tree.Height = 60
	render := func(seed int64) []Command {
		c := cfg
		c.Seed = seed
		rec := NewRecorder()
		gen, err := NewGenerator(c, rec)
		if err != nil {
			t.Fatal(err)
		}
		gen.Regenerate()
		return rec.Commands()
	}
	if slices.Equal(render(536), render(536+1<<32)) {
		t.Error("seeds 536 and 536+2^32 drew the same tree")
	}
}

func TestDrawTreePreconditions(t *testing.T) {
	tests := []struct {
		name           string
		radius, height int
	}{
		{"zero height", 100, 0},
		{"negative height", 100, -5},
		{"negative radius", -1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, _ := newTestGenerator(t)
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			gen.DrawTree(tt.radius, tt.height)
		})
	}
}

func TestDrawTreeZeroSpacingPanics(t *testing.T) {
	gen, _ := newTestGenerator(t)
	gen.cfg.Branch.YSpacing = 0
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	gen.DrawTree(100, 100)
}

func TestDrawTreeZeroRadius(t *testing.T) {
	gen, _ := newTestGenerator(t)
	gen.DrawTree(0, 600)
	if gen.stats.Branches != 41 {
		t.Errorf("branches = %d, want one per row (41)", gen.stats.Branches)
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	if _, err := NewGenerator(DefaultConfig(), nil); err == nil {
		t.Error("expected error for nil surface")
	}
	cfg := DefaultConfig()
	cfg.Branch.XSpacing = 0
	if _, err := NewGenerator(cfg, NewRecorder()); err == nil {
		t.Error("expected error for zero spacing")
	}
}

func TestRowColumnsSilhouettes(t *testing.T) {
	for _, name := range Silhouettes() {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Tree.Silhouette = name
			cols, err := RowColumns(cfg, 200, 600)
			if err != nil {
				t.Fatal(err)
			}
			if cols[0] != 1 {
				t.Errorf("apex columns = %d, want 1", cols[0])
			}
			if last := cols[len(cols)-1]; last != 27 {
				t.Errorf("base columns = %d, want 27", last)
			}
		})
	}
}

func TestRowColumnsErrors(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := RowColumns(cfg, 10, 0); err == nil {
		t.Error("expected error for zero height")
	}
	cfg.Tree.Silhouette = "spiral"
	if _, err := RowColumns(cfg, 10, 10); err == nil {
		t.Error("expected error for unknown silhouette")
	}
}

func BenchmarkRegenerate(b *testing.B) {
	rec := NewRecorder()
	gen, err := NewGenerator(DefaultConfig(), rec)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		rec.Reset()
		gen.Regenerate()
	}
}
