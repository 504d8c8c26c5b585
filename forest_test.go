package conifer

import (
	"context"
	"slices"
	"testing"
)

func TestForestConfig(t *testing.T) {
	cfg := DefaultConfig()
	for i, wantX := range []int{200, 400, 600} {
		c := ForestConfig(cfg, 3, i)
		if c.Tree.X != wantX {
			t.Errorf("tree %d X = %d, want %d", i, c.Tree.X, wantX)
		}
		if want := cfg.Seed + int64(i)*forestSeedStride; c.Seed != want {
			t.Errorf("tree %d seed = %d, want %d", i, c.Seed, want)
		}
	}
}

func TestForestMatchesSequentialPass(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tree.Radius = 60
	cfg.Tree.Height = 120
	const count = 4

	got := NewRecorder()
	stats, err := Forest(context.Background(), cfg, count, got)
	if err != nil {
		t.Fatalf("Forest: %v", err)
	}

	want := NewRecorder()
	want.Clear(ColorWhite)
	var wantBranches int
	for i := range count {
		rec := NewRecorder()
		gen, err := NewGenerator(ForestConfig(cfg, count, i), rec)
		if err != nil {
			t.Fatal(err)
		}
		wantBranches += gen.Regenerate().Branches
		rec.Replay(want, true)
	}

	if !slices.Equal(got.Commands(), want.Commands()) {
		t.Error("forest output differs from a sequential pass")
	}
	if stats.Branches != wantBranches {
		t.Errorf("stats.Branches = %d, want %d", stats.Branches, wantBranches)
	}
}

func TestForestErrors(t *testing.T) {
	if _, err := Forest(context.Background(), DefaultConfig(), 0, NewRecorder()); err == nil {
		t.Error("expected error for zero trees")
	}
	cfg := DefaultConfig()
	cfg.Leaf.Spacing = 0
	if _, err := Forest(context.Background(), cfg, 2, NewRecorder()); err == nil {
		t.Error("expected error for invalid config")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Forest(ctx, DefaultConfig(), 2, NewRecorder()); err == nil {
		t.Error("expected error for cancelled context")
	}
}
