package conifer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forestSeedStride separates per-tree seeds so neighbouring trees differ.
const forestSeedStride = 7919

// ForestConfig returns the configuration of tree i in a forest of count trees:
// bases spread evenly across the canvas, seed offset by i.
func ForestConfig(cfg Config, count, i int) Config {
	c := cfg
	c.Seed = cfg.Seed + int64(i)*forestSeedStride
	c.Tree.X = (i + 1) * cfg.Canvas.Width / (count + 1)
	return c
}

// Forest draws count trees onto dst. Each tree has its own Generator and
// Stream and records into its own Recorder, so trees are generated in
// parallel; the recordings are then replayed onto dst in tree order, which
// keeps the output identical to a sequential pass.
func Forest(ctx context.Context, cfg Config, count int, dst Surface) (Stats, error) {
	if count <= 0 {
		return Stats{}, fmt.Errorf("forest: count must be positive, got %d", count)
	}
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("forest: %w", err)
	}

	recs := make([]*Recorder, count)
	stats := make([]Stats, count)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range count {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec := NewRecorder()
			gen, err := NewGenerator(ForestConfig(cfg, count, i), rec)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			stats[i] = gen.Regenerate()
			recs[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Stats{}, fmt.Errorf("forest: %w", err)
	}

	background, _ := ParseColor(cfg.Canvas.Background)
	dst.Clear(background)
	total := Stats{Seed: cfg.Seed}
	for i, rec := range recs {
		rec.Replay(dst, true)
		total.add(stats[i])
	}
	Logger().Debug("conifer: forest generated", "trees", count, "stats", total)
	return total, nil
}
