package conifer

import (
	"log/slog"
	"time"
)

// Stats describes one generation pass.
type Stats struct {
	Seed     int64
	Rows     int
	Branches int
	Leaves   int
	Draws    uint64 // values taken from the stream
	Elapsed  time.Duration
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", s.Seed),
		slog.Int("rows", s.Rows),
		slog.Int("branches", s.Branches),
		slog.Int("leaves", s.Leaves),
		slog.Uint64("draws", s.Draws),
		slog.Duration("elapsed", s.Elapsed),
	)
}

// add merges another pass into s, keeping s.Seed.
func (s *Stats) add(o Stats) {
	s.Rows += o.Rows
	s.Branches += o.Branches
	s.Leaves += o.Leaves
	s.Draws += o.Draws
	s.Elapsed += o.Elapsed
}
