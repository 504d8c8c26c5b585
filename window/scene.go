// Package window hosts a conifer tree in an Ebitengine window. The tree is
// regenerated from its seed every frame, so what is on screen is always the
// tree the seed describes.
package window

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/conifer"
)

// Scene owns the generator, the frame's line batch, and the per-frame
// screenshot and script state.
type Scene struct {
	gen   *conifer.Generator
	batch *lineBatch
	debug bool

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// ShowFPS draws an FPS/TPS readout in the top-left corner.
	ShowFPS bool

	screenshotQueue []string
	script          *FrameScript
	pendingSeed     *int64
	quitAfterDraw   bool
	quit            bool

	frames    uint64
	lastStats conifer.Stats
}

// NewScene creates a scene drawing the tree described by cfg.
func NewScene(cfg conifer.Config) (*Scene, error) {
	batch := newLineBatch()
	gen, err := conifer.NewGenerator(cfg, batch)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	return &Scene{
		gen:           gen,
		batch:         batch,
		ScreenshotDir: "screenshots",
	}, nil
}

// Generator returns the scene's generator.
func (s *Scene) Generator() *conifer.Generator { return s.gen }

// Stats returns the stats of the most recent frame.
func (s *Scene) Stats() conifer.Stats { return s.lastStats }

// Frames returns how many frames have been drawn.
func (s *Scene) Frames() uint64 { return s.frames }

// SetDebugMode enables per-frame timing logs at Debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetSeed switches to a new seed starting with the next frame.
func (s *Scene) SetSeed(seed int64) {
	s.pendingSeed = &seed
}

// Quit makes the next Update return ebiten.Termination.
func (s *Scene) Quit() {
	s.quit = true
}

// QuitAfterDraw ends the run once the next frame has been drawn and any
// queued screenshots written.
func (s *Scene) QuitAfterDraw() {
	s.quitAfterDraw = true
}

// SetFrameScript attaches a script stepped once per Update.
func (s *Scene) SetFrameScript(script *FrameScript) {
	s.script = script
}

// Update advances the frame script and applies pending seed changes.
func (s *Scene) Update() error {
	if s.script != nil {
		s.script.step(s)
	}
	if s.pendingSeed != nil {
		s.gen.SetSeed(*s.pendingSeed)
		s.pendingSeed = nil
	}
	if s.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw regenerates the tree onto screen, then overlays and captures.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.batch.begin(screen)
	s.lastStats = s.gen.Regenerate()
	s.batch.flush()
	s.frames++

	if s.debug {
		conifer.Logger().Debug("window: frame",
			"frame", s.frames,
			"lines", s.batch.lines,
			"draw_calls", s.batch.drawCalls,
			"generate", s.lastStats.Elapsed,
			"total", time.Since(t0),
		)
	}

	if s.ShowFPS {
		drawFPS(screen)
	}
	s.flushScreenshots(screen)

	if s.quitAfterDraw {
		s.quit = true
	}
}
