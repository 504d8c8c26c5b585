package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/conifer"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	ShowFPS bool

	// ScreenshotAndExit draws a single frame, writes it to the scene's
	// ScreenshotDir under ScreenshotLabel, and closes the window.
	ScreenshotAndExit bool
	ScreenshotLabel   string
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	width, height int
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(_, _ int) (int, int) { return g.width, g.height }

// Run opens a window and runs the scene until the window is closed, the
// scene quits, or a frame script ends with quit.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		canvas := scene.gen.Config().Canvas
		cfg.Width, cfg.Height = canvas.Width, canvas.Height
	}
	if cfg.Title == "" {
		cfg.Title = "conifer"
	}
	scene.ShowFPS = cfg.ShowFPS
	if cfg.ScreenshotAndExit {
		label := cfg.ScreenshotLabel
		if label == "" {
			label = fmt.Sprintf("seed-%d", scene.gen.Config().Seed)
		}
		scene.Screenshot(label)
		scene.QuitAfterDraw()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetScreenClearedEveryFrame(false)

	conifer.Logger().Info("window: running", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	err := ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	conifer.Logger().Info("window: closed", "frames", scene.Frames())
	return nil
}
