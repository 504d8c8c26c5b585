// Command xmastree draws a procedural conifer. By default it renders the
// reference tree (seed 536) to tree.png and exits; -window opens a live
// window instead.
//
//	xmastree -out tree.svg
//	xmastree -seed 7 -config tree.yaml -out trees/seven.png
//	xmastree -forest 5 -out forest.png
//	xmastree -window -shot
//	xmastree -window -script frames.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phanxgames/conifer"
	"github.com/phanxgames/conifer/raster"
	"github.com/phanxgames/conifer/svgcanvas"
	"github.com/phanxgames/conifer/window"
)

var (
	configFlag   = flag.String("config", "", "YAML config file overlaid on the defaults")
	seedFlag     = flag.Int64("seed", 0, "override the configured seed")
	rngFlag      = flag.String("rng", "", "override the generator: xorwow or pcg")
	outFlag      = flag.String("out", "tree.png", "output file; .png or .svg")
	forestFlag   = flag.Int("forest", 0, "draw this many trees side by side")
	windowFlag   = flag.Bool("window", false, "open a window that redraws every frame")
	shotFlag     = flag.Bool("shot", false, "with -window: write one screenshot and exit")
	scriptFlag   = flag.String("script", "", "with -window: JSON frame script")
	fpsFlag      = flag.Bool("fps", false, "with -window: show FPS")
	logLevelFlag = flag.String("log-level", "info", "debug, info, warn or error")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "xmastree: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevelFlag)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	conifer.SetLogger(logger)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if *windowFlag {
		return runWindow(cfg, level <= slog.LevelDebug)
	}
	return renderFile(cfg, *outFlag)
}

func loadConfig() (conifer.Config, error) {
	cfg := conifer.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = conifer.LoadConfig(*configFlag); err != nil {
			return cfg, err
		}
	}
	cfg = applyOverrides(cfg, setFlags())
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// setFlags reports which flags were given on the command line, so that
// explicit zero values still override the config.
func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func applyOverrides(cfg conifer.Config, set map[string]bool) conifer.Config {
	if set["seed"] {
		cfg.Seed = *seedFlag
	}
	if set["rng"] {
		cfg.RNG = *rngFlag
	}
	return cfg
}

func renderFile(cfg conifer.Config, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return renderPNG(cfg, path)
	case ".svg":
		return renderSVG(cfg, path)
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

func renderPNG(cfg conifer.Config, path string) error {
	canvas := raster.New(cfg.Canvas.Width, cfg.Canvas.Height)
	defer canvas.Close()
	stats, err := draw(cfg, canvas)
	if err != nil {
		return err
	}
	if err := canvas.SavePNG(path); err != nil {
		return err
	}
	slog.Info("tree rendered", "out", path, "stats", stats)
	return nil
}

func renderSVG(cfg conifer.Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	canvas := svgcanvas.New(f, cfg.Canvas.Width, cfg.Canvas.Height, fmt.Sprintf("conifer seed %d", cfg.Seed))
	stats, err := draw(cfg, canvas)
	if err != nil {
		f.Close()
		return err
	}
	if err := canvas.Close(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	slog.Info("tree rendered", "out", path, "stats", stats)
	return nil
}

// draw renders one tree, or a forest when -forest is set.
func draw(cfg conifer.Config, s conifer.Surface) (conifer.Stats, error) {
	if *forestFlag > 0 {
		return conifer.Forest(context.Background(), cfg, *forestFlag, s)
	}
	gen, err := conifer.NewGenerator(cfg, s)
	if err != nil {
		return conifer.Stats{}, err
	}
	return gen.Regenerate(), nil
}

func runWindow(cfg conifer.Config, debug bool) error {
	scene, err := window.NewScene(cfg)
	if err != nil {
		return err
	}
	scene.SetDebugMode(debug)
	if *scriptFlag != "" {
		data, err := os.ReadFile(*scriptFlag)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := window.LoadFrameScript(data)
		if err != nil {
			return err
		}
		scene.SetFrameScript(script)
	}
	return window.Run(scene, window.RunConfig{
		Title:             fmt.Sprintf("conifer — seed %d", cfg.Seed),
		Width:             cfg.Canvas.Width,
		Height:            cfg.Canvas.Height,
		ShowFPS:           *fpsFlag,
		ScreenshotAndExit: *shotFlag,
	})
}
