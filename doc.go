// Package conifer procedurally draws a stylized coniferous tree: a trunk and
// a cone of branches, each branch packed with short colored leaf strokes.
//
// Every random choice comes from a seeded [Stream] owned by a [Generator], and
// the stream is reset before each pass, so the same seed always yields the
// same sequence of draw commands.
//
// # Quick start
//
//	cfg := conifer.DefaultConfig()
//	rec := conifer.NewRecorder()
//	gen, err := conifer.NewGenerator(cfg, rec)
//	if err != nil {
//		log.Fatal(err)
//	}
//	stats := gen.Regenerate()
//
// A [Generator] draws onto any [Surface]. Ready-made surfaces:
//
//   - [Recorder]: in-memory command list, replayable onto another surface
//   - raster.Canvas: software rasterizer with PNG output (gogpu/gg)
//   - svgcanvas.Canvas: streaming SVG (svgo)
//
// window.Scene is a host rather than a surface: it owns a Generator drawing
// into an Ebitengine window and regenerates the tree every frame.
//
// # Generation order
//
// Rows run from the apex down to the base, columns left to right. Each branch
// draws its minimum brightness, then its axis angle; each leaf step draws a
// deviation angle, then a brightness. Reordering any of these draws changes
// the image.
//
// # Configuration
//
// [DefaultConfig] reproduces the reference tree (seed 536, 800x800 canvas).
// [LoadConfig] overlays a YAML file on the defaults:
//
//	seed: 42
//	rng: pcg
//	tree:
//	  silhouette: out-sine
//	leaf:
//	  hue: 140
//
// # Logging
//
// Nothing is logged until [SetLogger] installs a [log/slog] logger.
package conifer
