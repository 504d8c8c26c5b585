// Package raster draws conifer trees with the gg software rasterizer and
// writes them as PNG.
package raster

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/phanxgames/conifer"
)

// Canvas is a conifer.Surface backed by a gg.Context. Drawing errors are
// sticky: the first one is kept and returned by Err.
type Canvas struct {
	dc  *gg.Context
	err error
}

var _ conifer.Surface = (*Canvas)(nil)

// New creates a width x height canvas, transparent until cleared.
func New(width, height int) *Canvas {
	dc := gg.NewContext(width, height)
	dc.SetLineCap(gg.LineCapButt)
	return &Canvas{dc: dc}
}

// Context exposes the underlying gg context for extra drawing.
func (c *Canvas) Context() *gg.Context { return c.dc }

func (c *Canvas) Clear(col conifer.Color) {
	c.dc.ClearWithColor(toRGBA(col))
}

func (c *Canvas) SetStrokeColor(col conifer.Color) {
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
}

func (c *Canvas) SetStrokeWidth(w float64) {
	c.dc.SetLineWidth(w)
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 float64) {
	c.dc.DrawLine(x0, y0, x1, y1)
	if err := c.dc.Stroke(); err != nil && c.err == nil {
		c.err = fmt.Errorf("stroke (%.1f,%.1f)-(%.1f,%.1f): %w", x0, y0, x1, y1, err)
	}
}

// Err returns the first drawing error, if any.
func (c *Canvas) Err() error { return c.err }

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	return c.dc.EncodePNG(w)
}

// SavePNG writes the canvas to path, creating parent directories.
func (c *Canvas) SavePNG(path string) error {
	if c.err != nil {
		return c.err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	conifer.Logger().Info("raster: image written", "path", path)
	return nil
}

// Close releases the context.
func (c *Canvas) Close() error { return c.dc.Close() }

// Render draws the configured tree on a fresh canvas sized from cfg.Canvas.
func Render(cfg conifer.Config) (*Canvas, conifer.Stats, error) {
	c := New(cfg.Canvas.Width, cfg.Canvas.Height)
	gen, err := conifer.NewGenerator(cfg, c)
	if err != nil {
		return nil, conifer.Stats{}, fmt.Errorf("render: %w", err)
	}
	stats := gen.Regenerate()
	if err := c.Err(); err != nil {
		return nil, stats, fmt.Errorf("render: %w", err)
	}
	return c, stats, nil
}

// WritePNG encodes img to path through gg, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	dc := gg.NewContextForImage(img)
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

func toRGBA(c conifer.Color) gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
