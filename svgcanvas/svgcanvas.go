// Package svgcanvas streams conifer trees as SVG line art.
package svgcanvas

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/phanxgames/conifer"
)

// Precision is the number of SVG units per pixel. svgo takes integer
// coordinates, so geometry is scaled up and a group transform scales it back.
const Precision = 10

// Canvas is a conifer.Surface writing SVG elements as commands arrive.
// Call Close to finish the document.
type Canvas struct {
	doc    *svg.SVG
	out    *errWriter
	width  int
	height int
	stroke string
	lineW  float64
	closed bool
}

var _ conifer.Surface = (*Canvas)(nil)

// New starts a width x height SVG document on w.
func New(w io.Writer, width, height int, title string) *Canvas {
	out := &errWriter{w: w}
	doc := svg.New(out)
	doc.Start(width, height)
	if title != "" {
		doc.Title(title)
	}
	doc.Gtransform(fmt.Sprintf("scale(%g)", 1.0/Precision))
	return &Canvas{
		doc:    doc,
		out:    out,
		width:  width,
		height: height,
		stroke: "#000000",
		lineW:  1,
	}
}

func (c *Canvas) Clear(col conifer.Color) {
	c.doc.Rect(0, 0, c.width*Precision, c.height*Precision,
		fmt.Sprintf("fill:%s;fill-opacity:%.3f", col.Hex(), col.A))
}

func (c *Canvas) SetStrokeColor(col conifer.Color) {
	c.stroke = col.Hex()
}

func (c *Canvas) SetStrokeWidth(w float64) {
	c.lineW = w
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 float64) {
	c.doc.Line(scaled(x0), scaled(y0), scaled(x1), scaled(y1),
		fmt.Sprintf("stroke:%s;stroke-width:%g", c.stroke, c.lineW*Precision))
}

// Close ends the document and returns the first write error.
func (c *Canvas) Close() error {
	if !c.closed {
		c.closed = true
		c.doc.Gend()
		c.doc.End()
	}
	return c.out.err
}

// Err returns the first write error.
func (c *Canvas) Err() error { return c.out.err }

// Render writes the configured tree to w as a complete SVG document.
func Render(w io.Writer, cfg conifer.Config) (conifer.Stats, error) {
	c := New(w, cfg.Canvas.Width, cfg.Canvas.Height, fmt.Sprintf("conifer seed %d", cfg.Seed))
	gen, err := conifer.NewGenerator(cfg, c)
	if err != nil {
		return conifer.Stats{}, fmt.Errorf("render svg: %w", err)
	}
	stats := gen.Regenerate()
	if err := c.Close(); err != nil {
		return stats, fmt.Errorf("render svg: %w", err)
	}
	return stats, nil
}

func scaled(v float64) int {
	return int(math.Round(v * Precision))
}

// errWriter keeps the first error; svgo does not report write failures.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
