package window

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/conifer"
)

// maxBatchQuads bounds one DrawTriangles32 submission.
const maxBatchQuads = 16384

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// ensureWhiteImage lazily creates the solid source texture. Sampling the
// interior of a 3x3 image avoids bleeding at the edges.
func ensureWhiteImage() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(conifer.ColorWhite.NRGBA())
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// lineBatch is a conifer.Surface that turns each segment into a quad and
// submits them in large DrawTriangles32 calls.
type lineBatch struct {
	target *ebiten.Image
	color  color32
	width  float32

	verts []ebiten.Vertex
	inds  []uint32

	lines     int
	drawCalls int
}

// color32 is a premultiplied RGBA color for vertices.
type color32 struct {
	R, G, B, A float32
}

func premultiply(c conifer.Color) color32 {
	a := float32(c.A)
	return color32{float32(c.R) * a, float32(c.G) * a, float32(c.B) * a, a}
}

var _ conifer.Surface = (*lineBatch)(nil)

func newLineBatch() *lineBatch {
	return &lineBatch{
		color: color32{0, 0, 0, 1},
		width: 1,
		verts: make([]ebiten.Vertex, 0, 4*1024),
		inds:  make([]uint32, 0, 6*1024),
	}
}

// begin points the batch at a new frame target and resets counters.
func (b *lineBatch) begin(target *ebiten.Image) {
	b.target = target
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	b.lines = 0
	b.drawCalls = 0
}

func (b *lineBatch) Clear(c conifer.Color) {
	b.flush()
	if b.target != nil {
		b.target.Fill(c.NRGBA())
	}
}

func (b *lineBatch) SetStrokeColor(c conifer.Color) {
	b.color = premultiply(c)
}

func (b *lineBatch) SetStrokeWidth(w float64) {
	b.width = float32(w)
}

func (b *lineBatch) DrawLine(x0, y0, x1, y1 float64) {
	if !appendLineQuad(&b.verts, &b.inds, float32(x0), float32(y0), float32(x1), float32(y1), b.width, b.color) {
		return
	}
	b.lines++
	if len(b.verts) >= 4*maxBatchQuads {
		b.flush()
	}
}

// flush submits accumulated quads as a single DrawTriangles32 call.
func (b *lineBatch) flush() {
	if len(b.verts) == 0 || b.target == nil {
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	b.target.DrawTriangles32(b.verts, b.inds, ensureWhiteImage(), &op)
	b.drawCalls++
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// appendLineQuad appends 4 vertices and 6 indices for a segment of the given
// width. Zero-length segments are skipped and report false.
func appendLineQuad(verts *[]ebiten.Vertex, inds *[]uint32, x0, y0, x1, y1, width float32, c color32) bool {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return false
	}
	// Half-width normal.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	base := uint32(len(*verts))
	px := [4]float32{x0 + nx, x1 + nx, x0 - nx, x1 - nx}
	py := [4]float32{y0 + ny, y1 + ny, y0 - ny, y1 - ny}
	for i := 0; i < 4; i++ {
		*verts = append(*verts, ebiten.Vertex{
			DstX:   px[i],
			DstY:   py[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: c.R,
			ColorG: c.G,
			ColorB: c.B,
			ColorA: c.A,
		})
	}
	// Two triangles: 0-1-2, 1-3-2
	*inds = append(*inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	return true
}
