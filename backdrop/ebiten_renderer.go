package backdrop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/atlas"
)

type queuedSprite struct {
	img        *ebiten.Image
	x, y, w, h float64
	clr        color.RGBA
	flip       Flip
}

// EbitenRenderer is a Renderer drawing into an *ebiten.Image. Consecutive
// sprites sharing an image are submitted as one triangle list.
type EbitenRenderer struct {
	target *ebiten.Image
	state  BatchState
	began  bool
	queue  []queuedSprite

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewEbitenRenderer(target *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{target: target}
}

// SetTarget changes the destination image. Any open batch is flushed first.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	if r.began {
		r.End()
	}
	r.target = target
}

func (r *EbitenRenderer) Begin(state BatchState) {
	if r.began {
		r.End()
	}
	r.state = state
	r.began = true
}

func (r *EbitenRenderer) Draw(tex *atlas.Texture, x, y float64, clr color.RGBA, flip Flip) {
	if tex == nil || tex.Image == nil {
		return
	}
	r.queue = append(r.queue, queuedSprite{
		img:  tex.Image,
		x:    x,
		y:    y,
		w:    float64(tex.Width),
		h:    float64(tex.Height),
		clr:  clr,
		flip: flip,
	})
	if !r.began || r.state.Sort == SortImmediate {
		r.flush()
	}
}

func (r *EbitenRenderer) End() {
	r.flush()
	r.began = false
}

func (r *EbitenRenderer) flush() {
	if r.target == nil {
		r.queue = r.queue[:0]
		return
	}
	// 4 vertices per sprite must stay addressable by uint16 indices
	const maxSprites = 1 << 14

	start := 0
	for start < len(r.queue) {
		end := start + 1
		for end < len(r.queue) && r.queue[end].img == r.queue[start].img && end-start < maxSprites {
			end++
		}
		r.submit(r.queue[start:end])
		start = end
	}
	r.queue = r.queue[:0]
}

func (r *EbitenRenderer) submit(batch []queuedSprite) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]

	img := batch[0].img
	b := img.Bounds()
	for _, s := range batch {
		sx0, sy0 := float32(b.Min.X), float32(b.Min.Y)
		sx1, sy1 := sx0+float32(s.w), sy0+float32(s.h)
		if s.flip&FlipHorizontal != 0 {
			sx0, sx1 = sx1, sx0
		}
		if s.flip&FlipVertical != 0 {
			sy0, sy1 = sy1, sy0
		}

		cr := float32(s.clr.R) / 0xff
		cg := float32(s.clr.G) / 0xff
		cb := float32(s.clr.B) / 0xff
		ca := float32(s.clr.A) / 0xff

		base := uint16(len(r.vertices))
		corners := [4][4]float32{
			{0, 0, sx0, sy0},
			{1, 0, sx1, sy0},
			{0, 1, sx0, sy1},
			{1, 1, sx1, sy1},
		}
		for _, c := range corners {
			dx, dy := r.state.Transform.Apply(s.x+float64(c[0])*s.w, s.y+float64(c[1])*s.h)
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   float32(dx),
				DstY:   float32(dy),
				SrcX:   c[2],
				SrcY:   c[3],
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: ca,
			})
		}
		r.indices = append(r.indices, base, base+1, base+2, base+1, base+3, base+2)
	}

	blend := r.state.Blend.Ebiten()
	if fx := r.state.Effect; fx != nil && fx.Shader() != nil {
		op := &ebiten.DrawTrianglesShaderOptions{
			Uniforms: fx.Uniforms(),
			Blend:    blend,
		}
		op.Images[0] = img
		r.target.DrawTrianglesShader(r.vertices, r.indices, fx.Shader(), op)
		return
	}
	op := &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		Blend:          blend,
		Filter:         r.state.Sampler.Filter,
		Address:        r.state.Sampler.Address,
	}
	r.target.DrawTriangles(r.vertices, r.indices, img, op)
}
