package backdrop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/atlas"
)

type SortMode int

const (
	// SortDeferred queues draws until End.
	SortDeferred SortMode = iota
	// SortImmediate issues every draw as it arrives.
	SortImmediate
)

type BlendMode int

const (
	BlendAlpha BlendMode = iota
	BlendAdditive
)

// Ebiten returns the ebiten blend for b.
func (b BlendMode) Ebiten() ebiten.Blend {
	if b == BlendAdditive {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// ParseBlendMode maps level data names onto blend modes. Unknown names fall
// back to alpha blending.
func ParseBlendMode(s string) BlendMode {
	if s == "additive" {
		return BlendAdditive
	}
	return BlendAlpha
}

// Sampler selects texture filtering and addressing.
type Sampler struct {
	Filter  ebiten.Filter
	Address ebiten.Address
}

// PointWrap samples the nearest texel and repeats outside the texture.
var PointWrap = Sampler{Filter: ebiten.FilterNearest, Address: ebiten.AddressRepeat}

// BatchState configures one Begin/End batch. Depth testing and face culling
// do not exist in ebiten's 2D pipeline, so they have no fields here.
type BatchState struct {
	Sort      SortMode
	Blend     BlendMode
	Sampler   Sampler
	Effect    Effect
	Transform ebiten.GeoM
}

type Flip int

const FlipNone Flip = 0

const (
	FlipHorizontal Flip = 1 << iota
	FlipVertical
)

// Renderer is the sprite-batch primitive backdrops draw through.
type Renderer interface {
	Begin(state BatchState)
	// Draw queues tex with its top-left at (x, y) in batch space. clr is
	// premultiplied.
	Draw(tex *atlas.Texture, x, y float64, clr color.RGBA, flip Flip)
	End()
}
