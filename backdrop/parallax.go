package backdrop

import (
	"image/color"
	"math"
	"strings"

	"github.com/milk9111/hdparallax/atlas"
	"github.com/milk9111/hdparallax/common"
)

// Reference constants of the gameplay buffer used by the parallax renderer.
// The compositor scales them for high-resolution layers via ScaledConstant.
const (
	ReferenceHalfWidth  = common.BaseWidth / 2
	ReferenceHalfHeight = common.BaseHeight / 2
	ReferenceWidth      = common.BaseWidth
	ReferenceHeight     = common.BaseHeight
)

// Backdrop is one background or foreground layer.
type Backdrop interface {
	Update(scene Scene, dt float64)
	Render(scene Scene, r Renderer)
	IsVisible(scene Scene) bool
	BlendMode() BlendMode
}

// FadeRange fades a layer between two camera-center positions.
type FadeRange struct {
	PositionFrom float64 `json:"position_from"`
	PositionTo   float64 `json:"position_to"`
	From         float64 `json:"from"`
	To           float64 `json:"to"`
}

// Fader is a list of fade ranges; outside every range the layer is opaque.
type Fader []FadeRange

// Value returns the alpha multiplier at pos. Later ranges win where ranges
// overlap.
func (f Fader) Value(pos float64) float64 {
	v := 1.0
	for _, r := range f {
		lo, hi := math.Min(r.PositionFrom, r.PositionTo), math.Max(r.PositionFrom, r.PositionTo)
		if pos < lo || pos > hi {
			continue
		}
		v = common.ClampedMap(pos, r.PositionFrom, r.PositionTo, r.From, r.To)
	}
	return v
}

// Parallax is a static, tiling background layer scrolled relative to the
// camera.
type Parallax struct {
	Texture *atlas.Texture

	X, Y             float64
	ScrollX, ScrollY float64
	SpeedX, SpeedY   float64

	Color color.NRGBA
	Alpha float64
	Blend BlendMode

	LoopX, LoopY bool
	FlipX, FlipY bool
	FadeX, FadeY Fader

	// Visible hides the layer outright when false.
	Visible bool
	// FadeIn eases the layer in and out when its visibility changes.
	FadeIn bool

	Only          []string
	Exclude       []string
	OnlyIfFlag    string
	OnlyIfNotFlag string

	fade float64
}

func NewParallax(tex *atlas.Texture) *Parallax {
	return &Parallax{
		Texture: tex,
		Color:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Alpha:   1,
		LoopX:   true,
		LoopY:   true,
		Visible: true,
		fade:    1,
	}
}

func (p *Parallax) BlendMode() BlendMode { return p.Blend }

// Fade is the current fade-in multiplier.
func (p *Parallax) Fade() float64 { return p.fade }

func (p *Parallax) IsVisible(scene Scene) bool {
	if !p.Visible {
		return false
	}
	if scene == nil {
		return true
	}
	if p.OnlyIfNotFlag != "" && scene.Flag(p.OnlyIfNotFlag) {
		return false
	}
	if p.OnlyIfFlag != "" && !scene.Flag(p.OnlyIfFlag) {
		return false
	}
	room := scene.Room()
	for _, pattern := range p.Exclude {
		if matchRoom(pattern, room) {
			return false
		}
	}
	if len(p.Only) > 0 {
		for _, pattern := range p.Only {
			if matchRoom(pattern, room) {
				return true
			}
		}
		return false
	}
	return true
}

func (p *Parallax) Update(scene Scene, dt float64) {
	p.update(scene, dt, p.IsVisible(scene))
}

func (p *Parallax) update(_ Scene, dt float64, visible bool) {
	p.X += p.SpeedX * dt
	p.Y += p.SpeedY * dt

	target := 0.0
	if visible {
		target = 1
	}
	if p.FadeIn {
		p.fade = common.Approach(p.fade, target, dt)
	} else {
		p.fade = target
	}
}

func (p *Parallax) Render(scene Scene, r Renderer) {
	p.render(scene, r, p)
}

// render draws the layer. self is the outermost backdrop so the reference
// constants can be scaled for high-resolution layers.
func (p *Parallax) render(scene Scene, r Renderer, self Backdrop) {
	tex := p.Texture
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return
	}

	camX, camY := 0.0, 0.0
	if scene != nil {
		camX, camY = scene.CameraPosition()
	}
	camX, camY = math.Floor(camX), math.Floor(camY)
	x := math.Floor(p.X - camX*p.ScrollX)
	y := math.Floor(p.Y - camY*p.ScrollY)

	alpha := p.fade * p.Alpha
	if len(p.FadeX) > 0 {
		alpha *= p.FadeX.Value(camX + ScaledConstant(self, ReferenceHalfWidth))
	}
	if len(p.FadeY) > 0 {
		alpha *= p.FadeY.Value(camY + ScaledConstant(self, ReferenceHalfHeight))
	}
	clr := premultiply(p.Color, alpha)
	if clr.A <= 1 {
		return
	}

	w, h := float64(tex.Width), float64(tex.Height)
	if p.LoopX {
		x = wrapNonPositive(x, w)
	}
	if p.LoopY {
		y = wrapNonPositive(y, h)
	}

	flip := FlipNone
	if p.FlipX {
		flip |= FlipHorizontal
	}
	if p.FlipY {
		flip |= FlipVertical
	}

	maxX := ScaledConstant(self, ReferenceWidth)
	maxY := ScaledConstant(self, ReferenceHeight)
	for tx := x; tx < maxX; tx += w {
		for ty := y; ty < maxY; ty += h {
			r.Draw(tex, tx, ty, clr, flip)
			if !p.LoopY {
				break
			}
		}
		if !p.LoopX {
			break
		}
	}
}

// wrapNonPositive moves v into (-size, 0].
func wrapNonPositive(v, size float64) float64 {
	v = math.Mod(v, size)
	if v > 0 {
		v -= size
	}
	return v
}

func premultiply(c color.NRGBA, alpha float64) color.RGBA {
	a := float64(c.A) / 0xff * math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * a)),
		G: uint8(math.Round(float64(c.G) * a)),
		B: uint8(math.Round(float64(c.B) * a)),
		A: uint8(math.Round(0xff * a)),
	}
}

// matchRoom compares a room name against a pattern; a trailing '*' matches
// any suffix.
func matchRoom(pattern, room string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(room, prefix)
	}
	return pattern == room
}
