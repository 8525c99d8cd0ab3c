package grade

import (
	_ "embed"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed grade.kage
var source []byte

// Params are the grade's tunables. The zero Tint is treated as white.
type Params struct {
	Saturation float64     `yaml:"saturation"`
	Contrast   float64     `yaml:"contrast"`
	Tint       color.NRGBA `yaml:"-"`
}

func DefaultParams() Params {
	return Params{
		Saturation: 1,
		Contrast:   1,
		Tint:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Uniforms returns the shader uniforms for p.
func (p Params) Uniforms() map[string]any {
	tint := p.Tint
	if tint == (color.NRGBA{}) {
		tint = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return map[string]any{
		"Saturation": float32(p.Saturation),
		"Contrast":   float32(p.Contrast),
		"Tint": []float32{
			float32(tint.R) / 0xff,
			float32(tint.G) / 0xff,
			float32(tint.B) / 0xff,
			float32(tint.A) / 0xff,
		},
	}
}

// Grade is a color grade applied to high-resolution backdrops as they are
// drawn. It samples with nearest-texel lookups and wraps outside the source.
type Grade struct {
	Params Params
	shader *ebiten.Shader
}

// New compiles the grade shader.
func New(p Params) (*Grade, error) {
	s, err := ebiten.NewShader(source)
	if err != nil {
		return nil, fmt.Errorf("compile grade shader: %w", err)
	}
	return &Grade{Params: p, shader: s}, nil
}

func (g *Grade) Shader() *ebiten.Shader {
	if g == nil {
		return nil
	}
	return g.shader
}

func (g *Grade) Uniforms() map[string]any {
	if g == nil {
		return nil
	}
	return g.Params.Uniforms()
}

// Source is the Kage source of the grade shader.
func Source() []byte {
	return append([]byte(nil), source...)
}
