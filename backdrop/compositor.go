package backdrop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/common"
)

// ScaledConstant corrects one of the parallax reference constants for the
// layer being drawn. Animated backdrops are authored at HDScale times the
// reference resolution; every other layer keeps the constant unchanged.
func ScaledConstant(layer Backdrop, c float64) float64 {
	if _, ok := layer.(*AnimatedBackdrop); ok {
		return c * common.HDScale
	}
	return c
}

// Compositor draws animated backdrops straight to the screen in place of the
// default backdrop pass.
type Compositor struct {
	renderer Renderer
	assists  Assists
	grade    Effect
}

// NewCompositor returns a compositor drawing through r. assists and grade may
// be nil.
func NewCompositor(r Renderer, assists Assists, grade Effect) *Compositor {
	return &Compositor{renderer: r, assists: assists, grade: grade}
}

// RenderPass draws every animated backdrop in layers, in order. Other layers
// are left to the default pass.
func (c *Compositor) RenderPass(scene Scene, layers []Backdrop, foreground bool) {
	for _, layer := range layers {
		a, ok := layer.(*AnimatedBackdrop)
		if !ok {
			continue
		}
		// the gameplay buffer must not paint over the high-resolution layer
		scene.SetBackgroundColor(color.Transparent)
		c.Draw(scene, a)
	}
	if common.DebugEnabled() {
		pass := "background"
		if foreground {
			pass = "foreground"
		}
		common.Debugf(logTag, "%s pass over %d layers", pass, len(layers))
	}
}

// Draw issues one batch for a using the screen transform, point-wrap
// sampling and the color grade.
func (c *Compositor) Draw(scene Scene, a *AnimatedBackdrop) {
	if a == nil {
		return
	}
	c.renderer.Begin(BatchState{
		Sort:      SortDeferred,
		Blend:     a.Blend,
		Sampler:   PointWrap,
		Effect:    c.grade,
		Transform: c.Transform(scene),
	})
	a.Parallax.render(scene, c.renderer, a)
	c.renderer.End()
}

// Transform is the screen matrix, mirrored horizontally when mirror mode is
// on.
func (c *Compositor) Transform(scene Scene) ebiten.GeoM {
	m := scene.ScreenMatrix()
	if c.assists != nil && c.assists.MirrorMode() {
		w, _ := scene.ViewportSize()
		m.Translate(-float64(w), 0)
		m.Scale(-1, 1)
	}
	return m
}
