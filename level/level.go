package level

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/atlas"
	"github.com/milk9111/hdparallax/backdrop"
	"github.com/milk9111/hdparallax/common"
	"github.com/milk9111/hdparallax/meta"
)

const logTag = "Level"

// Level owns the stylegrounds of one room and acts as their Scene.
type Level struct {
	Room        string
	Backgrounds []backdrop.Backdrop
	Foregrounds []backdrop.Backdrop

	camera           *Camera
	targetX, targetY float64
	flags            map[string]bool

	baseColor color.Color
	bgColor   color.Color

	screen       ebiten.GeoM
	viewW, viewH int

	buffer *ebiten.Image
}

// NewBackdrop builds the layer for s. Textures under the animated namespace
// become AnimatedBackdrops; if one cannot be configured the error is logged
// and a static Parallax is used instead. It returns nil when the texture is
// missing from textures.
func NewBackdrop(s Styleground, textures atlas.Atlas, resources meta.Resources) backdrop.Backdrop {
	if textures == nil {
		return nil
	}
	tex, ok := textures.Texture(s.Texture)
	if !ok {
		common.Logf(logTag, "missing texture %q", s.Texture)
		return nil
	}

	var (
		layer backdrop.Backdrop
		p     *backdrop.Parallax
	)
	if backdrop.IsAnimatedPath(s.Texture) {
		a, err := backdrop.NewAnimatedBackdrop(tex, textures, resources)
		if err != nil {
			common.Logf(logTag, "%v; drawing %q as a static layer", err, s.Texture)
		} else {
			layer, p = a, a.Parallax
		}
	}
	if p == nil {
		p = backdrop.NewParallax(tex)
		layer = p
	}
	s.apply(p)
	return layer
}

// LoadFile loads a level from a JSON file on disk.
func LoadFile(path string, textures atlas.Atlas, resources meta.Resources) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(b, textures, resources)
}

// LoadFS loads a level JSON from an fs.FS such as the embedded levels.
func LoadFS(fsys fs.FS, path string, textures atlas.Atlas, resources meta.Resources) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(b, textures, resources)
}

func Parse(b []byte, textures atlas.Atlas, resources meta.Resources) (*Level, error) {
	f, err := decodeFile(b)
	if err != nil {
		return nil, err
	}
	return New(f, textures, resources), nil
}

func New(f File, textures atlas.Atlas, resources meta.Resources) *Level {
	l := &Level{
		Room:      f.Room,
		camera:    NewCamera(f.CameraX, f.CameraY),
		flags:     make(map[string]bool, len(f.Flags)),
		baseColor: parseHexColor(f.BackgroundColor, color.RGBA{A: 0xff}),
		viewW:     common.HDWidth,
		viewH:     common.HDHeight,
	}
	l.bgColor = l.baseColor
	l.camera.SetBounds(f.Width, f.Height)
	l.targetX, l.targetY = l.camera.Center()
	for _, name := range f.Flags {
		l.flags[name] = true
	}
	l.Backgrounds = buildLayers(f.Backgrounds, textures, resources)
	l.Foregrounds = buildLayers(f.Foregrounds, textures, resources)
	return l
}

func buildLayers(defs []Styleground, textures atlas.Atlas, resources meta.Resources) []backdrop.Backdrop {
	layers := make([]backdrop.Backdrop, 0, len(defs))
	for _, s := range defs {
		if layer := NewBackdrop(s, textures, resources); layer != nil {
			layers = append(layers, layer)
		}
	}
	return layers
}

func (l *Level) CameraPosition() (float64, float64) { return l.camera.X, l.camera.Y }

func (l *Level) Camera() *Camera { return l.camera }

// SetCamera centers the view on (cx, cy) without easing.
func (l *Level) SetCamera(cx, cy float64) {
	l.camera.SnapTo(cx, cy)
	l.targetX, l.targetY = l.camera.Center()
}

// MoveCamera moves the point the camera follows.
func (l *Level) MoveCamera(dx, dy float64) {
	l.targetX += dx
	l.targetY += dy
}

func (l *Level) Flag(name string) bool { return l.flags[name] }

func (l *Level) SetFlag(name string, on bool) {
	if on {
		l.flags[name] = true
	} else {
		delete(l.flags, name)
	}
}

func (l *Level) SetBackgroundColor(c color.Color) { l.bgColor = c }

// BackgroundColor is the clear color the gameplay buffer will use this frame.
func (l *Level) BackgroundColor() color.Color { return l.bgColor }

func (l *Level) ScreenMatrix() ebiten.GeoM { return l.screen }

func (l *Level) ViewportSize() (int, int) { return l.viewW, l.viewH }

// SetViewport fits the 1920x1080 virtual screen into a w by h window,
// letterboxing as needed.
func (l *Level) SetViewport(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	l.viewW, l.viewH = w, h
	scale := min(float64(w)/common.HDWidth, float64(h)/common.HDHeight)
	var m ebiten.GeoM
	m.Scale(scale, scale)
	m.Translate((float64(w)-common.HDWidth*scale)/2, (float64(h)-common.HDHeight*scale)/2)
	l.screen = m
}

// Update eases the camera and advances every layer by dt seconds.
func (l *Level) Update(dt float64) {
	l.camera.Follow(l.targetX, l.targetY)
	l.targetX, l.targetY = clampTarget(l.camera, l.targetX, l.targetY)
	for _, layer := range l.Backgrounds {
		layer.Update(l, dt)
	}
	for _, layer := range l.Foregrounds {
		layer.Update(l, dt)
	}
}

// Animated returns the animated layers in draw order.
func (l *Level) Animated() []*backdrop.AnimatedBackdrop {
	var out []*backdrop.AnimatedBackdrop
	for _, layers := range [][]backdrop.Backdrop{l.Backgrounds, l.Foregrounds} {
		for _, layer := range layers {
			if a, ok := layer.(*backdrop.AnimatedBackdrop); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// Reload re-reads the metadata of every animated layer whose metadata key
// is key. It returns how many layers picked up the change.
func (l *Level) Reload(key string, resources meta.Resources) (int, error) {
	var (
		n    int
		errs []error
	)
	for _, a := range l.Animated() {
		if a.MetaKey() != key {
			continue
		}
		if err := a.Reload(resources); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// Draw renders the level onto screen. Animated layers go straight to the
// screen through c; every other layer is drawn into the 320x180 gameplay
// buffer, which is then scaled up between the two compositor passes. r must
// be the renderer c draws through.
func (l *Level) Draw(screen *ebiten.Image, r *backdrop.EbitenRenderer, c *backdrop.Compositor) {
	l.bgColor = l.baseColor

	r.SetTarget(screen)
	c.RenderPass(l, l.Backgrounds, false)

	if l.buffer == nil {
		l.buffer = ebiten.NewImage(common.BaseWidth, common.BaseHeight)
	}
	l.buffer.Fill(l.bgColor)
	r.SetTarget(l.buffer)
	l.drawStatic(r, l.Backgrounds)
	l.drawStatic(r, l.Foregrounds)

	r.SetTarget(screen)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(common.HDScale, common.HDScale)
	op.GeoM.Concat(c.Transform(l))
	screen.DrawImage(l.buffer, op)

	c.RenderPass(l, l.Foregrounds, true)
}

// drawStatic runs the default backdrop pass, batching consecutive layers
// that share a blend mode.
func (l *Level) drawStatic(r backdrop.Renderer, layers []backdrop.Backdrop) {
	open := false
	var blend backdrop.BlendMode
	for _, layer := range layers {
		if !open || layer.BlendMode() != blend {
			if open {
				r.End()
			}
			blend = layer.BlendMode()
			r.Begin(backdrop.BatchState{
				Sort:    backdrop.SortDeferred,
				Blend:   blend,
				Sampler: backdrop.PointWrap,
			})
			open = true
		}
		layer.Render(l, r)
	}
	if open {
		r.End()
	}
}

// clampTarget stops the follow target from drifting past the room edges.
func clampTarget(c *Camera, x, y float64) (float64, float64) {
	if c.roomW > 0 {
		x = clampAxis(x-common.BaseWidth/2, c.roomW, common.BaseWidth) + common.BaseWidth/2
	}
	if c.roomH > 0 {
		y = clampAxis(y-common.BaseHeight/2, c.roomH, common.BaseHeight) + common.BaseHeight/2
	}
	return x, y
}
