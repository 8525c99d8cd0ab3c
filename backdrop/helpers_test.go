package backdrop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hdparallax/atlas"
)

type testScene struct {
	camX, camY float64
	room       string
	flags      map[string]bool
	bg         color.Color
	screen     ebiten.GeoM
	viewW      int
	viewH      int
}

func newTestScene() *testScene {
	return &testScene{
		room:  "a-00",
		flags: map[string]bool{},
		bg:    color.Black,
		viewW: 1920,
		viewH: 1080,
	}
}

func (s *testScene) CameraPosition() (float64, float64) { return s.camX, s.camY }
func (s *testScene) Room() string                       { return s.room }
func (s *testScene) Flag(name string) bool              { return s.flags[name] }
func (s *testScene) SetBackgroundColor(c color.Color)   { s.bg = c }
func (s *testScene) ScreenMatrix() ebiten.GeoM          { return s.screen }
func (s *testScene) ViewportSize() (int, int)           { return s.viewW, s.viewH }

type drawCall struct {
	tex  *atlas.Texture
	x, y float64
	clr  color.RGBA
	flip Flip
}

type recordingRenderer struct {
	begins []BatchState
	ends   int
	draws  []drawCall
}

func (r *recordingRenderer) Begin(state BatchState) { r.begins = append(r.begins, state) }
func (r *recordingRenderer) End()                   { r.ends++ }
func (r *recordingRenderer) Draw(tex *atlas.Texture, x, y float64, clr color.RGBA, flip Flip) {
	r.draws = append(r.draws, drawCall{tex: tex, x: x, y: y, clr: clr, flip: flip})
}

type mapResources map[string]string

func (m mapResources) TryGetResource(key string) ([]byte, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	return []byte(v), true
}

type mirror bool

func (m mirror) MirrorMode() bool { return bool(m) }

// sizedTexture registers a texture with a size but no GPU image.
func sizedTexture(path string, w, h int) *atlas.Texture {
	return &atlas.Texture{Path: path, Width: w, Height: h}
}

func sheetOf(texs ...*atlas.Texture) *atlas.Sheet {
	s := atlas.NewSheet()
	for _, t := range texs {
		s.Register(t)
	}
	return s
}
