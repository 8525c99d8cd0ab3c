package level

import (
	"image/color"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/milk9111/hdparallax/atlas"
	"github.com/milk9111/hdparallax/backdrop"
	"github.com/milk9111/hdparallax/common"
)

const ns = common.AnimatedNamespace

type mapResources map[string]string

func (m mapResources) TryGetResource(key string) ([]byte, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	return []byte(v), true
}

func testSheet() *atlas.Sheet {
	s := atlas.NewSheet()
	for _, p := range []string{"bgs/hills", ns + "fog00", ns + "fog01", ns + "fog02", ns + "rain00"} {
		s.Register(&atlas.Texture{Path: p, Width: 320, Height: 180})
	}
	return s
}

const demo = `{
	"room": "a-00",
	"background_color": "#102030",
	"flags": ["storm"],
	"camera_x": 12,
	"backgrounds": [
		{"texture": "bgs/hills", "scroll_x": 0.5, "loop_y": false},
		{"texture": "bgs/HdAnimatedStylegrounds/hdAnimatedParallax/fog00", "alpha": 0.5, "blend": "additive"},
		{"texture": "bgs/missing"}
	],
	"foregrounds": [
		{"texture": "bgs/HdAnimatedStylegrounds/hdAnimatedParallax/rain00", "flag": "storm"}
	]
}`

func TestParse(t *testing.T) {
	l, err := Parse([]byte(demo), testSheet(), mapResources{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if l.Room != "a-00" || !l.Flag("storm") {
		t.Fatalf("room = %q, storm = %v", l.Room, l.Flag("storm"))
	}
	if x, _ := l.CameraPosition(); x != 12 {
		t.Fatalf("camera x = %v", x)
	}
	if got := l.BackgroundColor(); got != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) {
		t.Fatalf("background = %v", got)
	}
	if len(l.Backgrounds) != 2 {
		t.Fatalf("backgrounds = %d, want 2 (missing texture skipped)", len(l.Backgrounds))
	}

	hills, ok := l.Backgrounds[0].(*backdrop.Parallax)
	if !ok {
		t.Fatalf("hills = %T, want *Parallax", l.Backgrounds[0])
	}
	if hills.ScrollX != 0.5 || !hills.LoopX || hills.LoopY {
		t.Fatalf("hills = %+v", hills)
	}

	fog, ok := l.Backgrounds[1].(*backdrop.AnimatedBackdrop)
	if !ok {
		t.Fatalf("fog = %T, want *AnimatedBackdrop", l.Backgrounds[1])
	}
	if fog.Alpha != 0.5 || fog.BlendMode() != backdrop.BlendAdditive {
		t.Fatalf("fog alpha %v blend %v", fog.Alpha, fog.BlendMode())
	}
	if len(fog.Frames()) != 3 {
		t.Fatalf("fog frames = %d", len(fog.Frames()))
	}
	if len(l.Animated()) != 2 {
		t.Fatalf("animated = %d, want 2", len(l.Animated()))
	}
}

func TestNewBackdropFallsBackToStatic(t *testing.T) {
	res := mapResources{ns + "fog.meta": "fps: 0\n"}
	layer := NewBackdrop(Styleground{Texture: ns + "fog01"}, testSheet(), res)
	p, ok := layer.(*backdrop.Parallax)
	if !ok {
		t.Fatalf("layer = %T, want *Parallax", layer)
	}
	if p.Texture.Path != ns+"fog01" {
		t.Fatalf("texture = %s", p.Texture.Path)
	}
}

func TestNewBackdropDefaults(t *testing.T) {
	layer := NewBackdrop(Styleground{Texture: "bgs/hills", Color: "ff0000"}, testSheet(), nil)
	p := layer.(*backdrop.Parallax)
	if !p.Visible || !p.LoopX || !p.LoopY || p.Alpha != 1 {
		t.Fatalf("defaults = %+v", p)
	}
	if p.Color != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("color = %v", p.Color)
	}
	if NewBackdrop(Styleground{Texture: "nope"}, testSheet(), nil) != nil {
		t.Fatalf("missing texture must yield no layer")
	}
}

func TestUpdateAdvancesAnimatedLayers(t *testing.T) {
	l, err := Parse([]byte(demo), testSheet(), mapResources{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fog := l.Backgrounds[1].(*backdrop.AnimatedBackdrop)
	for i := 0; i < 12; i++ {
		l.Update(1.0 / 12)
	}
	// 12 frames over 3 frames wraps back to the start
	if fog.CurrentFrame() != 0 {
		t.Fatalf("cursor = %d, want 0", fog.CurrentFrame())
	}
	l.Update(1.0 / 12)
	if fog.CurrentFrame() != 1 {
		t.Fatalf("cursor = %d, want 1", fog.CurrentFrame())
	}

	rain := l.Foregrounds[0].(*backdrop.AnimatedBackdrop)
	l.SetFlag("storm", false)
	before := rain.CurrentFrame()
	l.Update(1)
	if rain.CurrentFrame() != before {
		t.Fatalf("hidden layer advanced")
	}
}

func TestReload(t *testing.T) {
	res := mapResources{}
	l, err := Parse([]byte(demo), testSheet(), res)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res[ns+"fog.meta"] = "fps: 24\nframes: 2,1,0\n"
	n, err := l.Reload(ns+"fog.meta", res)
	if err != nil || n != 1 {
		t.Fatalf("Reload = %d, %v", n, err)
	}
	fog := l.Backgrounds[1].(*backdrop.AnimatedBackdrop)
	if fog.FPS() != 24 || fog.FrameOrder()[0] != 2 {
		t.Fatalf("fps %v order %v", fog.FPS(), fog.FrameOrder())
	}

	res[ns+"fog.meta"] = "fps: -1\n"
	if _, err := l.Reload(ns+"fog.meta", res); err == nil {
		t.Fatalf("invalid metadata reloaded without error")
	}
	if fog.FPS() != 24 {
		t.Fatalf("failed reload changed fps to %v", fog.FPS())
	}

	if n, _ := l.Reload("bgs/other.meta", res); n != 0 {
		t.Fatalf("unrelated key reloaded %d layers", n)
	}
}

func TestSetViewport(t *testing.T) {
	l := New(File{}, nil, nil)
	l.SetViewport(960, 1080)
	w, h := l.ViewportSize()
	if w != 960 || h != 1080 {
		t.Fatalf("viewport = %dx%d", w, h)
	}
	m := l.ScreenMatrix()
	x, y := m.Apply(1920, 1080)
	if x != 960 || y != 810 {
		t.Fatalf("bottom-right = (%v, %v), want (960, 810)", x, y)
	}
	x, y = m.Apply(0, 0)
	if x != 0 || y != 270 {
		t.Fatalf("top-left = (%v, %v), want (0, 270)", x, y)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"demo.json": {Data: []byte(demo)}}
	l, err := LoadFS(fsys, "levels/demo.json", testSheet(), nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if l.Room != "a-00" {
		t.Fatalf("room = %q", l.Room)
	}

	_, err = LoadFS(fsys, "broken.json", testSheet(), nil)
	if err == nil || !strings.Contains(err.Error(), "read level") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	if _, err := Parse([]byte("{"), testSheet(), nil); err == nil {
		t.Fatalf("Parse accepted truncated JSON")
	}
}

func TestMoveCameraFollowsWithinRoom(t *testing.T) {
	l := New(File{Width: 1000, Height: 180}, nil, nil)
	l.Camera().SetSmooth(1)
	l.MoveCamera(100, 50)
	l.Update(1.0 / 60)
	if x, y := l.CameraPosition(); x != 100 || y != 0 {
		t.Fatalf("camera = (%v, %v), want (100, 0)", x, y)
	}

	l.MoveCamera(5000, 0)
	l.Update(1.0 / 60)
	if x, _ := l.CameraPosition(); x != 680 {
		t.Fatalf("camera x = %v, want 680", x)
	}
	// the target stays at the edge so moving back responds at once
	l.MoveCamera(-10, 0)
	l.Update(1.0 / 60)
	if x, _ := l.CameraPosition(); x != 670 {
		t.Fatalf("camera x = %v, want 670", x)
	}
}
