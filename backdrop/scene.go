package backdrop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the part of the owning level a backdrop reads while updating and
// drawing.
type Scene interface {
	// CameraPosition is the top-left of the camera in gameplay pixels.
	CameraPosition() (x, y float64)
	Room() string
	Flag(name string) bool
	// SetBackgroundColor sets the clear color of the gameplay buffer.
	SetBackgroundColor(c color.Color)
	// ScreenMatrix maps the 1920x1080 virtual screen onto the window.
	ScreenMatrix() ebiten.GeoM
	// ViewportSize is the window viewport in pixels.
	ViewportSize() (w, h int)
}

// Assists exposes the accessibility flags the compositor honours.
type Assists interface {
	MirrorMode() bool
}

// Effect is a post-process applied while drawing, such as a color grade.
type Effect interface {
	Shader() *ebiten.Shader
	Uniforms() map[string]any
}
