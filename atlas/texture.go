package atlas

import "github.com/hajimehoshi/ebiten/v2"

// Texture is a named region of the atlas. Path is atlas-relative, uses forward
// slashes and carries no file extension.
type Texture struct {
	Path   string
	Image  *ebiten.Image
	Width  int
	Height int
}

// NewTexture wraps img under path. A nil image yields a zero-sized texture.
func NewTexture(path string, img *ebiten.Image) *Texture {
	t := &Texture{Path: path, Image: img}
	if img != nil {
		b := img.Bounds()
		t.Width = b.Dx()
		t.Height = b.Dy()
	}
	return t
}

// Bytes is the approximate GPU footprint of the texture.
func (t *Texture) Bytes() int {
	if t == nil {
		return 0
	}
	return t.Width * t.Height * 4
}
