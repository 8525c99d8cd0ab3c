package level

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/hdparallax/backdrop"
)

// File is a level as stored on disk.
type File struct {
	Room            string   `json:"room"`
	Width           float64  `json:"width,omitempty"`
	Height          float64  `json:"height,omitempty"`
	BackgroundColor string   `json:"background_color,omitempty"`
	Flags           []string `json:"flags,omitempty"`
	CameraX         float64  `json:"camera_x,omitempty"`
	CameraY         float64  `json:"camera_y,omitempty"`

	Backgrounds []Styleground `json:"backgrounds,omitempty"`
	Foregrounds []Styleground `json:"foregrounds,omitempty"`
}

// Styleground describes one parallax layer. Pointer fields default to true
// (or 1 for Alpha) when absent.
type Styleground struct {
	Texture string  `json:"texture"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	ScrollX float64 `json:"scroll_x,omitempty"`
	ScrollY float64 `json:"scroll_y,omitempty"`
	SpeedX  float64 `json:"speed_x,omitempty"`
	SpeedY  float64 `json:"speed_y,omitempty"`

	Color string   `json:"color,omitempty"`
	Alpha *float64 `json:"alpha,omitempty"`
	Blend string   `json:"blend,omitempty"`

	LoopX *bool `json:"loop_x,omitempty"`
	LoopY *bool `json:"loop_y,omitempty"`
	FlipX bool  `json:"flip_x,omitempty"`
	FlipY bool  `json:"flip_y,omitempty"`

	FadeX []backdrop.FadeRange `json:"fade_x,omitempty"`
	FadeY []backdrop.FadeRange `json:"fade_y,omitempty"`

	Visible *bool    `json:"visible,omitempty"`
	FadeIn  bool     `json:"fade_in,omitempty"`
	Only    []string `json:"only,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
	Flag    string   `json:"flag,omitempty"`
	NotFlag string   `json:"not_flag,omitempty"`
}

// apply copies the layer definition onto p, leaving its texture alone.
func (s Styleground) apply(p *backdrop.Parallax) {
	p.X, p.Y = s.X, s.Y
	p.ScrollX, p.ScrollY = s.ScrollX, s.ScrollY
	p.SpeedX, p.SpeedY = s.SpeedX, s.SpeedY
	if s.Color != "" {
		c := parseHexColor(s.Color, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		p.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	if s.Alpha != nil {
		p.Alpha = *s.Alpha
	}
	p.Blend = backdrop.ParseBlendMode(s.Blend)
	p.LoopX = boolOr(s.LoopX, true)
	p.LoopY = boolOr(s.LoopY, true)
	p.FlipX, p.FlipY = s.FlipX, s.FlipY
	p.FadeX = backdrop.Fader(s.FadeX)
	p.FadeY = backdrop.Fader(s.FadeY)
	p.Visible = boolOr(s.Visible, true)
	p.FadeIn = s.FadeIn
	p.Only = s.Only
	p.Exclude = s.Exclude
	p.OnlyIfFlag = s.Flag
	p.OnlyIfNotFlag = s.NotFlag
}

func decodeFile(b []byte) (File, error) {
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return File{}, fmt.Errorf("unmarshal level: %w", err)
	}
	return f, nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// parseHexColor reads "#rrggbb" or "rrggbb", returning def when s is
// malformed.
func parseHexColor(s string, def color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return def
	}
	var r, g, b uint32
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return def
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
