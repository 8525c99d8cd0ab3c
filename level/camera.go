package level

import (
	"math"

	"github.com/milk9111/hdparallax/common"
)

// Camera is the gameplay view. X and Y are the top-left of the 320x180 view
// in room pixels; Follow eases the view center toward a target.
type Camera struct {
	X, Y float64

	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	// room size in pixels (0 means unbounded)
	roomW float64
	roomH float64
}

func NewCamera(x, y float64) *Camera {
	return &Camera{X: x, Y: y, smooth: 0.15}
}

// SetBounds limits the view to a w by h room.
func (c *Camera) SetBounds(w, h float64) {
	c.roomW, c.roomH = w, h
	c.clamp()
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Center returns the room-space point at the middle of the view.
func (c *Camera) Center() (float64, float64) {
	return c.X + common.BaseWidth/2, c.Y + common.BaseHeight/2
}

// Follow moves the view center toward (cx, cy). Call once per tick.
func (c *Camera) Follow(cx, cy float64) {
	x, y := cx-common.BaseWidth/2, cy-common.BaseHeight/2
	if c.smooth <= 0 || c.smooth >= 1 {
		c.X, c.Y = x, y
	} else {
		c.X += (x - c.X) * c.smooth
		c.Y += (y - c.Y) * c.smooth
		if math.Abs(x-c.X) < 0.01 && math.Abs(y-c.Y) < 0.01 {
			c.X, c.Y = x, y
		}
	}
	c.clamp()
}

// SnapTo centers the view on (cx, cy) immediately.
func (c *Camera) SnapTo(cx, cy float64) {
	c.X, c.Y = cx-common.BaseWidth/2, cy-common.BaseHeight/2
	c.clamp()
}

func (c *Camera) clamp() {
	c.X = clampAxis(c.X, c.roomW, common.BaseWidth)
	c.Y = clampAxis(c.Y, c.roomH, common.BaseHeight)
}

// clampAxis keeps a view of size view inside a room of size room, centering
// it when the room is smaller.
func clampAxis(v, room, view float64) float64 {
	if room <= 0 {
		return v
	}
	if room < view {
		return (room - view) / 2
	}
	return common.Clamp(v, 0, room-view)
}
