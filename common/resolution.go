package common

const (
	// BaseWidth and BaseHeight are the virtual resolution of the gameplay buffer.
	BaseWidth  = 320
	BaseHeight = 180

	// HDScale is the ratio between the 1920x1080 asset grid and the gameplay buffer.
	HDScale = 6

	HDWidth  = BaseWidth * HDScale
	HDHeight = BaseHeight * HDScale

	// AnimatedNamespace prefixes every atlas path that should be built as an
	// animated high-resolution backdrop.
	AnimatedNamespace = "bgs/HdAnimatedStylegrounds/hdAnimatedParallax/"

	// DefaultFPS matches the playback rate decals use.
	DefaultFPS = 12.0
)
