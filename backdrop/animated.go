package backdrop

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/milk9111/hdparallax/atlas"
	"github.com/milk9111/hdparallax/common"
	"github.com/milk9111/hdparallax/meta"
)

const logTag = "HdAnimatedParallax"

// frameEpsilon absorbs float drift so that exactly k frame periods of
// elapsed time always advance exactly k frames.
const frameEpsilon = 1e-9

var (
	trailingDigits = regexp.MustCompile(`\d+$`)
	fpsSuffix      = regexp.MustCompile(`[^0-9]((?:[0-9]+\.)?[0-9]+)fps$`)
)

// IsAnimatedPath reports whether an atlas path belongs to the animated
// backdrop namespace.
func IsAnimatedPath(path string) bool {
	return strings.HasPrefix(path, common.AnimatedNamespace)
}

// AnimatedBackdrop is a parallax layer that cycles through a sequence of
// high-resolution frames. It is never drawn by the default backdrop pass; the
// Compositor draws it instead.
type AnimatedBackdrop struct {
	*Parallax

	prefix     string
	frames     []*atlas.Texture
	frameOrder []int
	fps        float64

	current int
	timer   float64
}

// NewAnimatedBackdrop builds the frame set for base. The frame prefix is
// base's path with every trailing digit removed; all atlas textures named
// prefix+digits become frames.
func NewAnimatedBackdrop(base *atlas.Texture, textures atlas.Atlas, resources meta.Resources) (*AnimatedBackdrop, error) {
	if base == nil {
		return nil, configErrorf("", nil, "no base texture")
	}
	prefix := trailingDigits.ReplaceAllString(base.Path, "")

	var frames []*atlas.Texture
	if textures != nil {
		frames = textures.Subtextures(prefix)
	}
	if len(frames) == 0 {
		return nil, configErrorf(prefix, nil, "no frames found in atlas")
	}

	a := &AnimatedBackdrop{
		Parallax: NewParallax(frames[0]),
		prefix:   prefix,
		frames:   frames,
	}
	order, fps, err := a.configure(resources)
	if err != nil {
		return nil, err
	}
	a.frameOrder = order
	a.fps = fps
	a.current = 0
	a.timer = 1 / fps
	a.Texture = a.frames[a.frameOrder[0]]

	if common.DebugEnabled() {
		bytes := 0
		for _, f := range frames {
			bytes += f.Bytes()
		}
		common.Debugf(logTag, "built %s: %d frames (%s), order length %d, %.2f fps",
			prefix, len(frames), humanize.Bytes(uint64(bytes)), len(order), fps)
	}
	return a, nil
}

// configure resolves the frame order and fps from the naming convention and
// the optional metadata document.
func (a *AnimatedBackdrop) configure(resources meta.Resources) ([]int, float64, error) {
	order := make([]int, len(a.frames))
	for i := range order {
		order[i] = i
	}

	fps, err := fpsFromPath(a.prefix)
	if err != nil {
		return nil, 0, err
	}

	md, ok := a.readMetadata(resources)
	if !ok {
		return order, fps, nil
	}

	if md.FPS != nil {
		if !(*md.FPS > 0) || math.IsInf(*md.FPS, 1) {
			return nil, 0, configErrorf(a.prefix, nil, "metadata fps %v is not positive", *md.FPS)
		}
		fps = *md.FPS
	}
	custom, set, err := md.FrameOrderFor(len(a.frames))
	if err != nil {
		return nil, 0, configErrorf(a.prefix, err, "invalid metadata frame order")
	}
	if set {
		if len(custom) == 0 {
			return nil, 0, configErrorf(a.prefix, nil, "metadata frame order is empty")
		}
		order = custom
	}
	return order, fps, nil
}

// readMetadata returns the metadata for the prefix. Missing or malformed
// documents report ok=false so defaults apply.
func (a *AnimatedBackdrop) readMetadata(resources meta.Resources) (meta.LayerMetadata, bool) {
	if resources == nil {
		return meta.LayerMetadata{}, false
	}
	key := meta.Key(a.prefix)
	data, found := resources.TryGetResource(key)
	if !found {
		return meta.LayerMetadata{}, false
	}
	md, err := meta.Parse(data)
	if err != nil {
		common.Logf(logTag, "ignoring malformed metadata %s: %v", key, err)
		return meta.LayerMetadata{}, false
	}
	if _, _, err := md.FrameOrderFor(len(a.frames)); err != nil && !meta.IsLimitError(err) {
		common.Logf(logTag, "ignoring malformed metadata %s: %v", key, err)
		return meta.LayerMetadata{}, false
	}
	common.Debugf(logTag, "using metadata %s", key)
	return md, true
}

func fpsFromPath(prefix string) (float64, error) {
	m := fpsSuffix.FindStringSubmatch(prefix)
	if m == nil {
		return common.DefaultFPS, nil
	}
	fps, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, configErrorf(prefix, err, "malformed fps suffix %q", m[1])
	}
	if !(fps > 0) {
		return 0, configErrorf(prefix, nil, "fps suffix %v is not positive", fps)
	}
	return fps, nil
}

// Reload re-reads metadata, keeping the current state when the new
// configuration is invalid.
func (a *AnimatedBackdrop) Reload(resources meta.Resources) error {
	order, fps, err := a.configure(resources)
	if err != nil {
		return err
	}
	a.frameOrder = order
	a.fps = fps
	if a.current >= len(order) {
		a.current = 0
	}
	a.timer = 1 / fps
	a.Texture = a.frames[a.frameOrder[a.current]]
	return nil
}

// Advance moves the playback cursor by dt seconds. Invisible backdrops stay
// on their current frame.
func (a *AnimatedBackdrop) Advance(dt float64, visible bool) {
	if !visible {
		return
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	period := 1 / a.fps
	eps := period * frameEpsilon
	a.timer -= dt
	if a.timer > eps {
		return
	}
	// Each step adds one period; the first one fires at eps.
	d := eps - a.timer
	n := float64(len(a.frameOrder))
	steps := 0.0
	if q := math.Floor(d / period); !math.IsInf(q, 0) {
		steps = math.Mod(q+1, n)
	}
	a.timer = period + eps - math.Mod(d, period)
	a.current = (a.current + int(steps)) % len(a.frameOrder)
	a.Texture = a.frames[a.frameOrder[a.current]]
}

func (a *AnimatedBackdrop) Update(scene Scene, dt float64) {
	visible := a.IsVisible(scene)
	a.Parallax.update(scene, dt, visible)
	a.Advance(dt, visible)
}

// Render does nothing; the default pass assumes a single low-resolution
// texture, so the Compositor draws animated backdrops itself.
func (a *AnimatedBackdrop) Render(Scene, Renderer) {}

// CurrentTexture is the frame to present. It is never nil.
func (a *AnimatedBackdrop) CurrentTexture() *atlas.Texture {
	return a.frames[a.frameOrder[a.current]]
}

// CurrentFrame is the cursor into the frame order.
func (a *AnimatedBackdrop) CurrentFrame() int { return a.current }

func (a *AnimatedBackdrop) FPS() float64 { return a.fps }

// Prefix is the atlas path shared by all frames.
func (a *AnimatedBackdrop) Prefix() string { return a.prefix }

// MetaKey is the resource key of the backdrop's metadata.
func (a *AnimatedBackdrop) MetaKey() string { return meta.Key(a.prefix) }

func (a *AnimatedBackdrop) FrameOrder() []int {
	return append([]int(nil), a.frameOrder...)
}

func (a *AnimatedBackdrop) Frames() []*atlas.Texture {
	return append([]*atlas.Texture(nil), a.frames...)
}
