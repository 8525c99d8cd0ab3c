package meta

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suffix is appended to a frame prefix to name its metadata resource.
const Suffix = ".meta"

// LayerMetadata is the optional per-backdrop metadata record. Nil fields were
// not present in the document.
type LayerMetadata struct {
	FPS    *float64 `yaml:"fps"`
	Frames *string  `yaml:"frames"`
}

// UnmarshalYAML accepts keys in any case so both "fps" and "FPS" work.
func (m *LayerMetadata) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("meta: expected a mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch strings.ToLower(key.Value) {
		case "fps":
			var fps float64
			if err := val.Decode(&fps); err != nil {
				return fmt.Errorf("meta: fps: %w", err)
			}
			m.FPS = &fps
		case "frames":
			if val.Kind != yaml.ScalarNode {
				return fmt.Errorf("meta: frames must be a string at line %d", val.Line)
			}
			frames := val.Value
			m.Frames = &frames
		}
	}
	return nil
}

// Parse decodes a metadata document.
func Parse(data []byte) (LayerMetadata, error) {
	var m LayerMetadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return LayerMetadata{}, fmt.Errorf("meta: unmarshal: %w", err)
	}
	return m, nil
}

// FrameOrder decodes the Frames field. ok is false when no frame list was set.
func (m LayerMetadata) FrameOrder() (order []int, ok bool, err error) {
	return m.FrameOrderFor(0)
}

// FrameOrderFor is FrameOrder with indices bounded by frameCount; see
// ParseFrameListBounded.
func (m LayerMetadata) FrameOrderFor(frameCount int) (order []int, ok bool, err error) {
	if m.Frames == nil {
		return nil, false, nil
	}
	order, err = ParseFrameListBounded(*m.Frames, frameCount)
	if err != nil {
		return nil, true, err
	}
	return order, true, nil
}

// Key returns the resource key holding metadata for a frame prefix.
func Key(prefix string) string {
	return prefix + Suffix
}

// Validate checks the document as a loader would. frameCount bounds the
// frame indices; pass 0 when the frame count is unknown.
func (m LayerMetadata) Validate(frameCount int) error {
	if m.FPS != nil && !(*m.FPS > 0 && *m.FPS <= math.MaxFloat64) {
		return fmt.Errorf("meta: fps %v is not positive", *m.FPS)
	}
	order, ok, err := m.FrameOrderFor(frameCount)
	if err != nil {
		return err
	}
	if ok && len(order) == 0 {
		return fmt.Errorf("meta: frame order is empty")
	}
	return nil
}
