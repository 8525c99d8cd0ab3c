package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	assistsObject   = "settings"
	assistsProperty = "assists"
)

// Assists are the accessibility toggles persisted between runs.
type Assists struct {
	MirrorMode bool `yaml:"mirrorMode"`
}

// Manager loads and saves Assists. With a nil gdata manager it keeps the
// settings in memory only.
type Manager struct {
	data    *gdata.Manager
	assists Assists
}

// Open creates the gdata storage for appName and loads any saved settings.
func Open(appName string) (*Manager, error) {
	data, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings storage: %w", err)
	}
	return NewManager(data), nil
}

// NewManager wraps data. A failed load is logged and leaves the defaults in
// place.
func NewManager(data *gdata.Manager) *Manager {
	m := &Manager{data: data}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] load failed, using defaults: %v", err)
	}
	return m
}

func (m *Manager) Load() error {
	m.assists = Assists{}
	if m.data == nil || !m.data.ObjectPropExists(assistsObject, assistsProperty) {
		return nil
	}
	b, err := m.data.LoadObjectProp(assistsObject, assistsProperty)
	if err != nil {
		return fmt.Errorf("load assists: %w", err)
	}
	var a Assists
	if err := yaml.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("unmarshal assists: %w", err)
	}
	m.assists = a
	return nil
}

func (m *Manager) Save() error {
	if m.data == nil {
		return nil
	}
	b, err := yaml.Marshal(m.assists)
	if err != nil {
		return fmt.Errorf("marshal assists: %w", err)
	}
	if err := m.data.SaveObjectProp(assistsObject, assistsProperty, b); err != nil {
		return fmt.Errorf("save assists: %w", err)
	}
	return nil
}

func (m *Manager) Assists() Assists { return m.assists }

// MirrorMode reports whether the world is drawn flipped horizontally.
func (m *Manager) MirrorMode() bool { return m.assists.MirrorMode }

func (m *Manager) SetMirrorMode(on bool) { m.assists.MirrorMode = on }

// ToggleMirrorMode flips mirror mode and persists the result.
func (m *Manager) ToggleMirrorMode() error {
	m.assists.MirrorMode = !m.assists.MirrorMode
	return m.Save()
}
