// Package settings persists player preferences. Game progress is never
// stored here.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Quiz-Pursuit/internal/game"
)

// Settings are the player's display and control preferences.
type Settings struct {
	CameraMode    game.CameraMode `yaml:"cameraMode"`
	TouchControls bool            `yaml:"touchControls"` // on-screen joystick and D-pad
	ShowDebug     bool            `yaml:"showDebug"`     // log feed overlay
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{CameraMode: game.CameraChase}
}

// storage keys
const (
	settingsObject   = "settings"
	settingsProperty = "preferences"
)

// Manager loads and saves Settings. A Manager without a gdata store keeps
// settings in memory only.
type Manager struct {
	store    *gdata.Manager // may be nil
	settings Settings
}

// Open creates a store for appName and loads saved settings. When the
// platform store is unavailable the manager degrades to memory only.
func Open(appName string) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Settings] storage unavailable, settings will not persist: %v", err)
		store = nil
	}
	return NewManager(store)
}

// NewManager wraps store (which may be nil) and loads saved settings.
func NewManager(store *gdata.Manager) *Manager {
	m := &Manager{store: store, settings: Defaults()}
	if err := m.Load(); err != nil {
		log.Printf("[Settings] failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Load reads stored settings. Missing data yields defaults.
func (m *Manager) Load() error {
	m.settings = Defaults()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}
	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if _, err := game.ParseCameraMode(string(loaded.CameraMode)); err != nil {
		log.Printf("[Settings] ignoring stored camera mode: %v", err)
		loaded.CameraMode = game.CameraChase
	}
	m.settings = loaded
	return nil
}

// Save writes the current settings. It is a no-op without a store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Persistent reports whether Save reaches a real store.
func (m *Manager) Persistent() bool { return m.store != nil }

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings { return m.settings }

// SetCameraMode changes the camera mode in memory.
func (m *Manager) SetCameraMode(mode game.CameraMode) { m.settings.CameraMode = mode }

// CycleCameraMode advances chase -> field -> mobile -> chase and returns
// the new mode.
func (m *Manager) CycleCameraMode() game.CameraMode {
	switch m.settings.CameraMode {
	case game.CameraChase:
		m.settings.CameraMode = game.CameraField
	case game.CameraField:
		m.settings.CameraMode = game.CameraMobile
	default:
		m.settings.CameraMode = game.CameraChase
	}
	return m.settings.CameraMode
}

// SetTouchControls toggles the on-screen controls.
func (m *Manager) SetTouchControls(on bool) { m.settings.TouchControls = on }

// SetShowDebug toggles the debug overlay.
func (m *Manager) SetShowDebug(on bool) { m.settings.ShowDebug = on }
