package theme

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/worldview/internal/logging"
)

// PreferenceStore persists the explicit theme choice.
type PreferenceStore interface {
	Preference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
	DeletePreference(ctx context.Context, key string) error
}

// Detector reports whether the system currently prefers a dark theme.
type Detector func() bool

// TerminalDetector asks out for its background colour. The default
// renderer resolves the colour only once, so every call builds a new one.
func TerminalDetector(out io.Writer) Detector {
	return detectWith(func() *lipgloss.Renderer { return lipgloss.NewRenderer(out) })
}

func detectWith(newRenderer func() *lipgloss.Renderer) Detector {
	return func() bool {
		return newRenderer().HasDarkBackground()
	}
}

// Options configures a Manager.
type Options struct {
	Store   PreferenceStore
	Detect  Detector
	Default Theme
	Logger  *logging.Logger
}

// Manager owns the applied theme. Explicit choices are persisted and take
// precedence over the system signal until cleared.
type Manager struct {
	store  PreferenceStore
	detect Detector
	def    Theme
	log    *logging.Logger

	mu      sync.RWMutex
	current Theme
	palette Palette
}

// NewManager builds a Manager with the default theme applied. Call Init
// to resolve the stored and system preferences.
func NewManager(opts Options) *Manager {
	def := opts.Default
	if def != Dark {
		def = Light
	}
	m := &Manager{
		store:  opts.Store,
		detect: opts.Detect,
		def:    def,
		log:    opts.Logger,
	}
	m.apply(def)
	return m
}

// Init resolves the initial theme: stored choice, then system signal,
// then the default.
func (m *Manager) Init(ctx context.Context) Theme {
	if stored, ok := m.stored(ctx); ok {
		m.apply(stored)
		return stored
	}
	t := m.systemTheme()
	m.apply(t)
	return t
}

// Current returns the applied theme.
func (m *Manager) Current() Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Palette returns the styles of the applied theme.
func (m *Manager) Palette() Palette {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.palette
}

// Label returns the toggle label of the applied theme.
func (m *Manager) Label() Label {
	return LabelFor(m.Current())
}

// Toggle flips the applied theme and persists the result.
func (m *Manager) Toggle(ctx context.Context) (Theme, error) {
	next := m.Current().Opposite()
	return next, m.Set(ctx, next)
}

// Set applies t and persists it as the explicit choice. Applying the
// current theme again is harmless.
func (m *Manager) Set(ctx context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	m.apply(t)
	if m.store == nil {
		return nil
	}
	if err := m.store.SetPreference(ctx, PreferenceKey, string(t)); err != nil {
		m.log.Warn(err, "failed to persist theme")
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// SystemChanged applies the system signal unless an explicit choice is
// stored. It reports whether the applied theme followed the signal.
func (m *Manager) SystemChanged(ctx context.Context, dark bool) bool {
	if _, ok := m.stored(ctx); ok {
		return false
	}
	m.apply(m.fromSystem(dark))
	return true
}

// Clear forgets the explicit choice and re-resolves from the system.
func (m *Manager) Clear(ctx context.Context) (Theme, error) {
	if m.store != nil {
		if err := m.store.DeletePreference(ctx, PreferenceKey); err != nil {
			return m.Current(), fmt.Errorf("failed to clear theme: %w", err)
		}
	}
	t := m.systemTheme()
	m.apply(t)
	return t, nil
}

// Explicit returns the stored choice, if any.
func (m *Manager) Explicit(ctx context.Context) (Theme, bool) {
	return m.stored(ctx)
}

func (m *Manager) stored(ctx context.Context) (Theme, bool) {
	if m.store == nil {
		return "", false
	}
	value, ok, err := m.store.Preference(ctx, PreferenceKey)
	if err != nil {
		m.log.Warn(err, "failed to read theme preference")
		return "", false
	}
	if !ok {
		return "", false
	}
	t, err := Parse(value)
	if err != nil {
		m.log.Warn(err, "ignoring stored theme")
		return "", false
	}
	return t, true
}

func (m *Manager) systemTheme() Theme {
	return m.fromSystem(m.detect != nil && m.detect())
}

// fromSystem maps the system signal to a theme. A light or unknown
// background resolves to the default.
func (m *Manager) fromSystem(dark bool) Theme {
	if dark {
		return Dark
	}
	return m.def
}

func (m *Manager) apply(t Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == t {
		return
	}
	m.current = t
	m.palette = NewPalette(t)
}
