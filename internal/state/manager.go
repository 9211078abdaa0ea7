package state

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"hdrbar/pkg/types"
)

// Manager loads and saves the layout of one header. Saving is skipped when
// nothing changed since the last load or save.
type Manager struct {
	store  Store
	name   string
	last   *types.Layout
	logger *slog.Logger
	now    func() time.Time
	mutex  sync.Mutex
}

// NewManager creates a new layout manager for the layout called name
func NewManager(store Store, name string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		store:  store,
		name:   name,
		logger: logger,
		now:    time.Now,
	}
}

// Name returns the name the layout is stored under
func (m *Manager) Name() string {
	return m.name
}

// Restore loads the stored layout. ok is false when there is none yet.
func (m *Manager) Restore() (layout types.Layout, ok bool, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	layout, err = m.store.Load(m.name)
	if errors.Is(err, ErrLayoutNotFound) {
		return types.Layout{}, false, nil
	}
	if err != nil {
		return types.Layout{}, false, fmt.Errorf("failed to restore layout: %w", err)
	}

	saved := layout.Clone()
	m.last = &saved
	return layout, true, nil
}

// Save stores the layout if it differs from the last one seen. It reports
// whether anything was written.
func (m *Manager) Save(layout types.Layout) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	layout.Name = m.name
	if m.last != nil && m.last.Equal(layout) {
		return false, nil
	}

	layout.UpdatedAt = m.now()
	if err := m.store.Save(layout); err != nil {
		return false, fmt.Errorf("failed to save layout: %w", err)
	}

	saved := layout.Clone()
	m.last = &saved
	m.logger.Debug("layout saved", "name", m.name, "order", layout.Order)
	return true, nil
}

// Last returns the layout last loaded or saved
func (m *Manager) Last() (types.Layout, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.last == nil {
		return types.Layout{}, false
	}
	return m.last.Clone(), true
}

// Close closes the underlying store
func (m *Manager) Close() error {
	return m.store.Close()
}
