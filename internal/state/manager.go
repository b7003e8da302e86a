package state

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"DBWidget/internal/model"
)

// Manager holds the last result event and persists it across restarts.
type Manager struct {
	mu       sync.RWMutex
	last     *model.ResultEvent
	filePath string
}

// NewManager creates a Manager, loading the last-known snapshot from disk.
// An empty filePath keeps state in memory only.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{filePath: filePath}
	if filePath == "" {
		return m, nil
	}

	snap, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if snap.Kind != "" {
		evt := &model.ResultEvent{Kind: snap.Kind, Data: snap.Data}
		if snap.LastError != "" {
			evt.Err = errors.New(snap.LastError)
		}
		m.last = evt
		log.WithField("kind", snap.Kind).Info("restored last-known result")
	}
	return m, nil
}

// Last returns the most recent event, or nil before the first collect.
func (m *Manager) Last() *model.ResultEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// LastData returns the data carried by the most recent event, if any.
func (m *Manager) LastData() *model.ResultData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.last == nil {
		return nil
	}
	return m.last.Data
}

// Update records evt and returns the event it replaced.
func (m *Manager) Update(evt *model.ResultEvent) *model.ResultEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev := m.last
	m.last = evt
	if err := m.save(); err != nil {
		log.WithError(err).Error("failed to save state")
	}
	return prev
}

func (m *Manager) save() error {
	if m.filePath == "" || m.last == nil {
		return nil
	}
	snap := &Snapshot{Kind: m.last.Kind, Data: m.last.Data}
	if m.last.Err != nil {
		snap.LastError = m.last.Err.Error()
	}
	return SaveState(m.filePath, snap)
}
