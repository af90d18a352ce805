// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/dataset"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services/watch"
)

type (
	// DatasetChangedEvent is emitted when a city's source file changes.
	DatasetChangedEvent struct {
		City string
		Path string
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetChangedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}

// Manager runs the pipeline and routes watcher events.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	loader      *dataset.Loader
	watcher     *watch.Service
	stopChan    chan struct{}
	subscribers []chan ServiceEvent
	closeOnce   sync.Once
}

// NewManager creates a new service manager. When cfg.Watch is set the data
// directories are watched; a watcher that cannot start is logged and skipped.
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		cfg:      cfg,
		loader:   dataset.NewLoader(cfg.Cities),
		stopChan: make(chan struct{}),
	}

	if cfg.Watch {
		w, err := watch.New(cfg.Cities)
		if err != nil {
			logger.Warn("dataset watcher disabled", "error", err)
		} else {
			m.watcher = w
		}
	}

	go m.routeEvents()

	return m
}

// routeEvents routes watcher events to subscribers.
func (m *Manager) routeEvents() {
	var events <-chan watch.Event
	if m.watcher != nil {
		events = m.watcher.Events()
	}

	for {
		select {
		case event := <-events:
			m.handleWatchEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleWatchEvent(event watch.Event) {
	switch event.Type {
	case watch.EventDatasetChanged:
		logger.Info("dataset changed", "city", event.City, "path", event.Path)
		m.broadcast(DatasetChangedEvent{City: event.City, Path: event.Path})

	case watch.EventError:
		m.broadcast(ErrorEvent{Service: "watch", Error: event.Error})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
// The command yields nil once the channel is closed.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return event
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Run executes the pipeline for q.
func (m *Manager) Run(ctx context.Context, q models.Query) (*Result, error) {
	return Run(ctx, m.loader, q)
}

// Cities returns the configured city keys.
func (m *Manager) Cities() []string {
	return m.cfg.Cities.Cities()
}

// PageSize returns the number of raw rows shown per page.
func (m *Manager) PageSize() int {
	return m.cfg.PageSize
}

// Watching reports whether dataset changes are being watched.
func (m *Manager) Watching() bool {
	return m.watcher != nil
}

// Close stops the watcher and closes all subscriber channels.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if m.watcher != nil {
			err = m.watcher.Close()
		}
	})
	return err
}
