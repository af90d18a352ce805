// Package watch notifies when city dataset files change on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/logger"
)

// EventType defines the type of watch event.
type EventType int

const (
	EventDatasetChanged EventType = iota
	EventError
)

// Event reports a change to a dataset file.
type Event struct {
	Type  EventType
	City  string
	Path  string
	Error error
}

const debounceInterval = 100 * time.Millisecond

// Service watches the directories holding the city datasets.
type Service struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	files     map[string]string // cleaned path -> city
	timers    map[string]*time.Timer
	eventChan chan Event
	stopChan  chan struct{}
	closeOnce sync.Once
}

// New starts watching every directory referenced by cities.
// Directories that do not exist are skipped.
func New(cities config.CityTable) (*Service, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	s := &Service{
		watcher:   watcher,
		files:     make(map[string]string),
		timers:    make(map[string]*time.Timer),
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	for _, city := range cities.Cities() {
		path, _ := cities.Path(city)
		s.files[filepath.Clean(path)] = city
	}

	watched := 0
	for _, dir := range cities.Dirs() {
		if err := watcher.Add(dir); err != nil {
			logger.Warn("not watching data directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, fmt.Errorf("no data directory could be watched")
	}

	go s.watchLoop()
	return s, nil
}

// Events returns the channel of watch events.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			path := filepath.Clean(event.Name)
			city, tracked := s.files[path]
			if !tracked {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.debounce(path, func() {
					s.sendEvent(Event{Type: EventDatasetChanged, City: city, Path: path})
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// debounce collapses rapid changes to one file into a single call.
func (s *Service) debounce(path string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[path]; ok {
		t.Stop()
	}
	s.timers[path] = time.AfterFunc(debounceInterval, fn)
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the watcher and pending notifications.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		for _, t := range s.timers {
			t.Stop()
		}
		s.mu.Unlock()

		err = s.watcher.Close()
	})
	return err
}
