// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/config"
	"github.com/j-veylop/bikeshare-explorer/internal/models"
	"github.com/j-veylop/bikeshare-explorer/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the session shared between the root model and its screens.
type State struct {
	mu sync.RWMutex

	query   models.Query
	result  *services.Result
	err     error
	loading bool
	stale   bool

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty session.
func NewState() *State {
	return &State{
		query:         models.Query{Month: models.All, Day: models.All},
		notifications: make([]Notification, 0),
	}
}

// SetCity starts a new query for city.
func (s *State) SetCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = models.Query{City: city, Month: models.All, Day: models.All}
}

// SetMonth sets the month selector of the current query.
func (s *State) SetMonth(month string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Month = month
}

// SetDay sets the day selector of the current query.
func (s *State) SetDay(day string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Day = day
}

// Query returns the current query.
func (s *State) Query() models.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// StartLoading marks a pipeline run as in flight and drops the previous outcome.
func (s *State) StartLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.result = nil
	s.err = nil
	s.stale = false
}

// IsLoading reports whether a pipeline run is in flight.
func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetOutcome records the result or error of a pipeline run.
func (s *State) SetOutcome(result *services.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.result = result
	s.err = err
}

// Result returns the last pipeline result, nil if none.
func (s *State) Result() *services.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Err returns the error of the last pipeline run.
func (s *State) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// MarkStale flags the results as outdated when city is the queried city.
// It reports whether the flag was set.
func (s *State) MarkStale(city string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil || config.CanonicalCity(city) != config.CanonicalCity(s.query.City) {
		return false
	}
	s.stale = true
	return true
}

// IsStale reports whether the source changed since the results were computed.
func (s *State) IsStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Reset clears the query and results for a fresh selection.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = models.Query{Month: models.All, Day: models.All}
	s.result = nil
	s.err = nil
	s.loading = false
	s.stale = false
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	// Keep only the last 5 notifications
	if len(s.notifications) > 5 {
		s.notifications = s.notifications[len(s.notifications)-5:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}
