package app

import (
	"time"

	"github.com/j-veylop/bikeshare-explorer/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// CitySelectedMsg is sent when the user picks a city.
type CitySelectedMsg struct {
	City string
}

// MonthSelectedMsg is sent when the user picks a month selector.
type MonthSelectedMsg struct {
	Month string
}

// DaySelectedMsg is sent when the user picks a day selector.
type DaySelectedMsg struct {
	Day string
}

// PipelineDoneMsg carries the outcome of a pipeline run.
type PipelineDoneMsg struct {
	Result *services.Result
	Err    error
}

// ShowRawMsg asks the raw data screen to start paging from the first row.
type ShowRawMsg struct{}

// ScreenSwitchMsg requests switching to a specific screen.
type ScreenSwitchMsg struct {
	Screen ScreenID
}

// RestartMsg discards the current query and returns to city selection.
type RestartMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
