package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Level is the severity shown on the station toast
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a toast-style message addressed to one station, or to
// every station of an event when StationID is empty.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	StationID string    `json:"station_id,omitempty"`
	EventID   int64     `json:"event_id,omitempty"`
	Origin    string    `json:"origin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier is the result channel injected into services that need to
// tell an operator something.
type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Publish(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Discard drops every notification
var Discard Notifier = NotifierFunc(func(context.Context, Notification) error { return nil })

type NotificationBuilder struct {
	notification Notification
}

func NewNotificationBuilder(level Level) *NotificationBuilder {
	return &NotificationBuilder{
		notification: Notification{
			ID:        uuid.New(),
			Level:     level,
			CreatedAt: time.Now(),
		},
	}
}

func Success(title, message string) *NotificationBuilder {
	return NewNotificationBuilder(LevelSuccess).WithText(title, message)
}

func Warning(title, message string) *NotificationBuilder {
	return NewNotificationBuilder(LevelWarning).WithText(title, message)
}

func Error(title, message string) *NotificationBuilder {
	return NewNotificationBuilder(LevelError).WithText(title, message)
}

func (nb *NotificationBuilder) WithText(title, message string) *NotificationBuilder {
	nb.notification.Title = title
	nb.notification.Message = message
	return nb
}

func (nb *NotificationBuilder) ForStation(stationID string) *NotificationBuilder {
	nb.notification.StationID = stationID
	return nb
}

func (nb *NotificationBuilder) ForEvent(eventID int64) *NotificationBuilder {
	nb.notification.EventID = eventID
	return nb
}

func (nb *NotificationBuilder) Build() Notification {
	return nb.notification
}

// Matches reports whether a subscriber scoped to stationID/eventID should
// see n. Empty scopes match everything.
func (n Notification) Matches(stationID string, eventID int64) bool {
	if stationID != "" && n.StationID != "" && n.StationID != stationID {
		return false
	}
	if eventID != 0 && n.EventID != 0 && n.EventID != eventID {
		return false
	}
	return true
}

func (n Notification) GetPartitionKey() string {
	if n.StationID != "" {
		return n.StationID
	}
	return n.ID.String()
}

func (n Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}
