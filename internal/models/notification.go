package models

// NotificationEvent identifies a project lifecycle event that can trigger
// an outbound message. The string values are the legacy persisted keys of
// the per-event toggle map and must not change.
type NotificationEvent string

const (
	EventProjectCreated NotificationEvent = "onAdd"
	EventStatusChanged  NotificationEvent = "onStatusUpdate"
	EventDetailsUpdated NotificationEvent = "onDetailsUpdate"
	EventProjectDeleted NotificationEvent = "onDelete"
)

// NotificationEvents lists the four lifecycle events.
func NotificationEvents() []NotificationEvent {
	return []NotificationEvent{
		EventProjectCreated,
		EventStatusChanged,
		EventDetailsUpdated,
		EventProjectDeleted,
	}
}

// NotificationConfig is the persisted Telegram delivery configuration:
// bot credential, destination chat and the per-event on/off switches.
type NotificationConfig struct {
	Token         string                     `json:"token"`
	ChatID        string                     `json:"chatId"`
	Notifications map[NotificationEvent]bool `json:"notifications"`
}

// ApplyDefaults fills in any event toggle missing from a loaded legacy
// config; all events default to enabled.
func (c *NotificationConfig) ApplyDefaults() {
	if c.Notifications == nil {
		c.Notifications = make(map[NotificationEvent]bool, 4)
	}
	for _, ev := range NotificationEvents() {
		if _, ok := c.Notifications[ev]; !ok {
			c.Notifications[ev] = true
		}
	}
}

// Enabled reports whether the toggle for ev is on.
func (c *NotificationConfig) Enabled(ev NotificationEvent) bool {
	return c.Notifications[ev]
}

// Configured reports whether the required credential and destination are set.
func (c *NotificationConfig) Configured() bool {
	return c != nil && c.Token != "" && c.ChatID != ""
}
