package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypeRelease WebhookEventType = "release"
	EventTypePing    WebhookEventType = "ping"
	EventTypeUnknown WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // X-GitHub-Delivery header
	Type       WebhookEventType // X-GitHub-Event header
	Action     string
	Repository string // owner/repo
	Sender     string
	Release    *ReleaseInfo // set for release events
	ReceivedAt time.Time
}

// IsReleaseEvent reports whether the event announces a new latest release
func (e *WebhookEvent) IsReleaseEvent() bool {
	if e.Type != EventTypeRelease {
		return false
	}
	switch e.Action {
	case "published", "released":
		return true
	default:
		return false
	}
}
