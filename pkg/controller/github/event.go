// Package github decodes GitHub webhook deliveries into domain events
package github

import (
	"errors"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
)

// ErrMalformedPayload is returned when a release or ping delivery cannot be decoded
var ErrMalformedPayload = errors.New("malformed webhook payload")

// Delivery is a raw webhook request
type Delivery struct {
	ID         string
	EventType  string
	Body       []byte
	ReceivedAt time.Time
}

// ParseEvent decodes a delivery. Event types the page does not handle are
// returned as is with only the type and id set.
func ParseEvent(d Delivery) (*model.WebhookEvent, error) {
	event := &model.WebhookEvent{
		ID:         d.ID,
		Type:       model.WebhookEventType(d.EventType),
		ReceivedAt: d.ReceivedAt,
	}
	if d.EventType == "" {
		event.Type = model.EventTypeUnknown
	}

	switch event.Type {
	case model.EventTypeRelease, model.EventTypePing:
	default:
		return event, nil
	}

	payload, err := github.ParseWebHook(d.EventType, d.Body)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrMalformedPayload, err), "failed to parse webhook payload",
			goerr.V("event_type", d.EventType),
			goerr.V("delivery_id", d.ID))
	}

	// ping carries nothing the page uses beyond its type
	if e, ok := payload.(*github.ReleaseEvent); ok {
		event.Action = e.GetAction()
		event.Repository = e.GetRepo().GetFullName()
		event.Sender = e.GetSender().GetLogin()
		event.Release = extractReleaseInfo(e.GetRelease())
	}

	return event, nil
}

// extractReleaseInfo uses the nil-safe Get* helpers, so a release missing
// from the payload yields nil
func extractReleaseInfo(rel *github.RepositoryRelease) *model.ReleaseInfo {
	if rel == nil {
		return nil
	}

	info := &model.ReleaseInfo{
		TagName: rel.GetTagName(),
		Body:    rel.GetBody(),
		HTMLURL: rel.GetHTMLURL(),
	}
	if rel.PublishedAt != nil {
		info.PublishedAt = rel.PublishedAt.Format(time.RFC3339)
	}
	for _, asset := range rel.Assets {
		info.Assets = append(info.Assets, model.Asset{
			Name:               asset.GetName(),
			BrowserDownloadURL: asset.GetBrowserDownloadURL(),
		})
	}
	return info
}
