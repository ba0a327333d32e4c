package notify

import (
	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
)

// Notifier delivers best-effort user-visible alerts.
type Notifier interface {
	Notify(title, body string)
}

// HubNotifier pushes notifications to attached UI clients through the event
// hub. When no client is attached the alert cannot be shown, so it degrades
// to a log entry, mirroring the denied-permission path of the original app.
type HubNotifier struct {
	hub *events.Hub
	log *events.Log
}

func New(hub *events.Hub, log *events.Log) *HubNotifier {
	return &HubNotifier{hub: hub, log: log}
}

func (n *HubNotifier) Notify(title, body string) {
	delivered := n.hub.Broadcast(events.Event{Type: "notification", Title: title, Message: body})
	if delivered == 0 {
		n.log.Append("Tried to send notification but was unable to.")
	}
}
