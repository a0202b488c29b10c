package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TopicJobs = "jobs"

	EventJobPosted           = "job_posted"
	EventApplicationReceived = "application_received"
)

func HRTopic(hrID uuid.UUID) string {
	return "hr:" + hrID.String()
}

type Event struct {
	Type      string `json:"type"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

type JobPosted struct {
	JobID       uuid.UUID `json:"job_id"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
}

type ApplicationReceived struct {
	JobID        uuid.UUID `json:"job_id"`
	JobTitle     string    `json:"job_title"`
	UserID       uuid.UUID `json:"user_id"`
	MatchPercent float64   `json:"match_percent"`
}

// Notifier publishes domain events to websocket subscribers. A nil Notifier
// drops everything.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) JobPosted(evt JobPosted) {
	n.publish(TopicJobs, EventJobPosted, evt)
}

func (n *Notifier) ApplicationReceived(hrID uuid.UUID, evt ApplicationReceived) {
	n.publish(HRTopic(hrID), EventApplicationReceived, evt)
}

func (n *Notifier) publish(topic, typ string, data any) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(Event{Type: typ, Data: data, Timestamp: n.now().UTC().Format(time.RFC3339)})
	if err != nil {
		return
	}
	n.hub.Publish(topic, b)
}
