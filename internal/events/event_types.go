package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/resolvehub/issue-desk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated  EventType = "issue_created"
	EventIssueResolved EventType = "issue_resolved"
)

// Actor identifies who triggered an event.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	IssueID   string    `json:"issue_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, issueID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		IssueID:   issueID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	Title   string              `json:"title"`
	Urgency domain.IssueUrgency `json:"urgency"`
	College string              `json:"college"`
}

// IssueResolvedPayload payload.
type IssueResolvedPayload struct {
	ResolvedBy      string `json:"resolved_by"`
	ResponsePreview string `json:"response_preview"`
}
