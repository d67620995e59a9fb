package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	ActivityLeadContacted ActivityType = "lead.contacted"
	ActivityEmailSent     ActivityType = "email.sent"
	ActivityEmailReplied  ActivityType = "email.replied"
)

type ActivityEvent struct {
	ID         string       `json:"id"`
	Type       ActivityType `json:"type"`
	LeadID     int          `json:"lead_id,omitempty"`
	Email      string       `json:"email"`
	ThreadID   string       `json:"thread_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func NewActivityEvent(kind ActivityType, email, threadID string, at time.Time) ActivityEvent {
	return ActivityEvent{
		ID:         uuid.New().String(),
		Type:       kind,
		Email:      email,
		ThreadID:   threadID,
		OccurredAt: at.UTC(),
	}
}
