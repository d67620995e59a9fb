package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutgoingEmail is what the mail gateway sends. ThreadID is set only for replies.
type OutgoingEmail struct {
	To       string
	Subject  string
	Body     string
	ThreadID string
}

type SentEmail struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	ThreadID  string    `json:"threadId"`
	Timestamp Timestamp `json:"timestamp"`
	Tags      []string  `json:"tags"`
	Replies   []Reply   `json:"replies"`
}

// NewSentEmail cria o registro de um envio com ID e listas vazias
func NewSentEmail(to, subject, body, threadID string, at time.Time) SentEmail {
	return SentEmail{
		ID:        uuid.New().String(),
		To:        to,
		Subject:   subject,
		Body:      body,
		ThreadID:  threadID,
		Timestamp: NewTimestamp(at),
		Tags:      []string{},
		Replies:   []Reply{},
	}
}

type Reply struct {
	From      string    `json:"from"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	ThreadID  string    `json:"threadId"`
	Timestamp Timestamp `json:"timestamp"`
}

// SameAs reports whether two replies describe the same inbound message.
func (r Reply) SameAs(other Reply) bool {
	return r.ThreadID == other.ThreadID && r.From == other.From && r.Subject == other.Subject
}
