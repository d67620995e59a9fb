package entity

import (
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
)

// Lead é um contato prospectado. O ID é a posição 1-based na coleção e muda após um delete.
type Lead struct {
	ID            int        `json:"id"`
	Name          string     `json:"name,omitempty"`
	Email         string     `json:"email"`
	Company       string     `json:"company,omitempty"`
	Role          string     `json:"role,omitempty"`
	Score         Score      `json:"score"`
	LastContacted *Timestamp `json:"last_contacted,omitempty"`
	Status        LeadStatus `json:"status"`
	Opened        int        `json:"opened"`
	Clicked       int        `json:"clicked"`
	Replied       bool       `json:"replied"`
}

// ApplyDefaults fills the fields a freshly added lead must carry.
func (l *Lead) ApplyDefaults() {
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if l.Opened < 0 {
		l.Opened = 0
	}
	if l.Clicked < 0 {
		l.Clicked = 0
	}
}

// DisplayName is the greeting name, "there" when the lead has none.
func (l *Lead) DisplayName() string {
	if name := strings.TrimSpace(l.Name); name != "" {
		return name
	}
	return "there"
}

// CompanyOr returns the company or fallback when empty.
func (l *Lead) CompanyOr(fallback string) string {
	if c := strings.TrimSpace(l.Company); c != "" {
		return c
	}
	return fallback
}

// MarkContacted moves new -> contacted. It never moves a lead back to new.
func (l *Lead) MarkContacted(at time.Time) {
	l.Status = LeadStatusContacted
	t := NewTimestamp(at)
	l.LastContacted = &t
}
