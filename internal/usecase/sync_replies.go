package usecase

import (
	"context"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// SyncRepliesUseCase pulls inbound replies from the mailbox, records the new ones
// and flags the sender's lead as replied.
type SyncRepliesUseCase struct {
	Mail     MailGateway
	Emails   *EmailUseCase
	Leads    *LeadUseCase
	Lookback time.Duration
	Now      func() time.Time
}

func NewSyncRepliesUseCase(mailGateway MailGateway, emails *EmailUseCase, leads *LeadUseCase) *SyncRepliesUseCase {
	return &SyncRepliesUseCase{
		Mail:     mailGateway,
		Emails:   emails,
		Leads:    leads,
		Lookback: 30 * 24 * time.Hour,
		Now:      time.Now,
	}
}

// Execute returns the number of new replies. An unauthenticated mailbox is not an error.
func (uc *SyncRepliesUseCase) Execute(ctx context.Context) (int, error) {
	if uc.Mail == nil || !uc.Mail.IsAuthenticated(ctx) {
		return 0, nil
	}

	incoming, err := uc.Mail.FetchReplies(ctx, uc.Now().Add(-uc.Lookback))
	if err != nil {
		return 0, upstream("mail gateway", err)
	}

	recorded, err := uc.Emails.Replies.Load(ctx)
	if err != nil {
		return 0, storageFailure("load replies", err)
	}
	var pending []entity.Reply
	for _, r := range incoming {
		if containsReply(recorded, r) || containsReply(pending, r) {
			continue
		}
		pending = append(pending, r)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	// Leads primeiro: se falhar, nada é gravado e o próximo sync tenta de novo.
	for _, r := range pending {
		address := senderAddress(r.From)
		n, err := uc.Leads.MarkReplied(ctx, address)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			log.Printf("💬 [REPLIES] %s respondeu, %d lead(s) marcado(s)", address, n)
		}
	}

	fresh, err := uc.Emails.RecordInboundReplies(ctx, pending)
	if err != nil {
		return 0, err
	}
	return len(fresh), nil
}

// senderAddress extracts a@b from `Name <a@b>`; unparsable input is returned trimmed.
func senderAddress(from string) string {
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return strings.TrimSpace(from)
	}
	return addr.Address
}
