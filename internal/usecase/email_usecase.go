package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// EmailUseCase is the outbox: sends, threaded replies and the sent/reply logs.
type EmailUseCase struct {
	Mail    MailGateway
	Sent    Collection[entity.SentEmail]
	Replies Collection[entity.Reply]
	Events  EventPublisher
	Now     func() time.Time
}

func NewEmailUseCase(
	mail MailGateway,
	sent Collection[entity.SentEmail],
	replies Collection[entity.Reply],
	events EventPublisher,
) *EmailUseCase {
	return &EmailUseCase{
		Mail:    mail,
		Sent:    sent,
		Replies: replies,
		Events:  events,
		Now:     time.Now,
	}
}

func (uc *EmailUseCase) authenticated(ctx context.Context) bool {
	return uc.Mail != nil && uc.Mail.IsAuthenticated(ctx)
}

func (uc *EmailUseCase) Send(ctx context.Context, input SendEmailInput) (string, error) {
	if !uc.authenticated(ctx) {
		return "", unauthenticated()
	}
	return uc.sendAndRecord(ctx, input.To, input.Subject, input.Body)
}

// BulkSend sends to each recipient in order and records each send right after it
// succeeds. The first failure stops the batch; earlier sends are neither reported
// nor rolled back.
func (uc *EmailUseCase) BulkSend(ctx context.Context, input BulkSendInput) ([]SentThread, error) {
	if err := validationFailed(ValidateBulkSendInput(input)); err != nil {
		return nil, err
	}
	if !uc.authenticated(ctx) {
		return nil, unauthenticated()
	}

	sent := make([]SentThread, 0, len(input.To))
	for _, recipient := range input.To {
		threadID, err := uc.sendAndRecord(ctx, recipient, input.Subject, input.Body)
		if err != nil {
			log.Printf("❌ [BULK] parou após %d/%d envios: %v", len(sent), len(input.To), err)
			return nil, err
		}
		sent = append(sent, SentThread{To: recipient, ThreadID: threadID})
	}

	log.Printf("📤 [BULK] %d email(s) enviado(s)", len(sent))
	return sent, nil
}

func (uc *EmailUseCase) sendAndRecord(ctx context.Context, to, subject, body string) (string, error) {
	threadID, err := uc.Mail.Send(ctx, entity.OutgoingEmail{To: to, Subject: subject, Body: body})
	if err != nil {
		return "", upstream("mail gateway", err)
	}

	record := entity.NewSentEmail(to, subject, body, threadID, uc.Now())
	err = uc.Sent.Update(ctx, func(items []entity.SentEmail) ([]entity.SentEmail, error) {
		return append(items, record), nil
	})
	if err != nil {
		return "", storageFailure("record sent email", err)
	}

	publish(ctx, uc.Events, entity.NewActivityEvent(entity.ActivityEmailSent, to, threadID, uc.Now()))
	return threadID, nil
}

// Reply answers inside an existing thread with "Re: <first message subject>".
func (uc *EmailUseCase) Reply(ctx context.Context, input ReplyInput) error {
	if !uc.authenticated(ctx) {
		return unauthenticated()
	}

	original, err := uc.Mail.ThreadSubject(ctx, input.ThreadID)
	if err != nil {
		return upstream("mail gateway", err)
	}
	subject := strings.TrimSpace("Re: " + original)

	_, err = uc.Mail.Send(ctx, entity.OutgoingEmail{
		To:       input.To,
		Subject:  subject,
		Body:     input.Body,
		ThreadID: input.ThreadID,
	})
	if err != nil {
		return upstream("mail gateway", err)
	}

	reply := entity.Reply{
		From:      "me",
		Subject:   subject,
		Body:      input.Body,
		ThreadID:  input.ThreadID,
		Timestamp: entity.NewTimestamp(uc.Now()),
	}
	err = uc.Replies.Update(ctx, func(items []entity.Reply) ([]entity.Reply, error) {
		return append(items, reply), nil
	})
	if err != nil {
		return storageFailure("record reply", err)
	}
	return nil
}

func (uc *EmailUseCase) ListSent(ctx context.Context) ([]entity.SentEmail, error) {
	items, err := uc.Sent.Load(ctx)
	if err != nil {
		return nil, storageFailure("load sent emails", err)
	}
	return items, nil
}

func (uc *EmailUseCase) ListReplies(ctx context.Context) ([]entity.Reply, error) {
	items, err := uc.Replies.Load(ctx)
	if err != nil {
		return nil, storageFailure("load replies", err)
	}
	return items, nil
}

// LatestSent returns the n most recent sent emails, newest first.
func (uc *EmailUseCase) LatestSent(ctx context.Context, n int) ([]entity.SentEmail, error) {
	items, err := uc.ListSent(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp.Time)
	})
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

// Tag replaces the tags of the first sent email in the thread.
func (uc *EmailUseCase) Tag(ctx context.Context, threadID string, tags []string) (*entity.SentEmail, error) {
	if tags == nil {
		tags = []string{}
	}

	var tagged *entity.SentEmail
	err := uc.Sent.Update(ctx, func(items []entity.SentEmail) ([]entity.SentEmail, error) {
		for i := range items {
			if items[i].ThreadID == threadID {
				items[i].Tags = tags
				e := items[i]
				tagged = &e
				return items, nil
			}
		}
		return nil, nil
	})
	if err != nil {
		return nil, storageFailure("tag email", err)
	}
	if tagged == nil {
		return nil, notFound("EMAIL_NOT_FOUND", "Email not found")
	}
	return tagged, nil
}

// DeleteSent drops every sent email recorded for the thread.
func (uc *EmailUseCase) DeleteSent(ctx context.Context, threadID string) error {
	var removed int
	err := uc.Sent.Update(ctx, func(items []entity.SentEmail) ([]entity.SentEmail, error) {
		kept := make([]entity.SentEmail, 0, len(items))
		for _, e := range items {
			if e.ThreadID == threadID {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		if removed == 0 {
			return nil, nil
		}
		return kept, nil
	})
	if err != nil {
		return storageFailure("delete email", err)
	}
	if removed == 0 {
		return notFound("EMAIL_NOT_FOUND", "Email not found")
	}
	return nil
}

// RecordInboundReplies appends replies not seen before, attaches them to the matching
// sent email, and returns only the new ones.
func (uc *EmailUseCase) RecordInboundReplies(ctx context.Context, incoming []entity.Reply) ([]entity.Reply, error) {
	var fresh []entity.Reply
	err := uc.Replies.Update(ctx, func(items []entity.Reply) ([]entity.Reply, error) {
		for _, r := range incoming {
			if containsReply(items, r) || containsReply(fresh, r) {
				continue
			}
			fresh = append(fresh, r)
		}
		if len(fresh) == 0 {
			return nil, nil
		}
		return append(items, fresh...), nil
	})
	if err != nil {
		return nil, storageFailure("record inbound replies", err)
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	err = uc.Sent.Update(ctx, func(items []entity.SentEmail) ([]entity.SentEmail, error) {
		attached := false
		for _, r := range fresh {
			for i := range items {
				if items[i].ThreadID != "" && items[i].ThreadID == r.ThreadID {
					items[i].Replies = append(items[i].Replies, r)
					attached = true
					break
				}
			}
		}
		if !attached {
			return nil, nil
		}
		return items, nil
	})
	if err != nil {
		return nil, storageFailure("attach replies", err)
	}

	for _, r := range fresh {
		publish(ctx, uc.Events, entity.NewActivityEvent(entity.ActivityEmailReplied, r.From, r.ThreadID, uc.Now()))
	}
	return fresh, nil
}

func containsReply(items []entity.Reply, r entity.Reply) bool {
	for _, existing := range items {
		if existing.SameAs(r) {
			return true
		}
	}
	return false
}
