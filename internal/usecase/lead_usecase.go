package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/mailmorph/internal/entity"
)

type LeadUseCase struct {
	Leads  Collection[entity.Lead]
	Mail   MailGateway
	Drafts *DraftUseCase
	Events EventPublisher
	Now    func() time.Time
}

func NewLeadUseCase(
	leads Collection[entity.Lead],
	mail MailGateway,
	drafts *DraftUseCase,
	events EventPublisher,
) *LeadUseCase {
	return &LeadUseCase{
		Leads:  leads,
		Mail:   mail,
		Drafts: drafts,
		Events: events,
		Now:    time.Now,
	}
}

// Add appends a lead with id = count + 1. Email format and duplicates are not checked.
func (uc *LeadUseCase) Add(ctx context.Context, input AddLeadInput) (*entity.Lead, error) {
	if input.Score.Kind() == entity.ScoreText {
		return nil, validationFailed([]ValidationError{{"score", "must be a number or Hot, Warm, Cold"}})
	}

	lead := entity.Lead{
		Name:    input.Name,
		Email:   input.Email,
		Company: input.Company,
		Role:    input.Role,
		Score:   input.Score,
		Status:  entity.LeadStatus(input.Status),
		Opened:  input.Opened,
		Clicked: input.Clicked,
		Replied: input.Replied,
	}
	lead.ApplyDefaults()

	err := uc.Leads.Update(ctx, func(leads []entity.Lead) ([]entity.Lead, error) {
		lead.ID = len(leads) + 1
		return append(leads, lead), nil
	})
	if err != nil {
		return nil, storageFailure("save lead", err)
	}

	log.Printf("✅ [LEADS] lead %d adicionado (%s)", lead.ID, lead.Email)
	return &lead, nil
}

func (uc *LeadUseCase) List(ctx context.Context) ([]entity.Lead, error) {
	leads, err := uc.Leads.Load(ctx)
	if err != nil {
		return nil, storageFailure("load leads", err)
	}
	return leads, nil
}

// Delete removes the lead and renumbers the survivors 1..N-1 in their current order.
// Ids are positions, so an id held by a client may point to another lead afterwards.
func (uc *LeadUseCase) Delete(ctx context.Context, id int) error {
	var missing bool
	err := uc.Leads.Update(ctx, func(leads []entity.Lead) ([]entity.Lead, error) {
		idx := -1
		for i, l := range leads {
			if l.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			missing = true
			return nil, nil
		}

		remaining := make([]entity.Lead, 0, len(leads)-1)
		remaining = append(remaining, leads[:idx]...)
		remaining = append(remaining, leads[idx+1:]...)
		for i := range remaining {
			remaining[i].ID = i + 1
		}
		return remaining, nil
	})
	if err != nil {
		return storageFailure("delete lead", err)
	}
	if missing {
		return notFound("LEAD_NOT_FOUND", "Lead not found")
	}

	log.Printf("🗑️ [LEADS] lead %d removido, leads restantes renumerados", id)
	return nil
}

// FollowUp contacts every lead still in status new and returns how many were updated.
//
// A lead is marked contacted even when the mailbox is not authenticated and nothing
// was sent. That mirrors the product behaviour ("attempted" counts as "contacted")
// and is logged for every lead it happens to.
func (uc *LeadUseCase) FollowUp(ctx context.Context) (int, error) {
	authenticated := uc.Mail != nil && uc.Mail.IsAuthenticated(ctx)
	if !authenticated {
		log.Printf("⚠️ [FOLLOWUP] caixa não autenticada: leads serão marcados como contatados sem envio")
	}

	var contacted []entity.Lead
	err := uc.Leads.Update(ctx, func(leads []entity.Lead) ([]entity.Lead, error) {
		for i := range leads {
			if leads[i].Status != entity.LeadStatusNew {
				continue
			}
			if err := ctx.Err(); err != nil {
				return leads, err
			}

			lead := &leads[i]
			subject := fmt.Sprintf("Hi %s, just following up", lead.DisplayName())
			company := lead.CompanyOr("your company")
			offer := fmt.Sprintf("services we can offer to %s", company)
			body := uc.Drafts.GenerateEmail(ctx, company, offer)

			if authenticated {
				_, err := uc.Mail.Send(ctx, entity.OutgoingEmail{To: lead.Email, Subject: subject, Body: body})
				if err != nil {
					return leads, upstream("mail gateway", err)
				}
			} else {
				log.Printf("⚠️ [FOLLOWUP] lead %d (%s) marcado como contatado, envio pulado", lead.ID, lead.Email)
			}

			lead.MarkContacted(uc.Now())
			contacted = append(contacted, *lead)
		}
		return leads, nil
	})

	for _, lead := range contacted {
		ev := entity.NewActivityEvent(entity.ActivityLeadContacted, lead.Email, "", uc.Now())
		ev.LeadID = lead.ID
		publish(ctx, uc.Events, ev)
	}

	if err != nil {
		if IsDomainError(err) {
			return len(contacted), err
		}
		return len(contacted), storageFailure("save follow-ups", err)
	}

	log.Printf("📬 [FOLLOWUP] %d lead(s) movido(s) para contatado", len(contacted))
	return len(contacted), nil
}

// FollowUpOne sends a single follow-up and marks the first lead with that email contacted.
// Unlike FollowUp it refuses to run without an authenticated mailbox.
func (uc *LeadUseCase) FollowUpOne(ctx context.Context, input FollowUpInput) error {
	if uc.Mail == nil || !uc.Mail.IsAuthenticated(ctx) {
		return unauthenticated()
	}

	body := uc.Drafts.GenerateFollowup(ctx, input.Name, input.Company)
	subject := strings.TrimSpace("Following up with you, " + input.Name)

	threadID, err := uc.Mail.Send(ctx, entity.OutgoingEmail{To: input.Email, Subject: subject, Body: body})
	if err != nil {
		return upstream("mail gateway", err)
	}

	leadID := 0
	err = uc.Leads.Update(ctx, func(leads []entity.Lead) ([]entity.Lead, error) {
		for i := range leads {
			if leads[i].Email == input.Email {
				leads[i].MarkContacted(uc.Now())
				leadID = leads[i].ID
				return leads, nil
			}
		}
		return nil, nil
	})
	if err != nil {
		return storageFailure("save follow-up", err)
	}

	ev := entity.NewActivityEvent(entity.ActivityLeadContacted, input.Email, threadID, uc.Now())
	ev.LeadID = leadID
	publish(ctx, uc.Events, ev)
	return nil
}

// Score overwrites every lead's score with its temperature label and returns the collection.
func (uc *LeadUseCase) Score(ctx context.Context) ([]entity.Lead, error) {
	var scored []entity.Lead
	err := uc.Leads.Update(ctx, func(leads []entity.Lead) ([]entity.Lead, error) {
		for i := range leads {
			leads[i].Score = entity.LabelScore(ScoreLabel(leads[i]))
		}
		scored = make([]entity.Lead, len(leads))
		copy(scored, leads)
		return leads, nil
	})
	if err != nil {
		return nil, storageFailure("save scores", err)
	}
	return scored, nil
}

// MarkReplied flags every lead with this address as replied. Returns how many changed.
func (uc *LeadUseCase) MarkReplied(ctx context.Context, email string) (int, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, nil
	}

	changed := 0
	err := uc.Leads.Update(ctx, func(leads []entity.Lead) ([]entity.Lead, error) {
		for i := range leads {
			if strings.EqualFold(leads[i].Email, email) && !leads[i].Replied {
				leads[i].Replied = true
				changed++
			}
		}
		if changed == 0 {
			return nil, nil
		}
		return leads, nil
	})
	if err != nil {
		return 0, storageFailure("mark lead replied", err)
	}
	return changed, nil
}
