package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// DraftUseCase asks the language model for email copy. It never fails: every
// method falls back to a fixed template when the generator errors.
type DraftUseCase struct {
	Generator DraftGenerator
}

func NewDraftUseCase(generator DraftGenerator) *DraftUseCase {
	return &DraftUseCase{Generator: generator}
}

func (uc *DraftUseCase) GenerateEmail(ctx context.Context, company, offer string) string {
	prompt := fmt.Sprintf(`Write a professional cold email to %s offering the following service: %s.

Requirements:
- Be professional and engaging
- Personalize to the company
- Clearly explain the value proposition
- Include a clear call to action
- Keep under 200 words`, company, offer)

	text, err := uc.generate(ctx, prompt)
	if err != nil {
		log.Printf("⚠️ [DRAFT] usando template de cold email para %q: %v", company, err)
		return FallbackColdEmail(company, offer)
	}
	return text
}

func (uc *DraftUseCase) GenerateFollowup(ctx context.Context, name, company string) string {
	if strings.TrimSpace(name) == "" {
		name = "there"
	}
	if strings.TrimSpace(company) == "" {
		company = "our company"
	}
	prompt := fmt.Sprintf("Write a polite and professional follow-up email to %s from %s.\nKeep it under 100 words.", name, company)

	text, err := uc.generate(ctx, prompt)
	if err != nil {
		log.Printf("⚠️ [DRAFT] usando template de follow-up para %q: %v", name, err)
		return FallbackFollowup(name, company)
	}
	return text
}

// GenerateSmart returns three subject line ideas and a tone for a draft.
func (uc *DraftUseCase) GenerateSmart(ctx context.Context, subject, body, recipient string) SmartEmail {
	prompt := fmt.Sprintf(`You are an expert email strategist.

Draft subject: %s
Draft body: %s
Recipient: %s

Provide:
1. Three engaging subject line suggestions (short, catchy, <50 chars)
2. Recommended tone (formal, casual, friendly, persuasive)

Answer with JSON only, in this format:
{"subjects": ["...", "...", "..."], "tone": "..."}`, subject, body, recipient)

	fallback := SmartEmail{Subjects: []string{subject, subject, subject}, Tone: "formal"}

	text, err := uc.generate(ctx, prompt)
	if err != nil {
		log.Printf("⚠️ [DRAFT] usando template de smart email: %v", err)
		return fallback
	}

	smart, err := parseSmartEmail(text)
	if err != nil {
		log.Printf("⚠️ [DRAFT] resposta de smart email ilegível: %v", err)
		return fallback
	}
	return smart
}

func (uc *DraftUseCase) generate(ctx context.Context, prompt string) (string, error) {
	if uc == nil || uc.Generator == nil {
		return "", fmt.Errorf("draft generator not configured")
	}
	text, err := uc.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty draft")
	}
	return text, nil
}

func parseSmartEmail(text string) (SmartEmail, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var smart SmartEmail
	if err := json.Unmarshal([]byte(text), &smart); err != nil {
		return SmartEmail{}, err
	}
	if len(smart.Subjects) == 0 {
		return SmartEmail{}, fmt.Errorf("no subjects in answer")
	}
	if smart.Tone == "" {
		smart.Tone = "formal"
	}
	return smart, nil
}

func FallbackColdEmail(company, offer string) string {
	return fmt.Sprintf("Subject: Partnership Opportunity with %[1]s\n\n"+
		"Dear %[1]s Team,\n\n"+
		"I hope this email finds you well. I'm reaching out to discuss a potential partnership opportunity "+
		"that could benefit %[1]s.\n\n"+
		"We offer %[2]s, which could help your organization achieve its goals more efficiently.\n\n"+
		"Would you be interested in a brief call to discuss how we might work together?\n\n"+
		"Best regards,\n[Your Name]", company, offer)
}

func FallbackFollowup(name, company string) string {
	return fmt.Sprintf("Hi %s,\n\n"+
		"I wanted to follow up on my previous note from %s. "+
		"Is there a good time this week for a quick chat?\n\n"+
		"Best regards,\n[Your Name]", name, company)
}
