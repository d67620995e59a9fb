package usecase

import (
	"io"

	"github.com/xavierca1/mailmorph/internal/entity"
)

type AddLeadInput struct {
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Company string       `json:"company"`
	Role    string       `json:"role"`
	Score   entity.Score `json:"score"`
	Status  string       `json:"status"`
	Opened  int          `json:"opened"`
	Clicked int          `json:"clicked"`
	Replied bool         `json:"replied"`
}

type FollowUpInput struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

type SendEmailInput struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type BulkSendInput struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

type SentThread struct {
	To       string `json:"to"`
	ThreadID string `json:"threadId"`
}

type ReplyInput struct {
	ThreadID string `json:"threadId"`
	To       string `json:"to"`
	Body     string `json:"body"`
}

type SmartEmail struct {
	Subjects []string `json:"subjects"`
	Tone     string   `json:"tone"`
}

type UpdateProfileInput struct {
	ID          int
	Name        string
	Bio         string
	Picture     io.Reader
	PictureName string
}

type CheckoutInput struct {
	Name    string                `json:"name"`
	Email   string                `json:"email"`
	Address string                `json:"address"`
	Items   []entity.CheckoutItem `json:"items"`
}

type PolarCheckoutInput struct {
	ProductID     string `json:"product_id"`
	CustomerEmail string `json:"customer_email"`
}
