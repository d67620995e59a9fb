package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// NewMessage builds a plain text message. When inReplyTo is set the threading
// headers are added so mail clients group it with the original.
func NewMessage(from string, email entity.OutgoingEmail, messageID, inReplyTo string) *gomail.Message {
	m := gomail.NewMessage()
	if from != "" {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	if messageID != "" {
		m.SetHeader("Message-ID", messageID)
	}
	if inReplyTo != "" {
		m.SetHeader("In-Reply-To", inReplyTo)
		m.SetHeader("References", inReplyTo)
	}
	m.SetBody("text/plain", email.Body)
	return m
}

// EncodeRaw renders the message as RFC 2822 and encodes it base64url, the form
// the Gmail API expects in Message.Raw.
func EncodeRaw(m *gomail.Message) (string, error) {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("erro ao serializar mensagem: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}
