package mail

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// Dialer is the part of gomail.Dialer the gateway uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPGateway sends through a plain SMTP relay. It has no inbox, so thread
// subjects and inbound replies are not available.
type SMTPGateway struct {
	From   string
	Domain string
	dialer Dialer
}

func NewSMTPGateway(host string, port int, user, password, from string) *SMTPGateway {
	return &SMTPGateway{
		From:   from,
		Domain: domainOf(from),
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// NewSMTPGatewayWithDialer is used by tests and by callers with a custom transport.
func NewSMTPGatewayWithDialer(from string, d Dialer) *SMTPGateway {
	return &SMTPGateway{From: from, Domain: domainOf(from), dialer: d}
}

func (g *SMTPGateway) IsAuthenticated(ctx context.Context) bool {
	return g.dialer != nil && g.From != ""
}

// Send returns the generated Message-ID, which doubles as the thread id.
func (g *SMTPGateway) Send(ctx context.Context, email entity.OutgoingEmail) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), g.Domain)
	threadID := messageID
	if email.ThreadID != "" {
		threadID = email.ThreadID
	}

	m := NewMessage(g.From, email, messageID, email.ThreadID)
	if err := g.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	log.Printf("📧 [SMTP] email enviado para %s", email.To)
	return threadID, nil
}

func (g *SMTPGateway) ThreadSubject(ctx context.Context, threadID string) (string, error) {
	return "", nil
}

func (g *SMTPGateway) Profile(ctx context.Context) (string, error) {
	return g.From, nil
}

func (g *SMTPGateway) FetchReplies(ctx context.Context, since time.Time) ([]entity.Reply, error) {
	return nil, nil
}

func (g *SMTPGateway) Logout(ctx context.Context) error {
	return nil
}

func domainOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return strings.Trim(address[i+1:], "> ")
	}
	return "localhost"
}
