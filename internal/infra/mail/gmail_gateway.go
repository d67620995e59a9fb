package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/xavierca1/mailmorph/internal/entity"
)

const gmailUser = "me"

var ErrNoToken = errors.New("gmail token not found")

// GmailGateway talks to the Gmail API with the OAuth token stored at TokenPath.
// The mailbox counts as authenticated while that file holds a usable token.
type GmailGateway struct {
	TokenPath        string
	ClientSecretPath string

	mu  sync.Mutex
	svc *gmail.Service
}

func NewGmailGateway(tokenPath, clientSecretPath string) *GmailGateway {
	return &GmailGateway{TokenPath: tokenPath, ClientSecretPath: clientSecretPath}
}

func (g *GmailGateway) IsAuthenticated(ctx context.Context) bool {
	tok, err := LoadToken(g.TokenPath)
	if err != nil {
		return false
	}
	return tok.Valid() || tok.RefreshToken != ""
}

func (g *GmailGateway) service(ctx context.Context) (*gmail.Service, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.svc != nil {
		return g.svc, nil
	}

	tok, err := LoadToken(g.TokenPath)
	if err != nil {
		return nil, err
	}

	var ts oauth2.TokenSource = oauth2.StaticTokenSource(tok)
	if secret, err := os.ReadFile(g.ClientSecretPath); err == nil {
		cfg, err := google.ConfigFromJSON(secret, gmail.GmailSendScope, gmail.GmailReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("invalid gmail client secret: %w", err)
		}
		// context.Background: the token source outlives the request that created it.
		ts = cfg.TokenSource(context.Background(), tok)
	} else {
		log.Printf("⚠️ [GMAIL] client secret ilegível (%v), token não será renovado", err)
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	g.svc = svc
	return svc, nil
}

func (g *GmailGateway) Send(ctx context.Context, email entity.OutgoingEmail) (string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return "", err
	}

	raw, err := EncodeRaw(NewMessage("", email, "", ""))
	if err != nil {
		return "", err
	}

	sent, err := svc.Users.Messages.Send(gmailUser, &gmail.Message{Raw: raw, ThreadId: email.ThreadID}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail send failed: %w", err)
	}

	log.Printf("📧 [GMAIL] email enviado para %s (thread %s)", email.To, sent.ThreadId)
	return sent.ThreadId, nil
}

// ThreadSubject returns the Subject header of the first message in the thread.
func (g *GmailGateway) ThreadSubject(ctx context.Context, threadID string) (string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return "", err
	}

	thread, err := svc.Users.Threads.Get(gmailUser, threadID).
		Format("metadata").
		MetadataHeaders("Subject").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("gmail thread lookup failed: %w", err)
	}
	if len(thread.Messages) == 0 {
		return "", nil
	}
	return HeaderValue(thread.Messages[0].Payload, "Subject"), nil
}

func (g *GmailGateway) Profile(ctx context.Context) (string, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return "", err
	}
	profile, err := svc.Users.GetProfile(gmailUser).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gmail profile lookup failed: %w", err)
	}
	return profile.EmailAddress, nil
}

// FetchReplies lists inbox messages received after since, skipping the ones the
// mailbox sent to itself.
func (g *GmailGateway) FetchReplies(ctx context.Context, since time.Time) ([]entity.Reply, error) {
	svc, err := g.service(ctx)
	if err != nil {
		return nil, err
	}

	self, err := g.Profile(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("in:inbox after:%d", since.Unix())
	list, err := svc.Users.Messages.List(gmailUser).Q(query).MaxResults(100).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail list failed: %w", err)
	}

	replies := make([]entity.Reply, 0, len(list.Messages))
	for _, ref := range list.Messages {
		msg, err := svc.Users.Messages.Get(gmailUser, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			log.Printf("⚠️ [GMAIL] pulando mensagem %s: %v", ref.Id, err)
			continue
		}

		from := HeaderValue(msg.Payload, "From")
		if self != "" && strings.Contains(strings.ToLower(from), strings.ToLower(self)) {
			continue
		}

		replies = append(replies, entity.Reply{
			From:      from,
			Subject:   HeaderValue(msg.Payload, "Subject"),
			Body:      PlainTextBody(msg.Payload),
			ThreadID:  msg.ThreadId,
			Timestamp: entity.NewTimestamp(time.UnixMilli(msg.InternalDate)),
		})
	}
	return replies, nil
}

// Logout forgets the stored token. A missing token is not an error.
func (g *GmailGateway) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.svc = nil
	if err := os.Remove(g.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove gmail token: %w", err)
	}
	log.Printf("🔒 [GMAIL] token removido, caixa desconectada")
	return nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("invalid gmail token file: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, ErrNoToken
	}
	return &tok, nil
}

func HeaderValue(part *gmail.MessagePart, name string) string {
	if part == nil {
		return ""
	}
	for _, h := range part.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// PlainTextBody returns the first text/plain part, falling back to the top level body.
func PlainTextBody(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}
	if text, ok := findPlainText(part); ok {
		return text
	}
	if part.Body != nil {
		return decodeBody(part.Body.Data)
	}
	return ""
}

func findPlainText(part *gmail.MessagePart) (string, bool) {
	if strings.HasPrefix(part.MimeType, "text/plain") && part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body.Data), true
	}
	for _, child := range part.Parts {
		if text, ok := findPlainText(child); ok {
			return text, true
		}
	}
	return "", false
}

func decodeBody(data string) string {
	if data == "" {
		return ""
	}
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(b)
	}
	if b, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(b)
	}
	return ""
}
