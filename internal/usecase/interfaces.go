package usecase

import (
	"context"
	"io"
	"time"

	"github.com/xavierca1/mailmorph/internal/entity"
)

// Collection is a whole-list store guarded for read-modify-write.
type Collection[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Update(ctx context.Context, fn func(items []T) ([]T, error)) error
}

type MailGateway interface {
	IsAuthenticated(ctx context.Context) bool
	Send(ctx context.Context, msg entity.OutgoingEmail) (threadID string, err error)
	ThreadSubject(ctx context.Context, threadID string) (string, error)
	Profile(ctx context.Context) (address string, err error)
	FetchReplies(ctx context.Context, since time.Time) ([]entity.Reply, error)
	Logout(ctx context.Context) error
}

type DraftGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.ActivityEvent) error
}

type FileStorage interface {
	Upload(ctx context.Context, key string, data io.Reader) (location string, err error)
}

type StripeGateway interface {
	CreateCheckoutSession(ctx context.Context, customerEmail string, items []entity.CheckoutItem) (url string, err error)
}

type PolarGateway interface {
	CreateCheckout(ctx context.Context, productID, customerEmail string) (map[string]any, error)
}
