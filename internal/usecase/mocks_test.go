package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/mailmorph/internal/entity"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// MockMailGateway
type MockMailGateway struct {
	mock.Mock
}

func (m *MockMailGateway) IsAuthenticated(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockMailGateway) Send(ctx context.Context, msg entity.OutgoingEmail) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func (m *MockMailGateway) ThreadSubject(ctx context.Context, threadID string) (string, error) {
	args := m.Called(ctx, threadID)
	return args.String(0), args.Error(1)
}

func (m *MockMailGateway) Profile(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockMailGateway) FetchReplies(ctx context.Context, since time.Time) ([]entity.Reply, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Reply), args.Error(1)
}

func (m *MockMailGateway) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDraftGenerator
type MockDraftGenerator struct {
	mock.Mock
}

func (m *MockDraftGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockFileStorage
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, key string, data io.Reader) (string, error) {
	args := m.Called(ctx, key, data)
	return args.String(0), args.Error(1)
}

// MockStripeGateway
type MockStripeGateway struct {
	mock.Mock
}

func (m *MockStripeGateway) CreateCheckoutSession(ctx context.Context, email string, items []entity.CheckoutItem) (string, error) {
	args := m.Called(ctx, email, items)
	return args.String(0), args.Error(1)
}

// MockPolarGateway
type MockPolarGateway struct {
	mock.Mock
}

func (m *MockPolarGateway) CreateCheckout(ctx context.Context, productID, email string) (map[string]any, error) {
	args := m.Called(ctx, productID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// recordingPublisher keeps every published event in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.ActivityEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, ev entity.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []entity.ActivityType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.ActivityType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
