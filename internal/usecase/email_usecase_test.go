package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/infra/database"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

type emailFixture struct {
	uc      *usecase.EmailUseCase
	sent    *database.Collection[entity.SentEmail]
	replies *database.Collection[entity.Reply]
	mail    *MockMailGateway
	events  *recordingPublisher
}

func newEmailFixture(t *testing.T) *emailFixture {
	t.Helper()
	store := database.NewMemoryBlobStore()
	f := &emailFixture{
		sent:    database.NewSentEmailRepository(store),
		replies: database.NewReplyRepository(store),
		mail:    new(MockMailGateway),
		events:  &recordingPublisher{},
	}
	f.uc = usecase.NewEmailUseCase(f.mail, f.sent, f.replies, f.events)
	f.uc.Now = clock
	return f
}

func (f *emailFixture) sentItems(t *testing.T) []entity.SentEmail {
	t.Helper()
	items, err := f.sent.Load(context.Background())
	require.NoError(t, err)
	return items
}

// ============ TESTES DE ENVIO ============

// TestSendUnauthenticated - Sem mailbox autenticada nada é enviado nem gravado
func TestSendUnauthenticated(t *testing.T) {
	f := newEmailFixture(t)
	f.mail.On("IsAuthenticated", mock.Anything).Return(false)

	_, err := f.uc.Send(context.Background(), usecase.SendEmailInput{To: "a@x.com"})

	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
	assert.Empty(t, f.sentItems(t))
}

// TestSendRecordsSentEmail - Envio grava o registro e publica email.sent
func TestSendRecordsSentEmail(t *testing.T) {
	f := newEmailFixture(t)
	f.mail.On("IsAuthenticated", mock.Anything).Return(true)
	f.mail.On("Send", mock.Anything, entity.OutgoingEmail{To: "a@x.com", Subject: "Hi", Body: "Hello"}).Return("thr-1", nil)

	threadID, err := f.uc.Send(context.Background(), usecase.SendEmailInput{To: "a@x.com", Subject: "Hi", Body: "Hello"})

	require.NoError(t, err)
	assert.Equal(t, "thr-1", threadID)

	items := f.sentItems(t)
	require.Len(t, items, 1)
	assert.Equal(t, "thr-1", items[0].ThreadID)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, []string{}, items[0].Tags)
	assert.True(t, items[0].Timestamp.Equal(fixedNow))
	assert.Equal(t, []entity.ActivityType{entity.ActivityEmailSent}, f.events.types())
}

// TestBulkSendStopsAtFirstFailure - Segundo envio falha: 1 registro, terceiro nunca tentado
func TestBulkSendStopsAtFirstFailure(t *testing.T) {
	f := newEmailFixture(t)
	f.mail.On("IsAuthenticated", mock.Anything).Return(true)
	f.mail.On("Send", mock.Anything, mock.MatchedBy(func(m entity.OutgoingEmail) bool { return m.To == "one@x.com" })).Return("t1", nil)
	f.mail.On("Send", mock.Anything, mock.MatchedBy(func(m entity.OutgoingEmail) bool { return m.To == "two@x.com" })).Return("", errors.New("smtp 550"))
	f.mail.On("Send", mock.Anything, mock.MatchedBy(func(m entity.OutgoingEmail) bool { return m.To == "three@x.com" })).Return("t3", nil)

	sent, err := f.uc.BulkSend(context.Background(), usecase.BulkSendInput{
		To:      []string{"one@x.com", "two@x.com", "three@x.com"},
		Subject: "Launch",
		Body:    "News",
	})

	assert.ErrorIs(t, err, entity.ErrUpstream)
	assert.Nil(t, sent)

	items := f.sentItems(t)
	require.Len(t, items, 1)
	assert.Equal(t, "one@x.com", items[0].To)
	f.mail.AssertNumberOfCalls(t, "Send", 2)
}

// TestBulkSendAllSucceed - Retorna to + threadId por destinatário, sem dedup
func TestBulkSendAllSucceed(t *testing.T) {
	f := newEmailFixture(t)
	f.mail.On("IsAuthenticated", mock.Anything).Return(true)
	f.mail.On("Send", mock.Anything, mock.Anything).Return("t", nil)

	sent, err := f.uc.BulkSend(context.Background(), usecase.BulkSendInput{
		To:      []string{"a@x.com", "a@x.com"},
		Subject: "S",
		Body:    "B",
	})

	require.NoError(t, err)
	assert.Equal(t, []usecase.SentThread{{To: "a@x.com", ThreadID: "t"}, {To: "a@x.com", ThreadID: "t"}}, sent)
	assert.Len(t, f.sentItems(t), 2)
}

func TestBulkSendValidation(t *testing.T) {
	f := newEmailFixture(t)

	_, err := f.uc.BulkSend(context.Background(), usecase.BulkSendInput{})

	assert.ErrorIs(t, err, entity.ErrValidation)
	f.mail.AssertNotCalled(t, "IsAuthenticated", mock.Anything)
}

// ============ TESTES DE RESPOSTA ============

// TestReplyUsesThreadSubject - Assunto vira "Re: <assunto original>"
func TestReplyUsesThreadSubject(t *testing.T) {
	f := newEmailFixture(t)
	f.mail.On("IsAuthenticated", mock.Anything).Return(true)
	f.mail.On("ThreadSubject", mock.Anything, "thr-9").Return("Proposal", nil)
	f.mail.On("Send", mock.Anything, entity.OutgoingEmail{
		To: "a@x.com", Subject: "Re: Proposal", Body: "Sounds good", ThreadID: "thr-9",
	}).Return("thr-9", nil)

	err := f.uc.Reply(context.Background(), usecase.ReplyInput{ThreadID: "thr-9", To: "a@x.com", Body: "Sounds good"})
	require.NoError(t, err)

	replies, err := f.replies.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "me", replies[0].From)
	assert.Equal(t, "Re: Proposal", replies[0].Subject)
	assert.Equal(t, "thr-9", replies[0].ThreadID)
}

// TestReplyEmptyThreadSubject - Thread sem assunto gera "Re:"
func TestReplyEmptyThreadSubject(t *testing.T) {
	f := newEmailFixture(t)
	f.mail.On("IsAuthenticated", mock.Anything).Return(true)
	f.mail.On("ThreadSubject", mock.Anything, "thr-0").Return("", nil)
	f.mail.On("Send", mock.Anything, mock.Anything).Return("thr-0", nil)

	require.NoError(t, f.uc.Reply(context.Background(), usecase.ReplyInput{ThreadID: "thr-0", To: "a@x.com"}))

	sent := f.mail.Calls[2].Arguments.Get(1).(entity.OutgoingEmail)
	assert.Equal(t, "Re:", sent.Subject)
}

// ============ TESTES DE LOG DE ENVIADOS ============

// TestLatestSentNewestFirst - Dez mais recentes, do mais novo para o mais antigo
func TestLatestSentNewestFirst(t *testing.T) {
	f := newEmailFixture(t)
	var items []entity.SentEmail
	for i := 0; i < 12; i++ {
		items = append(items, entity.NewSentEmail(fmt.Sprintf("%d@x.com", i), "s", "b", fmt.Sprintf("t%d", i), fixedNow.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, f.sent.Save(context.Background(), items))

	latest, err := f.uc.LatestSent(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, latest, 10)
	assert.Equal(t, "t11", latest[0].ThreadID)
	assert.Equal(t, "t2", latest[9].ThreadID)
}

// TestTagAndDeleteSent - Tag substitui as tags; thread desconhecida é NotFound
func TestTagAndDeleteSent(t *testing.T) {
	f := newEmailFixture(t)
	require.NoError(t, f.sent.Save(context.Background(), []entity.SentEmail{
		entity.NewSentEmail("a@x.com", "s", "b", "thr-1", fixedNow),
		entity.NewSentEmail("b@x.com", "s", "b", "thr-1", fixedNow),
		entity.NewSentEmail("c@x.com", "s", "b", "thr-2", fixedNow),
	}))
	ctx := context.Background()

	tagged, err := f.uc.Tag(ctx, "thr-1", []string{"hot", "q3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hot", "q3"}, tagged.Tags)
	assert.Equal(t, "a@x.com", tagged.To)

	_, err = f.uc.Tag(ctx, "missing", []string{"x"})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, f.uc.DeleteSent(ctx, "thr-1"))
	items := f.sentItems(t)
	require.Len(t, items, 1)
	assert.Equal(t, "thr-2", items[0].ThreadID)

	assert.ErrorIs(t, f.uc.DeleteSent(ctx, "thr-1"), entity.ErrNotFound)
}

// ============ TESTES DE RESPOSTAS RECEBIDAS ============

// TestRecordInboundRepliesDedupes - Respostas repetidas são ignoradas e anexadas ao envio
func TestRecordInboundRepliesDedupes(t *testing.T) {
	f := newEmailFixture(t)
	require.NoError(t, f.sent.Save(context.Background(), []entity.SentEmail{
		entity.NewSentEmail("ana@corp.com", "Proposal", "b", "thr-1", fixedNow),
	}))
	incoming := []entity.Reply{
		{From: "Ana <ana@corp.com>", Subject: "Re: Proposal", ThreadID: "thr-1", Body: "yes"},
		{From: "Ana <ana@corp.com>", Subject: "Re: Proposal", ThreadID: "thr-1", Body: "yes"},
		{From: "bob@corp.com", Subject: "Hello", ThreadID: "thr-7"},
	}

	fresh, err := f.uc.RecordInboundReplies(context.Background(), incoming)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	again, err := f.uc.RecordInboundReplies(context.Background(), incoming)
	require.NoError(t, err)
	assert.Empty(t, again)

	replies, _ := f.replies.Load(context.Background())
	assert.Len(t, replies, 2)

	sent := f.sentItems(t)
	require.Len(t, sent[0].Replies, 1)
	assert.Equal(t, "yes", sent[0].Replies[0].Body)
	assert.Equal(t, []entity.ActivityType{entity.ActivityEmailReplied, entity.ActivityEmailReplied}, f.events.types())
}
