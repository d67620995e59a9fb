package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/infra/database"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

type stubMailbox struct {
	address string
}

func (s stubMailbox) IsAuthenticated(context.Context) bool { return s.address != "" }
func (s stubMailbox) Send(context.Context, entity.OutgoingEmail) (string, error) {
	return "thr-1", nil
}
func (s stubMailbox) ThreadSubject(context.Context, string) (string, error) { return "", nil }
func (s stubMailbox) Profile(context.Context) (string, error)               { return s.address, nil }
func (s stubMailbox) FetchReplies(context.Context, time.Time) ([]entity.Reply, error) {
	return nil, nil
}
func (s stubMailbox) Logout(context.Context) error { return nil }

type memoryFiles struct {
	files map[string][]byte
}

func (m *memoryFiles) Upload(_ context.Context, key string, data io.Reader) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.files[key] = b
	return "/uploads/" + key, nil
}

func newUserHandler(address string) (*UserHandler, *memoryFiles) {
	files := &memoryFiles{files: map[string][]byte{}}
	users := database.NewUserRepository(database.NewMemoryBlobStore())
	return NewUserHandler(usecase.NewUserUseCase(stubMailbox{address: address}, users, files)), files
}

// ============ TESTES DO HANDLER DE USUÁRIO ============

func TestUserMeUnauthenticated(t *testing.T) {
	h, _ := newUserHandler("")

	rr := httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// TestUserUpdateWithPicture - Multipart com foto grava o arquivo e o profile_pic
func TestUserUpdateWithPicture(t *testing.T) {
	h, files := newUserHandler("ana@acme.com")

	rr := httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("id", "1"))
	require.NoError(t, mw.WriteField("name", "Ana Souza"))
	require.NoError(t, mw.WriteField("bio", "Head of growth"))
	part, err := mw.CreateFormFile("profilePic", "me.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPatch, "/user/update", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr = httptest.NewRecorder()
	h.Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		OK   bool        `json:"ok"`
		User entity.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "Ana Souza", body.User.Name)
	assert.Equal(t, "/uploads/1_me.png", body.User.ProfilePic)
	assert.Equal(t, []byte("png-bytes"), files.files["1_me.png"])
}

func TestUserUpdateUnknownID(t *testing.T) {
	h, _ := newUserHandler("ana@acme.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("id", "7"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPatch, "/user/update", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.Update(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ============ TESTES DO CHECKOUT ============

type stubStripe struct{ url string }

func (s stubStripe) CreateCheckoutSession(context.Context, string, []entity.CheckoutItem) (string, error) {
	return s.url, nil
}

func TestCheckoutStripe(t *testing.T) {
	h := NewCheckoutHandler(usecase.NewCheckoutUseCase(stubStripe{url: "https://checkout.stripe.com/c/1"}, nil))

	payload := `{"name":"Ana","email":"ana@acme.com","items":[{"id":1,"title":"Pro","price":19.99,"quantity":1}]}`
	rr := httptest.NewRecorder()
	h.Stripe(rr, httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(payload)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"checkout_url":"https://checkout.stripe.com/c/1"`)
}

func TestCheckoutStripeEmptyCart(t *testing.T) {
	h := NewCheckoutHandler(usecase.NewCheckoutUseCase(stubStripe{url: "x"}, nil))

	rr := httptest.NewRecorder()
	h.Stripe(rr, httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(`{"email":"ana@acme.com","items":[]}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckoutPolarNotConfigured(t *testing.T) {
	h := NewCheckoutHandler(usecase.NewCheckoutUseCase(nil, nil))

	rr := httptest.NewRecorder()
	h.Polar(rr, httptest.NewRequest(http.MethodPost, "/checkout/polar", bytes.NewBufferString(`{"product_id":"p1","customer_email":"ana@acme.com"}`)))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"UPSTREAM_FAILURE"`)
}
