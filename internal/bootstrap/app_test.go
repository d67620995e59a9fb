package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/mailmorph/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Port:             "0",
		StoreDriver:      config.StoreMemory,
		MailDriver:       config.MailGmail,
		GmailTokenPath:   filepath.Join(dir, "token.json"),
		StorageType:      "local",
		StorageLocalPath: filepath.Join(dir, "uploads"),
	}
}

// TestNewWithoutIntegrations - Sem credenciais a App sobe só com store e templates
func TestNewWithoutIntegrations(t *testing.T) {
	app, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.Nil(t, app.RabbitMQ)
	assert.Nil(t, app.Cache)
	assert.Nil(t, app.Checkout.Stripe)
	assert.Nil(t, app.Checkout.Polar)
	assert.False(t, app.Mail.IsAuthenticated(context.Background()))

	rr := httptest.NewRecorder()
	app.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/lead/list", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	app.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// TestStartWorkersStopsOnCancel - Workers terminam quando o contexto cai
func TestStartWorkersStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReplySyncInterval = 0

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	wg := app.StartWorkers(ctx)
	cancel()
	wg.Wait()
}

func TestNewFileStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = config.StoreFile
	cfg.DataDir = filepath.Join(t.TempDir(), "data")

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	_, err = app.Leads.List(context.Background())
	assert.NoError(t, err)
}
