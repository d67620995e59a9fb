package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// ============ TESTES DO RATE LIMITER ============

// TestRateLimiterWindow - Bloqueia acima do limite e libera na janela seguinte
func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"))

	current = current.Add(2 * time.Minute)
	assert.True(t, rl.Allow("1.1.1.1"))
}

// TestRateLimiterStop - Stop encerra a goroutine de limpeza e é idempotente
func TestRateLimiterStop(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	assert.NoError(t, rl.Stop())
	select {
	case <-rl.done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine still running")
	}
	assert.NoError(t, rl.Stop())
}

// TestRateLimiterSweep - Visitantes parados há duas janelas são removidos
func TestRateLimiterSweep(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	rl.Allow("1.1.1.1")
	current = current.Add(3 * time.Minute)
	rl.Allow("2.2.2.2")
	rl.sweep()

	assert.NotContains(t, rl.visitors, "1.1.1.1")
	assert.Contains(t, rl.visitors, "2.2.2.2")
}

// TestRateLimiterMiddleware - Resposta 429 no formato padrão
func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/generate-reply", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/generate-reply", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Too many requests. Please try again later."}`, second.Body.String())
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ClientIP(r))

	r.Header.Set("X-Real-IP", "9.9.9.9")
	assert.Equal(t, "9.9.9.9", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "8.8.8.8, 10.0.0.1")
	assert.Equal(t, "8.8.8.8", ClientIP(r))
}

// ============ TESTES DE MÉTRICAS ============

// TestMetricsUsesRoutePattern - Label de path usa o padrão da rota do chi
func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)

	var seen string
	r.Delete("/emails/{threadId}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		seen = routePattern(req)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/emails/abc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "/ping", seen)

	assert.Equal(t, "unmatched", routePattern(httptest.NewRequest(http.MethodGet, "/", nil)))
}
