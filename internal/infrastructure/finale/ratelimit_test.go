package finale_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocksync-api/internal/infrastructure/finale"
	"github.com/jhoicas/stocksync-api/pkg/logger"
)

func newRL(opts finale.RateLimitOptions) *finale.RateLimitedClient {
	if opts.BaseDelay == 0 {
		opts.BaseDelay = time.Millisecond
	}
	return finale.NewRateLimitedClient(logger.Nop(), opts)
}

func TestGet_EnviaBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	rl := newRL(finale.RateLimitOptions{PerSecond: 100})
	resp, err := rl.Get(context.Background(), srv.URL, "apikey", "apisecret")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "apikey", gotUser)
	assert.Equal(t, "apisecret", gotPass)
}

func TestGet_429LuegoExito(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	rl := newRL(finale.RateLimitOptions{PerSecond: 100, MaxAttempts: 3})
	resp, err := rl.Get(context.Background(), srv.URL, "k", "s")
	require.NoError(t, err, "un 429 es transitorio y debe reintentarse")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, int32(2), calls.Load())
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGet_4xxFatalSinReintento(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rl := newRL(finale.RateLimitOptions{PerSecond: 100, MaxAttempts: 4})
	_, err := rl.Get(context.Background(), srv.URL, "k", "s")
	require.Error(t, err)

	var apiErr *finale.APIError
	require.ErrorAs(t, err, &apiErr, "un 4xx distinto de 429 es fatal")
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, int32(1), calls.Load(), "los fatales no se reintentan")
	assert.False(t, finale.EsTransitorio(err))
}

func TestGet_AgotaReintentosCon5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	rl := newRL(finale.RateLimitOptions{PerSecond: 100, MaxAttempts: 3})
	_, err := rl.Get(context.Background(), srv.URL, "k", "s")
	require.Error(t, err)

	assert.ErrorIs(t, err, finale.ErrRetryAgotado)
	assert.True(t, finale.EsTransitorio(err))
	assert.Equal(t, int32(3), calls.Load(), "debe agotar exactamente MaxAttempts intentos")
}

func TestGet_RespetaElTecho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// 2 req/s con burst 2: el cuarto request no puede salir antes de ~1s.
	rl := newRL(finale.RateLimitOptions{PerSecond: 2, MaxAttempts: 1})
	start := time.Now()
	for i := 0; i < 4; i++ {
		resp, err := rl.Get(context.Background(), srv.URL, "k", "s")
		require.NoError(t, err)
		resp.Body.Close()
	}
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond,
		"4 requests a 2 req/s deben tardar al menos ~1 segundo")
}

func TestGet_ContextoCanceladoCortaElBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rl := newRL(finale.RateLimitOptions{PerSecond: 100, MaxAttempts: 5, BaseDelay: time.Minute})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := rl.Get(ctx, srv.URL, "k", "s")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second,
		"la cancelación no debe esperar el backoff completo")
}
