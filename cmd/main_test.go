package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, endpoint string) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", "practicum-secret")
	t.Setenv("TELEGRAM_TOKEN", "123:telegram-secret")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("PRACTICUM_ENDPOINT", endpoint)
	t.Setenv("RETRY_PERIOD", "1h")
	t.Setenv("REQUEST_TIMEOUT", "1s")
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKER", "")
}

func TestRunMissingTokens(t *testing.T) {
	setEnv(t, "http://127.0.0.1:1")
	t.Setenv("TELEGRAM_TOKEN", "")

	assert.Equal(t, 1, run(context.Background()))
}

func TestRunInvalidConfig(t *testing.T) {
	setEnv(t, "http://127.0.0.1:1")
	t.Setenv("RETRY_PERIOD", "soon")

	assert.Equal(t, 1, run(context.Background()))
}

// The bot is built without contacting Telegram, so the poller starts
// even though no Telegram server is reachable from the test.
func TestRunStartsPollingAndStops(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks":[],"current_date":1700000600}`))
	}))
	defer srv.Close()
	setEnv(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	code := make(chan int, 1)
	go func() { code <- run(ctx) }()

	require.Eventually(t, func() bool { return requests.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case c := <-code:
		assert.Equal(t, 0, c)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunKafkaUnavailable(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"homeworks":[],"current_date":1700000600}`))
	}))
	defer srv.Close()
	setEnv(t, srv.URL)
	// nothing listens on port 1; the ping fails and polling still starts
	t.Setenv("KAFKA_BROKER", "127.0.0.1:1")

	ctx, cancel := context.WithCancel(context.Background())
	code := make(chan int, 1)
	go func() { code <- run(ctx) }()

	require.Eventually(t, func() bool { return requests.Load() >= 1 }, 30*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case c := <-code:
		assert.Equal(t, 0, c)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
