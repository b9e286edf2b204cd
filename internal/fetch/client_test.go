package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksakamaki/hospdash/internal/errors"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// fastClient returns a client with short delays suitable for tests.
func fastClient(attempts int) *Client {
	return NewWithOptions(Options{
		MaxAttempts: attempts,
		Delay:       time.Millisecond,
		Timeout:     time.Second,
		Logger:      logger.Noop(),
	})
}

func TestFetchJSONSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		w.Write([]byte(`{"value": 42}`))
	}))
	defer server.Close()

	var out struct {
		Value int `json:"value"`
	}
	err := fastClient(3).FetchJSON(context.Background(), server.URL, &out)

	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
}

func TestFetchJSONRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := fastClient(3).FetchJSON(context.Background(), server.URL, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchJSONStopsAtMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var out map[string]any
	err := fastClient(3).FetchJSON(context.Background(), server.URL, &out)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNetwork))
	// Exactly three attempts, never a fourth.
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchJSONParseErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("<html>error page</html>"))
	}))
	defer server.Close()

	var out map[string]any
	err := fastClient(3).FetchJSON(context.Background(), server.URL, &out)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrParse))
	// A structural failure burns only one attempt.
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchJSONTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewWithOptions(Options{
		MaxAttempts: 1,
		Delay:       time.Millisecond,
		Timeout:     20 * time.Millisecond,
		Logger:      logger.Noop(),
	})

	var out map[string]any
	err := client.FetchJSON(context.Background(), server.URL, &out)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTimeout))
}

func TestFetchJSONContextCancelStopsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWithOptions(Options{
		MaxAttempts: 3,
		Delay:       time.Second,
		Timeout:     time.Second,
		Logger:      logger.Noop(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	var out map[string]any
	start := time.Now()
	err := client.FetchJSON(ctx, server.URL, &out)

	require.Error(t, err)
	// Cancelled during the inter-attempt delay, well before retry two.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchJSONInvalidURL(t *testing.T) {
	var out map[string]any
	err := fastClient(1).FetchJSON(context.Background(), "://bad", &out)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFetchJSONLogsEachFailedAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	buf := logger.NewBufferLogger()
	client := NewWithOptions(Options{
		MaxAttempts: 2,
		Delay:       time.Millisecond,
		Timeout:     time.Second,
		Logger:      buf,
	})

	var out map[string]any
	err := client.FetchJSON(context.Background(), server.URL, &out)

	require.Error(t, err)
	var errorLogs int
	for _, m := range buf.Messages {
		if m.Level == "error" {
			errorLogs++
		}
	}
	assert.Equal(t, 2, errorLogs)
}
