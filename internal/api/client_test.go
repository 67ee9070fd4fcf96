package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lycosidae/internal/events"
	"lycosidae/internal/platform/metrics"
	"lycosidae/pkg/apierrors"
)

// eventRecorder collects everything published on the bus during a test.
type eventRecorder struct {
	mu        sync.Mutex
	apiErrors []events.APIErrorEvent
	warnings  []events.RateLimitWarningEvent
}

func newEventRecorder(t *testing.T, bus *events.Bus) *eventRecorder {
	t.Helper()
	rec := &eventRecorder{}
	require.NoError(t, bus.SubscribeAPIError(func(ev events.APIErrorEvent) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.apiErrors = append(rec.apiErrors, ev)
	}))
	require.NoError(t, bus.SubscribeRateLimitWarning(func(ev events.RateLimitWarningEvent) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.warnings = append(rec.warnings, ev)
	}))
	return rec
}

func (r *eventRecorder) APIErrors() []events.APIErrorEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.APIErrorEvent(nil), r.apiErrors...)
}

func (r *eventRecorder) Warnings() []events.RateLimitWarningEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.RateLimitWarningEvent(nil), r.warnings...)
}

func TestRequestSuccessDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "lycosidae-client/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"pong"}`))
	}))
	defer srv.Close()

	bus := events.NewBus()
	rec := newEventRecorder(t, bus)
	client := New(srv.URL, bus)

	var out PingResponse
	err := client.Get(context.Background(), "/", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "pong", out.Message)
	assert.Empty(t, rec.APIErrors())
	assert.Empty(t, rec.Warnings())
}

func TestRequestSuccessWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, events.NewBus())

	var out PingResponse
	err := client.Delete(context.Background(), "/thing", nil, &out)
	require.NoError(t, err)
	assert.Empty(t, out.Message, "out stays untouched without a JSON body")
}

func TestRequestTimeoutClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	bus := events.NewBus()
	rec := newEventRecorder(t, bus)
	client := New(srv.URL, bus, WithTimeout(50*time.Millisecond))

	err := client.Get(context.Background(), "/slow", nil, nil)
	require.Error(t, err)
	assert.True(t, apierrors.IsTimeout(err))
	assert.Equal(t, "Requisição cancelada por timeout", err.Error())
	assert.Empty(t, rec.APIErrors(), "transport failures never reach the bus")
}

func TestRequestTransportClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, events.NewBus())

	err := client.Get(context.Background(), "/", nil, nil)
	require.Error(t, err)
	assert.True(t, apierrors.HasCode(err, apierrors.CodeTransport))
	assert.False(t, apierrors.IsTimeout(err))
	assert.Equal(t, "Falha de conexão com o servidor", err.Error())
}

func TestErrorResponsePublishedExactlyOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Recurso não encontrado"}`))
	}))
	defer srv.Close()

	bus := events.NewBus()
	rec := newEventRecorder(t, bus)
	client := New(srv.URL, bus)

	err := client.Get(context.Background(), "/missing", nil, nil)
	require.Error(t, err)

	apiErr, ok := apierrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Recurso não encontrado", apiErr.Message)

	published := rec.APIErrors()
	require.Len(t, published, 1)
	assert.Same(t, apiErr, published[0].Err, "the published error is the returned error")
	assert.Equal(t, "/missing", published[0].Endpoint)
}

func TestErrorMessagePrecedence(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "message field wins",
			status: http.StatusInternalServerError,
			body:   `{"message":"explodiu","detail":"ignored"}`,
			want:   "explodiu",
		},
		{
			name:   "detail used when message absent",
			status: http.StatusForbidden,
			body:   `{"detail":"sem permissão"}`,
			want:   "sem permissão",
		},
		{
			name:   "generic fallback",
			status: http.StatusBadGateway,
			body:   `{}`,
			want:   "HTTP 502: Bad Gateway",
		},
		{
			name:   "malformed body falls back",
			status: http.StatusInternalServerError,
			body:   `not json`,
			want:   "HTTP 500: Internal Server Error",
		},
		{
			name:   "validation errors joined",
			status: http.StatusUnprocessableEntity,
			body:   `{"details":{"validation_errors":["Email domain not allowed","username too short"]}}`,
			want:   "Erro de validação: Email domain not allowed, username too short",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := New(srv.URL, events.NewBus())
			err := client.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestRateLimitedResponse(t *testing.T) {
	t.Run("with Retry-After header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", "100")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		bus := events.NewBus()
		rec := newEventRecorder(t, bus)
		client := New(srv.URL, bus)

		err := client.Get(context.Background(), "/x", nil, nil)
		require.Error(t, err)
		assert.True(t, apierrors.HasCode(err, apierrors.CodeRateLimit))
		assert.Equal(t, "Rate limit excedido. Tente novamente em 30s", err.Error())
		assert.Equal(t, 30, apierrors.RetryAfterOf(err))

		// Remaining 0 also crosses the warning threshold.
		warnings := rec.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, 0, warnings[0].Remaining)
		assert.Equal(t, 100, warnings[0].Limit)
	})

	t.Run("without Retry-After header defaults to 60", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := New(srv.URL, events.NewBus())
		err := client.Get(context.Background(), "/x", nil, nil)
		require.Error(t, err)
		assert.Equal(t, "Rate limit excedido. Tente novamente em 60s", err.Error())
		assert.Equal(t, 60, apierrors.RetryAfterOf(err))
	})
}

func TestRateLimitWarningThreshold(t *testing.T) {
	cases := []struct {
		remaining string
		warns     bool
	}{
		{remaining: "4", warns: true},
		{remaining: "5", warns: false},
		{remaining: "0", warns: true},
		{remaining: "", warns: false},
		{remaining: "abc", warns: false},
	}

	for _, tc := range cases {
		t.Run("remaining="+tc.remaining, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.remaining != "" {
					w.Header().Set("X-RateLimit-Remaining", tc.remaining)
					w.Header().Set("X-RateLimit-Limit", "100")
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			bus := events.NewBus()
			rec := newEventRecorder(t, bus)
			client := New(srv.URL, bus)

			require.NoError(t, client.Get(context.Background(), "/x", nil, nil))
			if tc.warns {
				assert.Len(t, rec.Warnings(), 1)
			} else {
				assert.Empty(t, rec.Warnings())
			}
		})
	}
}

// Single construction per test binary: promauto registers on the global
// registry and a second New would panic on duplicates.
func TestRequestRecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "100")
		w.Header().Set("X-RateLimit-Remaining", "3")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	m := metrics.New()
	client := New(srv.URL, events.NewBus(), WithMetrics(m))

	require.NoError(t, client.Get(context.Background(), "/x", nil, nil))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.RateLimitRemaining))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitWarnings))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "200")))
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/system/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"backend-lycosidae","database_status":"connected"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, events.NewBus())
	status, err := client.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "connected", status.DatabaseStatus)
}
