package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"jobmonitor/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:       srv.URL + "/",
		Timeout:       2 * time.Second,
		RatePerSecond: 100,
		Burst:         10,
	}, func() string { return token }, zap.NewNop())
}

func TestClient_ListJobs(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/jobs", r.URL.Path)
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":1,"title":"Go dev","description":"d","url":"https://x/1","posted_date":"2024-01-02T03:04:05"}]`))
	}, "s3cret")

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobID("1"), jobs[0].ID)
	assert.Equal(t, "Go dev", jobs[0].Title)
}

func TestClient_ListJobs_EmptyArray(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, "")

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`null`))
	}, "")

	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestClient_ListJobs_StatusError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
	}, "")

	_, err := c.ListJobs(context.Background())
	require.Error(t, err)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindStatus, rerr.Kind)
	assert.Equal(t, http.StatusInternalServerError, rerr.StatusCode)
	assert.NotEmpty(t, rerr.StackTrace())
}

func TestClient_ListJobs_DecodeError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}, "")

	_, err := c.ListJobs(context.Background())
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindDecode, rerr.Kind)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url, Timeout: time.Second}, nil, zap.NewNop())
	_, err := c.GetSettings(context.Background())

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindTransport, rerr.Kind)
}

func TestClient_GetSettings(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/settings", r.URL.Path)
		_, _ = w.Write([]byte(`{"skills":["go","react"],"check_interval":300,"extra":1}`))
	}, "")

	s, err := c.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SkillSet{"go", "react"}, s.Skills)
	assert.Equal(t, domain.Seconds(300), s.CheckInterval)
}

func TestClient_UpdateSettings(t *testing.T) {
	t.Parallel()

	got := make(chan map[string]any, 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/settings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		got <- body
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}, "")

	err := c.UpdateSettings(context.Background(), domain.SettingsUpdate{
		Skills:        domain.SkillSet{"go"},
		CheckInterval: 300,
	})
	require.NoError(t, err)

	body := <-got
	assert.Equal(t, []any{"go"}, body["skills"])
	assert.Equal(t, float64(300), body["check_interval"])
}

func TestClient_PacesReadsNotWrites(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	// one token, the next a thousand seconds away
	c := New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second, RatePerSecond: 0.001, Burst: 1}, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := c.ListJobs(ctx)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.UpdateSettings(ctx, domain.SettingsUpdate{Skills: domain.SkillSet{"go"}}), "push %d", i)
	}

	_, err = c.ListJobs(ctx)
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindTransport, rerr.Kind)
}

func TestClient_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	got := make(chan string, 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("traceparent")
		_, _ = w.Write([]byte(`[]`))
	}, "")

	traceID := trace.TraceID{0x4b, 0xf9, 0x2f, 0x35, 0x77, 0xb3, 0x4d, 0xa6, 0xa3, 0xce, 0x92, 0x9d, 0x0e, 0x0e, 0x47, 0x36}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanID{0x00, 0xf0, 0x67, 0xaa, 0x0b, 0xa9, 0x02, 0xb7},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	_, err := c.ListJobs(ctx)
	require.NoError(t, err)
	assert.Contains(t, <-got, traceID.String())
}
