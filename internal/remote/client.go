// Package remote talks to the job monitor service that owns jobs and skill
// settings. It only knows three calls: GET /jobs, GET /settings and
// POST /settings.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"jobmonitor/internal/domain"
)

var tracer = otel.Tracer("jobmonitor/remote")

type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// TokenFunc returns the bearer token for the monitor, or "" for none.
type TokenFunc func() string

type Client struct {
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
	token   TokenFunc
	logger  *zap.Logger
}

func New(cfg Config, token TokenFunc, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 2
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: newLimiter(cfg.RatePerSecond, cfg.Burst),
		token:   token,
		logger:  logger,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.do(ctx, "ListJobs", http.MethodGet, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return jobs, nil
}

func (c *Client) GetSettings(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	if err := c.do(ctx, "GetSettings", http.MethodGet, "/settings", nil, &s); err != nil {
		return domain.Settings{}, err
	}
	s.Skills = s.Skills.Clone()
	return s, nil
}

// UpdateSettings posts the full skill list. The response body is not used.
func (c *Client) UpdateSettings(ctx context.Context, u domain.SettingsUpdate) error {
	return c.do(ctx, "UpdateSettings", http.MethodPost, "/settings", u, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	ctx, span := tracer.Start(ctx, "remote."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	url := c.baseURL + path
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)

	fail := func(err *Error) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("remote call failed",
			zap.String("op", op),
			zap.String("kind", string(err.Kind)),
			zap.ByteString("stack", err.StackTrace()))
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fail(newError(KindRequest, op, err))
		}
		body = bytes.NewReader(b)
	}

	if err := c.pace(ctx, method); err != nil {
		return fail(newError(KindTransport, op, err))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fail(newError(KindRequest, op, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "jobmonitor/1.0 (+local)")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	if tok := strings.TrimSpace(c.token()); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Debug("remote request failed", zap.String("op", op), zap.String("url", url), zap.Error(err))
		return fail(newError(KindTransport, op, err))
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("remote response",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		c.logger.Debug("remote non-2xx", zap.String("op", op), zap.ByteString("body", snippet))
		return fail(statusError(op, resp.StatusCode))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(newError(KindDecode, op, err))
	}
	return nil
}
