package httptransport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bnema/aminoacids/internal/ports"
)

const (
	defaultRequestTimeout   = 30 * time.Second
	defaultMaxResponseBytes = 32 << 20
)

// ErrResponseTooLarge is returned when a body exceeds MaxResponseBytes.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// Transport sends requests over net/http. Responses are read fully and
// returned whatever their status code; a body larger than MaxResponseBytes
// fails the round trip.
type Transport struct {
	HTTPClient       *http.Client
	RequestTimeout   time.Duration
	MaxResponseBytes int64
	Logger           *slog.Logger
}

var _ ports.Transport = Transport{}

func New(timeout time.Duration, logger *slog.Logger) Transport {
	return Transport{RequestTimeout: timeout, Logger: logger}
}

func (t Transport) Do(ctx context.Context, request ports.Request) (ports.Response, error) {
	requestCtx, cancel := t.requestContext(ctx)
	defer cancel()

	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}

	method := request.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(requestCtx, method, request.URL, body)
	if err != nil {
		return ports.Response{}, fmt.Errorf("create request: %w", err)
	}
	for key, values := range request.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	started := time.Now()
	resp, err := t.httpClient().Do(req)
	if err != nil {
		return ports.Response{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	limit := t.MaxResponseBytes
	if limit <= 0 {
		limit = defaultMaxResponseBytes
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return ports.Response{}, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return ports.Response{}, fmt.Errorf("read response body: %w (%d bytes)", ErrResponseTooLarge, limit)
	}

	t.logger().Debug("http round trip",
		"method", method,
		"url", request.URL,
		"status", resp.StatusCode,
		"bytes", len(data),
		"elapsed", time.Since(started),
	)

	return ports.Response{StatusCode: resp.StatusCode, Body: data}, nil
}

func (t Transport) httpClient() *http.Client {
	if t.HTTPClient != nil {
		return t.HTTPClient
	}

	return http.DefaultClient
}

func (t Transport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}

	return slog.Default()
}

func (t Transport) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := t.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}
