package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
	"github.com/bnema/aminoacids/internal/session"
)

type Request struct {
	Method string
	// Path is relative to the session base URL, e.g. "/g/s/account".
	Path  string
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Auth marks calls that need a session token.
	Auth bool
	// Credentials overrides the installed session credentials for one call.
	Credentials *session.Credentials
}

// Client issues requests on behalf of one session. Every entity, feed and
// media reference is built around an explicit Client.
type Client struct {
	transport ports.Transport
	session   *session.Session
	logger    *slog.Logger
}

func NewClient(transport ports.Transport, sess *session.Session, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{transport: transport, session: sess, logger: logger}
}

func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) URL(path string, query url.Values) string {
	target := c.session.BaseURL() + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// Do performs req and returns the raw response. Authenticated calls without a
// session token fail with domain.ErrUnauthenticated before any I/O; transport
// failures and non-2xx answers surface as *domain.RemoteFetchError.
func (c *Client) Do(ctx context.Context, req Request) (ports.Response, error) {
	creds := c.session.Credentials()
	if req.Credentials != nil {
		creds = *req.Credentials
	}
	if req.Auth && creds.Empty() {
		return ports.Response{}, domain.ErrUnauthenticated
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.URL(req.Path, req.Query)

	var body []byte
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return ports.Response{}, fmt.Errorf("encode request body: %w", err)
		}
		body = encoded
	}

	resp, err := c.transport.Do(ctx, ports.Request{
		Method: method,
		URL:    target,
		Header: c.session.HeadersFor(creds, body),
		Body:   body,
	})
	if err != nil {
		c.logger.Debug("remote request failed", "method", method, "target", target, "error", err)
		return ports.Response{}, &domain.RemoteFetchError{Method: method, Target: target, Err: err}
	}

	c.logger.Debug("remote request", "method", method, "target", target, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ports.Response{}, &domain.RemoteFetchError{
			Method:     method,
			Target:     target,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	}

	return resp, nil
}

// Object performs req and returns the object found under key in the
// response body.
func (c *Client) Object(ctx context.Context, req Request, key string) (Snapshot, error) {
	body, err := c.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	object := body.Object(key)
	if object == nil {
		return nil, c.malformed(req, fmt.Errorf("response missing %q object", key))
	}

	return object, nil
}

// Page performs req for one page of a listing and returns the objects found
// under key. A null list is an empty page; a missing key is an error.
func (c *Client) Page(ctx context.Context, req Request, key string, start, size int) ([]Snapshot, error) {
	query := url.Values{}
	for k, v := range req.Query {
		query[k] = append([]string(nil), v...)
	}
	query.Set("start", strconv.Itoa(start))
	query.Set("size", strconv.Itoa(size))
	req.Query = query

	body, err := c.decode(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, ok := body.Value(key)
	if !ok {
		return nil, c.malformed(req, fmt.Errorf("response missing %q list", key))
	}
	if raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, c.malformed(req, fmt.Errorf("response field %q is not a list", key))
	}

	return objectsOf(list), nil
}

// Pager adapts a listing endpoint to a PageFunc.
func (c *Client) Pager(req Request, key string) PageFunc {
	return func(ctx context.Context, start, size int) ([]Snapshot, error) {
		return c.Page(ctx, req, key, start, size)
	}
}

// Media returns a lazy reference to url carrying the current session headers.
func (c *Client) Media(rawURL string) *Media {
	return NewMedia(c.transport, rawURL, c.session.Headers(nil))
}

func (c *Client) decode(ctx context.Context, req Request) (Snapshot, error) {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	body, err := DecodeSnapshot(resp.Body)
	if err != nil {
		fetchErr := c.malformed(req, err)
		fetchErr.StatusCode = resp.StatusCode
		fetchErr.Body = resp.Body
		return nil, fetchErr
	}

	return body, nil
}

func (c *Client) malformed(req Request, err error) *domain.RemoteFetchError {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	return &domain.RemoteFetchError{Method: method, Target: c.URL(req.Path, req.Query), Err: err}
}

// APIStatusCode extracts the service's api:statuscode from a failed call, if
// the error carries a JSON body with one.
func APIStatusCode(err error) (int64, bool) {
	var fetchErr *domain.RemoteFetchError
	if !errors.As(err, &fetchErr) || len(fetchErr.Body) == 0 {
		return 0, false
	}

	body, decodeErr := DecodeSnapshot(fetchErr.Body)
	if decodeErr != nil {
		return 0, false
	}

	if _, ok := body.Value("api:statuscode"); !ok {
		return 0, false
	}
	return body.Int("api:statuscode", 0), true
}
