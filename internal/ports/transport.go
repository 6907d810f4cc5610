package ports

import (
	"context"
	"net/http"
)

type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs one network round trip. Implementations carry their own
// timeout; a non-success status is not an error at this layer.
type Transport interface {
	Do(ctx context.Context, req Request) (Response, error)
}
