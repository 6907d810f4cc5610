package remote

import (
	"context"
	"net/http"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
)

// Media is a lazy reference to binary content. The download happens on the
// first Bytes call; later calls return the cached content.
type Media struct {
	transport ports.Transport
	url       string
	header    http.Header

	content []byte
	fetched bool
}

func NewMedia(transport ports.Transport, rawURL string, header http.Header) *Media {
	return &Media{transport: transport, url: rawURL, header: header.Clone()}
}

func (m *Media) URL() string {
	return m.url
}

func (m *Media) String() string {
	return m.url
}

func (m *Media) Cached() bool {
	return m.fetched
}

func (m *Media) Bytes(ctx context.Context) ([]byte, error) {
	if m.fetched {
		return m.content, nil
	}

	resp, err := m.transport.Do(ctx, ports.Request{
		Method: http.MethodGet,
		URL:    m.url,
		Header: m.header.Clone(),
	})
	if err != nil {
		return nil, &domain.RemoteFetchError{Method: http.MethodGet, Target: m.url, Err: err}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.RemoteFetchError{
			Method:     http.MethodGet,
			Target:     m.url,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
	}

	m.content = resp.Body
	m.fetched = true
	return m.content, nil
}
