// Package session holds the transport-level identity of one logical client
// and composes the headers every outgoing call carries.
package session

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/bnema/aminoacids/internal/domain"
)

const (
	HeaderDeviceID  = "NDCDEVICEID"
	HeaderSignature = "NDC-MSG-SIG"
	HeaderAuth      = "NDCAUTH"
	HeaderAUID      = "AUID"
)

// Credentials are the values a successful authentication produces.
type Credentials struct {
	SessionToken string
	AccountID    string
}

func (c Credentials) Empty() bool {
	return strings.TrimSpace(c.SessionToken) == ""
}

type Session struct {
	baseURL string
	device  domain.DeviceProfile

	// authMu serializes Authenticate/Logout; credsMu guards reads.
	authMu  sync.Mutex
	credsMu sync.RWMutex
	creds   Credentials
}

func New(baseURL string, device domain.DeviceProfile) (*Session, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if err := device.Validate(); err != nil {
		return nil, fmt.Errorf("invalid device profile: %w", err)
	}

	return &Session{baseURL: baseURL, device: device}, nil
}

func (s *Session) BaseURL() string {
	return s.baseURL
}

func (s *Session) Device() domain.DeviceProfile {
	return s.device
}

func (s *Session) Credentials() Credentials {
	s.credsMu.RLock()
	defer s.credsMu.RUnlock()
	return s.creds
}

func (s *Session) Authenticated() bool {
	return !s.Credentials().Empty()
}

// RequireAuth fails fast when no session token is installed.
func (s *Session) RequireAuth() error {
	if !s.Authenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// Authenticate installs credentials once. A session that already holds a
// token must be logged out before it can be authenticated again.
func (s *Session) Authenticate(creds Credentials) error {
	if creds.Empty() {
		return fmt.Errorf("session token is required")
	}

	s.authMu.Lock()
	defer s.authMu.Unlock()

	if s.Authenticated() {
		return domain.ErrAlreadyAuthenticated
	}

	s.credsMu.Lock()
	s.creds = creds
	s.credsMu.Unlock()

	return nil
}

func (s *Session) Logout() {
	s.authMu.Lock()
	defer s.authMu.Unlock()

	s.credsMu.Lock()
	s.creds = Credentials{}
	s.credsMu.Unlock()
}

// Headers composes the headers for a call made with the installed
// credentials. body is the encoded request body, nil for bodiless calls.
func (s *Session) Headers(body []byte) http.Header {
	return s.HeadersFor(s.Credentials(), body)
}

// HeadersFor composes headers for explicit credentials without installing
// them, which is how a cached session is probed.
func (s *Session) HeadersFor(creds Credentials, body []byte) http.Header {
	header := http.Header{}
	header.Set(HeaderDeviceID, s.device.DeviceID)
	if s.device.DeviceSignature != "" {
		header.Set(HeaderSignature, s.device.DeviceSignature)
	}
	header.Set("Accept-Language", "en-US")
	header.Set("User-Agent", s.device.UserAgent)

	if body != nil {
		header.Set("Content-Type", "application/json; charset=utf-8")
	}

	if !creds.Empty() {
		header.Set(HeaderAuth, "sid="+creds.SessionToken)
	}
	if creds.AccountID != "" {
		header.Set(HeaderAUID, creds.AccountID)
	}

	return header
}
