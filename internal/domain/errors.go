package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnauthenticated       = errors.New("no user authenticated")
	ErrAlreadyAuthenticated  = errors.New("instance has an authenticated user")
	ErrFailedLogin           = errors.New("could not log in with this info")
	ErrCaptcha               = errors.New("this device needs to be verified with a captcha")
	ErrCredentialNotFound    = errors.New("credential not found")
	ErrDeviceProfileNotFound = errors.New("device profile not found")
)

// RemoteFetchError reports a failed round trip to the remote service: either
// the transport failed (Err set, StatusCode zero) or the service answered
// with a non-success status (Body holds the raw response).
type RemoteFetchError struct {
	Method     string
	Target     string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *RemoteFetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "remote fetch %s %s", e.Method, e.Target)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if body := strings.TrimSpace(string(e.Body)); body != "" {
		fmt.Fprintf(&b, ": %s", truncate(body, 512))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
