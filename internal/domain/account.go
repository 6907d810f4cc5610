package domain

import (
	"fmt"
	"strings"
)

// EntityKey identifies a remote resource. Scope is the secondary namespace
// (a community id for community-local profiles and posts) and is empty for
// global resources.
type EntityKey struct {
	ID    string
	Scope string
}

func (k EntityKey) Equal(other EntityKey) bool {
	return k.ID == other.ID && k.Scope == other.Scope
}

func (k EntityKey) String() string {
	if k.Scope == "" {
		return k.ID
	}
	return fmt.Sprintf("%s@%s", k.ID, k.Scope)
}

// SessionRecord is the persisted credential of one account, keyed by the
// login email in the session store.
type SessionRecord struct {
	SessionToken string `json:"session_token"`
	Secret       string `json:"secret"`
	AccountID    string `json:"account_id"`
}

func (r SessionRecord) Usable() bool {
	return strings.TrimSpace(r.SessionToken) != ""
}

// DeviceProfile is the device identity presented to the remote service.
type DeviceProfile struct {
	DeviceID        string
	DeviceSignature string
	UserAgent       string
}

func (p DeviceProfile) Validate() error {
	if strings.TrimSpace(p.DeviceID) == "" {
		return fmt.Errorf("device id is required")
	}
	if strings.TrimSpace(p.UserAgent) == "" {
		return fmt.Errorf("user agent is required")
	}

	return nil
}
