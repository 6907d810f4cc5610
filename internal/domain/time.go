package domain

import (
	"strings"
	"time"
)

// RemoteTimeLayout is the timestamp layout used by every entity payload.
const RemoteTimeLayout = "2006-01-02T15:04:05Z"

// ParseRemoteTime parses a payload timestamp. Unparsable values yield the zero
// time and false; payload timestamps are a soft contract.
func ParseRemoteTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	parsed, err := time.Parse(RemoteTimeLayout, raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, false
		}
	}

	return parsed.UTC(), true
}
