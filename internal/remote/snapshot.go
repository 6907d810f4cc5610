package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
)

// Snapshot is the decoded JSON object backing an entity. Numbers are kept as
// json.Number so ids and large counters survive decoding intact.
type Snapshot map[string]any

// DecodeSnapshot decodes a JSON object body.
func DecodeSnapshot(body []byte) (Snapshot, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var snapshot Snapshot
	if err := decoder.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("decode response body: not a json object")
	}

	return snapshot, nil
}

func (s Snapshot) Value(field string) (any, bool) {
	v, ok := s[field]
	return v, ok
}

func (s Snapshot) String(field, def string) string {
	v, ok := s[field]
	return asString(v, ok, def)
}

func (s Snapshot) Int(field string, def int64) int64 {
	v, ok := s[field]
	return asInt(v, ok, def)
}

func (s Snapshot) Float(field string, def float64) float64 {
	v, ok := s[field]
	return asFloat(v, ok, def)
}

func (s Snapshot) Bool(field string, def bool) bool {
	v, ok := s[field]
	return asBool(v, ok, def)
}

func (s Snapshot) Object(field string) Snapshot {
	v, ok := s[field]
	return asObject(v, ok)
}

func (s Snapshot) List(field string) []any {
	v, ok := s[field]
	return asList(v, ok)
}

func (s Snapshot) Time(field string) time.Time {
	v, ok := s[field]
	return asTime(v, ok)
}

// Objects returns the object elements of a list field, skipping anything else.
func (s Snapshot) Objects(field string) []Snapshot {
	return objectsOf(s.List(field))
}

func asString(v any, ok bool, def string) string {
	if !ok {
		return def
	}
	switch typed := v.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	default:
		return def
	}
}

func asInt(v any, ok bool, def int64) int64 {
	if !ok {
		return def
	}
	switch typed := v.(type) {
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return n
		}
		if f, err := typed.Float64(); err == nil {
			return int64(f)
		}
		return def
	case float64:
		return int64(typed)
	case int64:
		return typed
	case int:
		return int64(typed)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64); err == nil {
			return n
		}
		return def
	default:
		return def
	}
}

func asFloat(v any, ok bool, def float64) float64 {
	if !ok {
		return def
	}
	switch typed := v.(type) {
	case json.Number:
		if f, err := typed.Float64(); err == nil {
			return f
		}
		return def
	case float64:
		return typed
	case int64:
		return float64(typed)
	case int:
		return float64(typed)
	default:
		return def
	}
}

// asBool accepts the 0/1 integers the service uses for activation flags.
func asBool(v any, ok bool, def bool) bool {
	if !ok {
		return def
	}
	switch typed := v.(type) {
	case bool:
		return typed
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return def
		}
		return f != 0
	case float64:
		return typed != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

func asObject(v any, ok bool) Snapshot {
	if !ok {
		return nil
	}
	switch typed := v.(type) {
	case Snapshot:
		return typed
	case map[string]any:
		return Snapshot(typed)
	default:
		return nil
	}
}

func asList(v any, ok bool) []any {
	if !ok {
		return nil
	}
	list, _ := v.([]any)
	return list
}

func asTime(v any, ok bool) time.Time {
	raw := asString(v, ok, "")
	parsed, _ := domain.ParseRemoteTime(raw)
	return parsed
}

func objectsOf(list []any) []Snapshot {
	objects := make([]Snapshot, 0, len(list))
	for _, item := range list {
		if object := asObject(item, true); object != nil {
			objects = append(objects, object)
		}
	}
	return objects
}
