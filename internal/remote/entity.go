package remote

import (
	"context"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
)

// Loader fetches the full snapshot of one entity.
type Loader func(ctx context.Context) (Snapshot, error)

// Entity is a lazy proxy for one remote resource. The snapshot is fetched on
// the first read, kept until Refresh marks it stale, and replaced only by a
// successful fetch.
//
// An Entity is not safe for concurrent use.
type Entity struct {
	client *Client
	key    domain.EntityKey
	load   Loader

	snapshot Snapshot
	// complete is false for snapshots seeded from listing payloads, which may
	// omit fields the full resource carries.
	complete bool
	stale    bool
	media    map[string]*Media
}

// NewEntity builds an entity. A nil seed makes the entity lazy; a non-nil
// seed is served until a field it lacks is read or Refresh is called.
func NewEntity(client *Client, key domain.EntityKey, load Loader, seed Snapshot) *Entity {
	return &Entity{
		client:   client,
		key:      key,
		load:     load,
		snapshot: seed,
	}
}

// ObjectLoader fetches an entity from req, reading the object under key.
func ObjectLoader(client *Client, req Request, key string) Loader {
	return func(ctx context.Context) (Snapshot, error) {
		return client.Object(ctx, req, key)
	}
}

func (e *Entity) Key() domain.EntityKey {
	return e.key
}

func (e *Entity) Client() *Client {
	return e.client
}

// Loaded reports whether a snapshot is held, seeded or fetched.
func (e *Entity) Loaded() bool {
	return e.snapshot != nil
}

func (e *Entity) Stale() bool {
	return e.stale
}

// Refresh marks the entity stale and returns it; the next read fetches.
func (e *Entity) Refresh() *Entity {
	e.stale = true
	return e
}

// Snapshot returns the current snapshot, fetching it when absent or stale.
func (e *Entity) Snapshot(ctx context.Context) (Snapshot, error) {
	if e.snapshot == nil || e.stale {
		if err := e.fetch(ctx); err != nil {
			return nil, err
		}
	}
	return e.snapshot, nil
}

// Get returns the value of field. ok is false when the resource does not
// carry the field; that is not an error.
func (e *Entity) Get(ctx context.Context, field string) (any, bool, error) {
	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return nil, false, err
	}

	if v, ok := snapshot[field]; ok || e.complete {
		return v, ok, nil
	}

	if err := e.fetch(ctx); err != nil {
		return nil, false, err
	}
	v, ok := e.snapshot[field]
	return v, ok, nil
}

func (e *Entity) String(ctx context.Context, field, def string) (string, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return def, err
	}
	return asString(v, ok, def), nil
}

func (e *Entity) Int(ctx context.Context, field string, def int64) (int64, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return def, err
	}
	return asInt(v, ok, def), nil
}

func (e *Entity) Float(ctx context.Context, field string, def float64) (float64, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return def, err
	}
	return asFloat(v, ok, def), nil
}

func (e *Entity) Bool(ctx context.Context, field string, def bool) (bool, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return def, err
	}
	return asBool(v, ok, def), nil
}

func (e *Entity) Object(ctx context.Context, field string) (Snapshot, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return nil, err
	}
	return asObject(v, ok), nil
}

func (e *Entity) List(ctx context.Context, field string) ([]any, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return nil, err
	}
	return asList(v, ok), nil
}

// Time returns a payload timestamp, or the zero time when absent.
func (e *Entity) Time(ctx context.Context, field string) (time.Time, error) {
	v, ok, err := e.Get(ctx, field)
	if err != nil {
		return time.Time{}, err
	}
	return asTime(v, ok), nil
}

// Media returns a lazy reference to the URL held in field, or nil when the
// field is empty. References are reused until the snapshot is refetched.
func (e *Entity) Media(ctx context.Context, field string) (*Media, error) {
	rawURL, err := e.String(ctx, field, "")
	if err != nil {
		return nil, err
	}
	if rawURL == "" {
		return nil, nil
	}

	if m, ok := e.media[field]; ok && m.URL() == rawURL {
		return m, nil
	}

	if e.media == nil {
		e.media = map[string]*Media{}
	}
	m := e.client.Media(rawURL)
	e.media[field] = m
	return m, nil
}

func (e *Entity) fetch(ctx context.Context) error {
	snapshot, err := e.load(ctx)
	if err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = Snapshot{}
	}

	e.snapshot = snapshot
	e.complete = true
	e.stale = false
	e.media = nil
	return nil
}
