package remote

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
	"github.com/bnema/aminoacids/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls     int
	snapshots []Snapshot
	errs      []error
}

func (l *countingLoader) load(_ context.Context) (Snapshot, error) {
	i := l.calls
	l.calls++
	if i < len(l.errs) && l.errs[i] != nil {
		return nil, l.errs[i]
	}
	if i < len(l.snapshots) {
		return l.snapshots[i], nil
	}
	return l.snapshots[len(l.snapshots)-1], nil
}

func TestEntityFirstGetFetchesOnce(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{"nickname": "ada", "level": json.Number("7")}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "u-1"}, loader.load, nil)
	assert.False(t, entity.Loaded())

	nickname, err := entity.String(context.Background(), "nickname", "")
	require.NoError(t, err)
	assert.Equal(t, "ada", nickname)
	assert.Equal(t, 1, loader.calls)

	level, err := entity.Int(context.Background(), "level", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), level)
	assert.Equal(t, 1, loader.calls)
	assert.True(t, entity.Loaded())
}

func TestEntityMissingFieldReturnsDefaultWithoutRefetch(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{"nickname": "ada"}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "u-1"}, loader.load, nil)

	_, ok, err := entity.Get(context.Background(), "reputation")
	require.NoError(t, err)
	assert.False(t, ok)

	reputation, err := entity.Int(context.Background(), "reputation", -1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), reputation)
	assert.Equal(t, 1, loader.calls)
}

func TestEntityRefreshThenGetFetchesExactlyOnce(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{"x": "first"}, {"x": "second"}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "c-1"}, loader.load, nil)

	_, err := entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	require.Equal(t, 1, loader.calls)

	same := entity.Refresh()
	assert.Same(t, entity, same)
	assert.True(t, entity.Stale())
	assert.Equal(t, 1, loader.calls, "refresh must not fetch eagerly")

	x, err := entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, "second", x)
	assert.Equal(t, 2, loader.calls)
	assert.False(t, entity.Stale())

	x, err = entity.Refresh().String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, "second", x)
	_, err = entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, 3, loader.calls)
}

func TestEntityRefreshOnLazyEntityFetchesOnce(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{"x": "v"}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "c-1"}, loader.load, nil).Refresh()

	_, err := entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	_, err = entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls)
}

func TestEntityFetchFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	fetchErr := &domain.RemoteFetchError{Method: "GET", Target: "/g/s/account", StatusCode: 500, Body: []byte("boom")}
	loader := &countingLoader{
		snapshots: []Snapshot{nil, {"x": "v"}},
		errs:      []error{fetchErr, nil},
	}
	entity := NewEntity(nil, domain.EntityKey{ID: "a-1"}, loader.load, nil)

	_, _, err := entity.Get(context.Background(), "x")
	var target *domain.RemoteFetchError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, 500, target.StatusCode)
	assert.False(t, entity.Loaded())

	x, err := entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, "v", x)
	assert.Equal(t, 2, loader.calls)
}

func TestEntityFailedRefreshKeepsPreviousSnapshotAndStaleness(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{
		snapshots: []Snapshot{{"x": "old"}, nil, {"x": "new"}},
		errs:      []error{nil, errors.New("timeout"), nil},
	}
	entity := NewEntity(nil, domain.EntityKey{ID: "a-1"}, loader.load, nil)

	_, err := entity.String(context.Background(), "x", "")
	require.NoError(t, err)

	_, err = entity.Refresh().String(context.Background(), "x", "")
	require.Error(t, err)
	assert.True(t, entity.Stale())
	assert.True(t, entity.Loaded())

	x, err := entity.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, "new", x)
	assert.Equal(t, 3, loader.calls)
}

func TestSeededEntityServesSeedWithoutFetching(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{"name": "full", "tagline": "hello"}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "42"}, loader.load, Snapshot{"name": "seeded"})

	name, err := entity.String(context.Background(), "name", "")
	require.NoError(t, err)
	assert.Equal(t, "seeded", name)
	assert.Equal(t, 0, loader.calls)
}

func TestSeededEntityFetchesOnceForFieldTheSeedLacks(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{"name": "full", "tagline": "hello"}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "42"}, loader.load, Snapshot{"name": "seeded"})

	tagline, err := entity.String(context.Background(), "tagline", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", tagline)

	_, err = entity.String(context.Background(), "missing", "def")
	require.NoError(t, err)
	assert.Equal(t, 1, loader.calls)
}

func TestEntityTypedAccessorsTolerateMismatches(t *testing.T) {
	t.Parallel()

	loader := &countingLoader{snapshots: []Snapshot{{
		"emailActivation": json.Number("1"),
		"phoneActivation": json.Number("0"),
		"searchable":      true,
		"nickname":        json.Number("12"),
		"level":           "not a number",
		"heat":            json.Number("3.5"),
		"createdTime":     "2019-03-01T12:30:45Z",
		"extensions":      map[string]any{"communityNameAliases": "a,b"},
		"tags":            []any{"x", "y"},
	}}}
	entity := NewEntity(nil, domain.EntityKey{ID: "1"}, loader.load, nil)
	ctx := context.Background()

	emailActivated, err := entity.Bool(ctx, "emailActivation", false)
	require.NoError(t, err)
	assert.True(t, emailActivated)

	phoneActivated, err := entity.Bool(ctx, "phoneActivation", true)
	require.NoError(t, err)
	assert.False(t, phoneActivated)

	searchable, err := entity.Bool(ctx, "searchable", false)
	require.NoError(t, err)
	assert.True(t, searchable)

	nickname, err := entity.String(ctx, "nickname", "")
	require.NoError(t, err)
	assert.Equal(t, "12", nickname)

	level, err := entity.Int(ctx, "level", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), level)

	heat, err := entity.Float(ctx, "heat", 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, heat, 0.0001)

	created, err := entity.Time(ctx, "createdTime")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 3, 1, 12, 30, 45, 0, time.UTC), created)

	extensions, err := entity.Object(ctx, "extensions")
	require.NoError(t, err)
	assert.Equal(t, "a,b", extensions.String("communityNameAliases", ""))

	tags, err := entity.List(ctx, "tags")
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	assert.Equal(t, 1, loader.calls)
}

func TestEntityMediaIsDerivedWithoutExtraFetches(t *testing.T) {
	t.Parallel()

	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, transport)

	loader := &countingLoader{snapshots: []Snapshot{
		{"icon": "https://cdn.example.test/a.png", "empty": ""},
		{"icon": "https://cdn.example.test/b.png"},
	}}
	entity := NewEntity(client, domain.EntityKey{ID: "u-1"}, loader.load, nil)
	ctx := context.Background()

	icon, err := entity.Media(ctx, "icon")
	require.NoError(t, err)
	require.NotNil(t, icon)
	assert.Equal(t, "https://cdn.example.test/a.png", icon.URL())

	again, err := entity.Media(ctx, "icon")
	require.NoError(t, err)
	assert.Same(t, icon, again)

	empty, err := entity.Media(ctx, "empty")
	require.NoError(t, err)
	assert.Nil(t, empty)
	assert.Equal(t, 1, loader.calls)

	refreshed, err := entity.Refresh().Media(ctx, "icon")
	require.NoError(t, err)
	assert.NotSame(t, icon, refreshed)
	assert.Equal(t, "https://cdn.example.test/b.png", refreshed.URL())
	assert.Equal(t, 2, loader.calls)

	transport.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestObjectLoaderReadsEnvelopeKey(t *testing.T) {
	t.Parallel()

	transport := mocks.NewMockTransport(t)
	client := newTestClient(t, transport)
	authenticate(t, client)

	transport.EXPECT().Do(mock.Anything, mock.MatchedBy(func(req ports.Request) bool {
		return req.URL == "https://api.example.test/api/v1/g/s/account"
	})).Return(ports.Response{StatusCode: 200, Body: []byte(`{"account":{"nickname":"ada"},"api:statuscode":0}`)}, nil).Once()

	entity := NewEntity(client, domain.EntityKey{ID: "auid-1"}, ObjectLoader(client, Request{Path: "/g/s/account", Auth: true}, "account"), nil)
	nickname, err := entity.String(context.Background(), "nickname", "")
	require.NoError(t, err)
	assert.Equal(t, "ada", nickname)
}

func TestTwoEntitiesWithSameKeyAreIndependentCaches(t *testing.T) {
	t.Parallel()

	first := &countingLoader{snapshots: []Snapshot{{"x": "1"}}}
	second := &countingLoader{snapshots: []Snapshot{{"x": "2"}}}
	key := domain.EntityKey{ID: "u-1", Scope: "42"}
	a := NewEntity(nil, key, first.load, nil)
	b := NewEntity(nil, key, second.load, nil)

	assert.True(t, a.Key().Equal(b.Key()))

	_, err := a.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.False(t, b.Loaded())

	_, err = b.String(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}
