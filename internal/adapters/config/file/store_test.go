package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	require.NoError(t, store.Load(context.Background()))
	_, ok := store.Get("a@example.test")
	assert.False(t, ok)
	assert.Empty(t, store.Snapshot())
}

func TestStoreLoadCorruptFileIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a@example.test": {"session_token": `), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))
	assert.Empty(t, store.Snapshot())

	require.NoError(t, store.Merge(context.Background(), "b@example.test", domain.SessionRecord{SessionToken: "tb"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]domain.SessionRecord
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]domain.SessionRecord{"b@example.test": {SessionToken: "tb"}}, doc)
}

func TestStoreLoadHonorsCancellation(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Load(ctx), context.Canceled)
	assert.ErrorIs(t, store.Merge(ctx, "a", domain.SessionRecord{}), context.Canceled)
}

func TestStoreMergeWritesJSONLayout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	store, err := NewStore(path)
	require.NoError(t, err)

	record := domain.SessionRecord{SessionToken: "sid", Secret: "0 pw", AccountID: "auid"}
	require.NoError(t, store.Merge(context.Background(), "a@example.test", record))

	got, ok := store.Get("a@example.test")
	require.True(t, ok)
	assert.Equal(t, record, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]string{
		"session_token": "sid",
		"secret":        "0 pw",
		"account_id":    "auid",
	}, raw["a@example.test"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreMergeKeepsEntriesWrittenByOtherStores(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	first, err := NewStore(path)
	require.NoError(t, err)
	second, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, first.Load(context.Background()))
	require.NoError(t, second.Load(context.Background()))

	require.NoError(t, first.Merge(context.Background(), "a", domain.SessionRecord{SessionToken: "ta"}))
	require.NoError(t, second.Merge(context.Background(), "b", domain.SessionRecord{SessionToken: "tb"}))

	_, ok := second.Get("a")
	assert.True(t, ok, "merge must read the document fresh from disk")

	reloaded, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(context.Background()))
	assert.Len(t, reloaded.Snapshot(), 2)
}

func TestStoreConcurrentMergesOfDifferentKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store, err := NewStore(path)
			if err != nil {
				errs <- err
				return
			}
			key := fmt.Sprintf("user-%d@example.test", i)
			errs <- store.Merge(ctx, key, domain.SessionRecord{SessionToken: fmt.Sprintf("t%d", i)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load(ctx))

	doc := store.Snapshot()
	require.Len(t, doc, writers)
	for i := range writers {
		assert.Equal(t, fmt.Sprintf("t%d", i), doc[fmt.Sprintf("user-%d@example.test", i)].SessionToken)
	}
}

func TestStoreConcurrentMergesOfSameKeyLeaveOneWholeRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value := fmt.Sprintf("v%d", i)
			_ = store.Merge(ctx, "a", domain.SessionRecord{SessionToken: value, Secret: value, AccountID: value})
		}(i)
	}
	wg.Wait()

	require.NoError(t, store.Load(ctx))
	record, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, record.SessionToken, record.Secret)
	assert.Equal(t, record.SessionToken, record.AccountID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreMergeRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.EqualError(t, store.Merge(context.Background(), "", domain.SessionRecord{}), "account key is required")
}

func TestNewStoreDefaultsToHomeDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".aminoacids", "config.json"), store.Path())
}
