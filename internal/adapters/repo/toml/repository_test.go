package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestRepository(t *testing.T, path string) *DeviceRepository {
	t.Helper()

	repo, err := NewDeviceRepository(path, fixedClock{now: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return repo
}

func TestDeviceRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")
	repo := newTestRepository(t, devicePath)

	profile := domain.DeviceProfile{DeviceID: "01ABCDEF", DeviceSignature: "sig", UserAgent: "agent/1.0"}
	require.NoError(t, repo.Save(context.Background(), profile))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile, got)

	data, err := os.ReadFile(devicePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "2026-02-14T11:00:00Z")

	info, err := os.Stat(devicePath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDeviceRepositoryMissingFileIsNotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "device.toml"))

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrDeviceProfileNotFound)
}

func TestDeviceRepositoryMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(devicePath, []byte("device = ["), 0o600))

	_, err := newTestRepository(t, devicePath).Get(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode device file")
}

func TestDeviceRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(devicePath, []byte(strings.Join([]string{
		"version = 999",
		"",
		"[device]",
		"id = \"01AB\"",
		"",
	}, "\n")), 0o600))

	_, err := newTestRepository(t, devicePath).Get(context.Background())
	assert.ErrorContains(t, err, "unsupported device schema version")
}

func TestDeviceRepositoryFillsDefaultUserAgent(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(devicePath, []byte("[device]\nid = \"01AB\"\n"), 0o600))

	profile, err := newTestRepository(t, devicePath).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "01AB", profile.DeviceID)
	assert.Equal(t, domain.DefaultUserAgent, profile.UserAgent)
}

func TestDeviceRepositorySaveRejectsInvalidProfile(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "device.toml"))
	err := repo.Save(context.Background(), domain.DeviceProfile{UserAgent: "agent"})
	assert.ErrorContains(t, err, "device id is required")
}

func TestDeviceRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "device.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.DeviceProfile{DeviceID: "01AB", UserAgent: "agent"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadOrCreateGeneratesOnceThenRereads(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")
	repo := newTestRepository(t, devicePath)

	first, created, err := repo.LoadOrCreate(context.Background())
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, first.Validate())

	second, created, err := newTestRepository(t, devicePath).LoadOrCreate(context.Background())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)
}

func TestLoadOrCreateReplacesCorruptFile(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")
	require.NoError(t, os.WriteFile(devicePath, []byte("not toml ["), 0o600))

	profile, created, err := newTestRepository(t, devicePath).LoadOrCreate(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	got, err := newTestRepository(t, devicePath).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestLoadOrCreateConcurrentCallersAgree(t *testing.T) {
	t.Parallel()

	devicePath := filepath.Join(t.TempDir(), "device.toml")

	const callers = 8
	profiles := make([]domain.DeviceProfile, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo, err := NewDeviceRepository(devicePath, nil)
			if err != nil {
				return
			}
			profiles[i], _, _ = repo.LoadOrCreate(context.Background())
		}(i)
	}
	wg.Wait()

	for _, profile := range profiles[1:] {
		assert.Equal(t, profiles[0], profile)
	}
}

func TestGenerateDeviceProfileShape(t *testing.T) {
	t.Parallel()

	first := GenerateDeviceProfile()
	second := GenerateDeviceProfile()

	assert.Len(t, first.DeviceID, len(domain.DefaultDeviceID))
	assert.True(t, strings.HasPrefix(first.DeviceID, "01"))
	assert.Equal(t, strings.ToUpper(first.DeviceID), first.DeviceID)
	assert.NotEqual(t, first.DeviceID, second.DeviceID)
	assert.Equal(t, domain.DefaultUserAgent, first.UserAgent)
}
