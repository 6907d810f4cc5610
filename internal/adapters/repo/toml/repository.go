package toml

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	deviceFileMode  = 0o600
	deviceDirMode   = 0o700
	tempFilePattern = ".device-*.toml.tmp"

	deviceIDPrefix = "01"
)

// DeviceRepository stores the device profile in a TOML file.
type DeviceRepository struct {
	path  string
	mu    *sync.RWMutex
	clock ports.Clock
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.DeviceRepository = (*DeviceRepository)(nil)

func NewDeviceRepository(path string, clock ports.Clock) (*DeviceRepository, error) {
	path, err := normalizePath(path, "device")
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &DeviceRepository{path: path, mu: lockForPath(path), clock: clock}, nil
}

func (r *DeviceRepository) Path() string {
	return r.path
}

// Get returns the stored profile or domain.ErrDeviceProfileNotFound.
func (r *DeviceRepository) Get(ctx context.Context) (domain.DeviceProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeviceProfile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.DeviceProfile{}, err
	}

	return fromSchema(file.Device), nil
}

func (r *DeviceRepository) Save(ctx context.Context, profile domain.DeviceProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid device profile: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(fileSchema{Device: r.toSchema(profile)})
}

// LoadOrCreate returns the stored profile. A missing or unreadable file is
// replaced by a freshly generated profile.
func (r *DeviceRepository) LoadOrCreate(ctx context.Context) (domain.DeviceProfile, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeviceProfile{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err == nil {
		profile := fromSchema(file.Device)
		if profile.Validate() == nil {
			return profile, false, nil
		}
	}

	profile := GenerateDeviceProfile()
	if err := r.writeSchema(fileSchema{Device: r.toSchema(profile)}); err != nil {
		return domain.DeviceProfile{}, false, err
	}

	return profile, true, nil
}

// GenerateDeviceProfile builds a profile with a random device id shaped like
// the ones the service issues: "01" followed by 40 random bytes in upper hex.
func GenerateDeviceProfile() domain.DeviceProfile {
	raw := make([]byte, 0, 48)
	for range 3 {
		id := uuid.New()
		raw = append(raw, id[:]...)
	}

	return domain.DeviceProfile{
		DeviceID:  deviceIDPrefix + strings.ToUpper(hex.EncodeToString(raw[:40])),
		UserAgent: domain.DefaultUserAgent,
	}
}

func (r *DeviceRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, domain.ErrDeviceProfileNotFound
		}
		return fileSchema{}, fmt.Errorf("read device file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode device file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	if file.Device.ID == "" {
		return fileSchema{}, domain.ErrDeviceProfileNotFound
	}

	return file, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *DeviceRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), deviceDirMode); err != nil {
		return fmt.Errorf("create device directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode device file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp device file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp device file: %w", err)
	}

	if err := tempFile.Chmod(deviceFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp device file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp device file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace device file: %w", err)
	}

	cleanup = false
	return nil
}

func (r *DeviceRepository) toSchema(profile domain.DeviceProfile) deviceSchema {
	return deviceSchema{
		ID:        profile.DeviceID,
		Signature: profile.DeviceSignature,
		UserAgent: profile.UserAgent,
		CreatedAt: r.clock.Now().UTC().Format(time.RFC3339),
	}
}

func fromSchema(device deviceSchema) domain.DeviceProfile {
	userAgent := device.UserAgent
	if userAgent == "" {
		userAgent = domain.DefaultUserAgent
	}

	return domain.DeviceProfile{
		DeviceID:        device.ID,
		DeviceSignature: device.Signature,
		UserAgent:       userAgent,
	}
}
