package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
)

const (
	configDir       = ".aminoacids"
	configFile      = "config.json"
	configFileMode  = 0o600
	configDirMode   = 0o700
	tempFilePattern = ".config-*.json.tmp"
)

type document map[string]domain.SessionRecord

// Store persists session records as one JSON object keyed by account key.
// Writes are whole-document read-merge-write cycles serialized by a lock
// shared by every Store on the same path in this process. Reads are served
// from the last loaded snapshot.
type Store struct {
	path string
	mu   *sync.RWMutex
	snap atomic.Pointer[document]
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ConfigStore = (*Store)(nil)

// DefaultPath returns ~/.aminoacids/config.json.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, configDir, configFile), nil
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	store := &Store{path: absPath, mu: lockForPath(absPath)}
	empty := document{}
	store.snap.Store(&empty)

	return store, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory snapshot with the file contents. A missing or
// unreadable document loads as empty.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	doc := s.read()
	s.mu.RUnlock()

	s.snap.Store(&doc)
	return nil
}

func (s *Store) Get(accountKey string) (domain.SessionRecord, bool) {
	doc := s.snap.Load()
	if doc == nil {
		return domain.SessionRecord{}, false
	}

	record, ok := (*doc)[accountKey]
	return record, ok
}

// Merge writes record under accountKey while keeping every other entry
// currently on disk.
func (s *Store) Merge(ctx context.Context, accountKey string, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if accountKey == "" {
		return errors.New("account key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	doc[accountKey] = record

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.write(doc); err != nil {
		return err
	}

	s.snap.Store(&doc)
	return nil
}

// Snapshot returns a copy of the last loaded document.
func (s *Store) Snapshot() map[string]domain.SessionRecord {
	doc := s.snap.Load()
	if doc == nil {
		return map[string]domain.SessionRecord{}
	}

	return maps.Clone(map[string]domain.SessionRecord(*doc))
}

func (s *Store) read() document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return document{}
	}

	doc := document{}
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		return document{}
	}

	return doc
}

func (s *Store) write(doc document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
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
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false

	return nil
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
