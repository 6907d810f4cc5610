package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
)

const (
	storeDirMode     = 0o700
	passwordFileMode = 0o600
	passwordSuffix   = ".password"
)

// Store keeps one remembered password per file under root, named after the
// account email.
type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, email string, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(email)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.root, storeDirMode); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(password), passwordFileMode); err != nil {
		return fmt.Errorf("write credential for %q: %w", email, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, email string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathFor(email)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("credential for %q: %w", email, domain.ErrCredentialNotFound)
		}
		return "", fmt.Errorf("read credential for %q: %w", email, err)
	}

	return string(data), nil
}

func (s *Store) Delete(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(email)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential for %q: %w", email, err)
	}

	return nil
}

// pathFor maps an email to a single file name directly under root.
func (s *Store) pathFor(email string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return "", errors.New("account email is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid account email %q", email)
	}

	return filepath.Join(s.root, name+passwordSuffix), nil
}
