package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/aminoacids/internal/adapters/secrets/file"
	passstore "github.com/bnema/aminoacids/internal/adapters/secrets/pass"
	"github.com/bnema/aminoacids/internal/domain"
	"github.com/bnema/aminoacids/internal/ports"
)

// Store tries its backends in order. Writes land in the first backend that
// accepts them; reads return the first hit; deletes reach every backend.
type Store struct {
	backends []ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var errNoBackends = errors.New("credential chain has no backends")

func NewStore(backends ...ports.CredentialStore) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("credential backend %d is nil", i)
		}
	}

	return &Store{backends: backends}, nil
}

// NewPassFirstWithFileFallback prefers the pass password manager and falls
// back to plain files under fileRoot.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(passstore.DefaultPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, email string, password string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Put(ctx, email, password)
		if err == nil {
			return nil
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, err)
	}

	return fmt.Errorf("store credential: %w", errors.Join(errs...))
}

func (s *Store) Get(ctx context.Context, email string) (string, error) {
	var errs []error
	notFound := 0
	for _, backend := range s.backends {
		password, err := backend.Get(ctx, email)
		if err == nil {
			return password, nil
		}
		if isContextError(err) {
			return "", err
		}
		if errors.Is(err, domain.ErrCredentialNotFound) {
			notFound++
		}
		errs = append(errs, err)
	}

	if notFound == len(s.backends) {
		return "", fmt.Errorf("credential for %q: %w", email, domain.ErrCredentialNotFound)
	}

	return "", fmt.Errorf("load credential: %w", errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, email string) error {
	var errs []error
	for _, backend := range s.backends {
		err := backend.Delete(ctx, email)
		if err == nil {
			continue
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, err)
	}

	// A single reachable backend is enough for the entry to be gone.
	if len(errs) == len(s.backends) {
		return fmt.Errorf("delete credential: %w", errors.Join(errs...))
	}

	return nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
