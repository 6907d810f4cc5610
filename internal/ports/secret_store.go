package ports

import "context"

// CredentialStore keeps remembered login passwords, keyed by account email.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
