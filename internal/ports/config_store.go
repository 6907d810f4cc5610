package ports

import (
	"context"

	"github.com/bnema/aminoacids/internal/domain"
)

type ConfigStore interface {
	Load(ctx context.Context) error
	Get(accountKey string) (domain.SessionRecord, bool)
	Merge(ctx context.Context, accountKey string, record domain.SessionRecord) error
}
