package ports

import (
	"context"

	"github.com/bnema/aminoacids/internal/domain"
)

type DeviceRepository interface {
	Get(ctx context.Context) (domain.DeviceProfile, error)
	Save(ctx context.Context, profile domain.DeviceProfile) error
}
