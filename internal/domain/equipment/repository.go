package equipment

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ListFilter struct {
	Search   string
	Status   Status
	ClientId *ulid.ULID
}

type Repository interface {
	Create(ctx context.Context, equipment *Equipment) error
	Update(ctx context.Context, equipment *Equipment) error
	GetById(ctx context.Context, equipmentID ulid.ULID) (*Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*Equipment, error)
	List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Equipment, int64, error)
	ListByClient(ctx context.Context, clientID ulid.ULID) ([]*Equipment, error)
}
