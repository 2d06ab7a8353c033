package landing

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type Repository interface {
	CreateLead(ctx context.Context, lead *Lead) error
	ListLeads(ctx context.Context, onlyPending bool, pagination *pkg.PaginationParams) ([]*Lead, int64, error)
	MarkAttended(ctx context.Context, leadID ulid.ULID) error
}
