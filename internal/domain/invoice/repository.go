package invoice

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ListFilter struct {
	ClientId *ulid.ULID
	Status   *Status
	Month    int
	Year     int
	Category string
}

type Repository interface {
	CreateWithLines(ctx context.Context, inv *Invoice, lines []*Line) error
	Update(ctx context.Context, inv *Invoice) error
	GetById(ctx context.Context, id ulid.ULID) (*Invoice, error)
	GetLines(ctx context.Context, invoiceID ulid.ULID) ([]*Line, error)
	List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Invoice, int64, error)
	ListPendingByClient(ctx context.Context, clientID ulid.ULID) ([]*Invoice, error)

	// AppliedTotal sums the payment allocations recorded against an
	// invoice in pago_factura.
	AppliedTotal(ctx context.Context, invoiceID ulid.ULID) (float64, error)
	SetStatus(ctx context.Context, invoiceID ulid.ULID, status Status, paidAt *time.Time) error
}
