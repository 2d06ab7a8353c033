package payment

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ListFilter struct {
	ClientId *ulid.ULID
	Type     *Type
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// CreateWithLinks persists the payment and all of its allocations in
	// one transaction; either everything lands or nothing does.
	CreateWithLinks(ctx context.Context, p *Payment, links []*InvoiceLink) error
	// DeleteWithLinks removes the payment and its allocations in one
	// transaction.
	DeleteWithLinks(ctx context.Context, paymentID ulid.ULID) error
	GetById(ctx context.Context, id ulid.ULID) (*Payment, error)
	GetLinks(ctx context.Context, paymentID ulid.ULID) ([]*InvoiceLink, error)
	List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Payment, int64, error)
	ListByClient(ctx context.Context, clientID ulid.ULID, pagination *pkg.PaginationParams) ([]*Payment, int64, error)
}
