package client

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ListFilter struct {
	Search     string
	Sector     string
	OnlyActive bool
}

type Repository interface {
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	GetById(ctx context.Context, id ulid.ULID) (*Client, error)
	GetByCode(ctx context.Context, code string) (*Client, error)
	List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Client, int64, error)
	IncrementInvoiceCount(ctx context.Context, id ulid.ULID, delta int) error
}
