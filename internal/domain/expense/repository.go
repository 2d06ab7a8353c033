package expense

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ListFilter struct {
	Category Category
	From     time.Time
	To       time.Time
}

type Repository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, expenseID ulid.ULID) error
	GetById(ctx context.Context, expenseID ulid.ULID) (*Expense, error)
	List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Expense, int64, error)
	TotalInRange(ctx context.Context, from, to time.Time) (float64, error)
}
