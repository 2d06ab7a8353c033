package expense

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreateRequest struct {
	Description string
	Amount      float64
	Category    Category
	SpentAt     time.Time
	PaidTo      string
	RecordedBy  *ulid.ULID
	Notes       string
}

type UpdateRequest struct {
	Description *string
	Amount      *float64
	Category    *Category
	SpentAt     *time.Time
	PaidTo      *string
	Notes       *string
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Expense, error) {
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "debe ser mayor que cero")
	}
	if !req.Category.IsValid() {
		return nil, appErrors.NewValidationError("category", "categoría de gasto inválida")
	}

	spentAt := req.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	e := &Expense{
		Id:          pkg.GenerateULID(),
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Category:    req.Category,
		SpentAt:     spentAt,
		PaidTo:      strings.TrimSpace(req.PaidTo),
		RecordedBy:  req.RecordedBy,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   pkg.SetTimestamps(),
		UpdatedAt:   pkg.SetTimestamps(),
	}

	if err := s.Repository.Create(ctx, e); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

func (s *Service) Update(ctx context.Context, expenseID ulid.ULID, req *UpdateRequest) (*Expense, error) {
	e, err := s.GetById(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		e.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, appErrors.NewValidationError("amount", "debe ser mayor que cero")
		}
		e.Amount = *req.Amount
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, appErrors.NewValidationError("category", "categoría de gasto inválida")
		}
		e.Category = *req.Category
	}
	if req.SpentAt != nil {
		e.SpentAt = *req.SpentAt
	}
	if req.PaidTo != nil {
		e.PaidTo = strings.TrimSpace(*req.PaidTo)
	}
	if req.Notes != nil {
		e.Notes = strings.TrimSpace(*req.Notes)
	}
	e.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, e); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, expenseID ulid.ULID) error {
	if _, err := s.GetById(ctx, expenseID); err != nil {
		return err
	}
	if err := s.Repository.Delete(ctx, expenseID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) GetById(ctx context.Context, expenseID ulid.ULID) (*Expense, error) {
	e, err := s.Repository.GetById(ctx, expenseID)
	if err != nil {
		return nil, appErrors.ErrExpenseNotFound.WithError(err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Expense, int64, error) {
	return s.Repository.List(ctx, filter, pagination)
}

// MonthlyTotal sums expenses for a calendar month.
func (s *Service) MonthlyTotal(ctx context.Context, year int, month time.Month) (float64, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)
	return s.Repository.TotalInRange(ctx, from, to)
}
