package invoice

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ClientCounter interface {
	IncrementInvoiceCount(ctx context.Context, id ulid.ULID, delta int) error
}

type Service struct {
	Repository    Repository
	ClientCounter ClientCounter
	shared.BaseService
}

func NewService(repo Repository, counter ClientCounter, clientChecker *shared.ClientCheckerService) *Service {
	return &Service{
		Repository:    repo,
		ClientCounter: counter,
		BaseService: shared.BaseService{
			ClientChecker: clientChecker,
		},
	}
}

type CreateInvoiceRequest struct {
	ClientId ulid.ULID
	Amount   float64
	Month    int
	Year     int
	Category catalog.Category
	DueDate  *time.Time
	Notes    string
	Lines    []CreateLineRequest
}

type CreateLineRequest struct {
	ServiceId ulid.ULID
	Amount    float64
}

func (s *Service) Create(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	if err := s.EnsureClientExists(ctx, req.ClientId); err != nil {
		return nil, err
	}

	if req.Month < 1 || req.Month > 12 {
		return nil, appErrors.NewValidationError("month", "debe estar entre 1 y 12")
	}
	if req.Year < 2000 {
		return nil, appErrors.NewValidationError("year", "año inválido")
	}
	if !req.Category.IsValid() {
		return nil, appErrors.NewValidationError("category", "categoría inválida")
	}

	amount := req.Amount
	lines := make([]*Line, 0, len(req.Lines))

	// With explicit lines the invoice amount is their sum; a caller
	// supplied amount only stands when no lines come in.
	if len(req.Lines) > 0 {
		amount = 0
		for _, l := range req.Lines {
			if l.Amount < 0 {
				return nil, appErrors.NewValidationError("lines", "el monto de línea debe ser mayor o igual a cero")
			}
			amount += l.Amount
		}
	}

	if amount < 0 {
		return nil, appErrors.NewValidationError("amount", "debe ser mayor o igual a cero")
	}

	now := pkg.SetTimestamps()
	inv := &Invoice{
		Id:        pkg.GenerateULID(),
		ClientId:  req.ClientId,
		Amount:    amount,
		Status:    StatusPending,
		Month:     req.Month,
		Year:      req.Year,
		Category:  req.Category,
		DueDate:   req.DueDate,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, l := range req.Lines {
		lines = append(lines, &Line{
			Id:        pkg.GenerateULID(),
			InvoiceId: inv.Id,
			ServiceId: l.ServiceId,
			Amount:    l.Amount,
		})
	}

	if err := s.Repository.CreateWithLines(ctx, inv, lines); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.ClientCounter.IncrementInvoiceCount(ctx, req.ClientId, 1); err != nil {
		// Counter drift is tolerable; the invoice itself is already
		// persisted.
		return inv, nil
	}

	return inv, nil
}

func (s *Service) GetById(ctx context.Context, invoiceID ulid.ULID) (*Invoice, error) {
	inv, err := s.Repository.GetById(ctx, invoiceID)
	if err != nil {
		return nil, appErrors.ErrInvoiceNotFound.WithError(err)
	}
	return inv, nil
}

// GetWithBalance loads an invoice together with its applied and pending
// figures.
func (s *Service) GetWithBalance(ctx context.Context, invoiceID ulid.ULID) (*WithBalance, error) {
	inv, err := s.GetById(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	applied, err := s.Repository.AppliedTotal(ctx, invoiceID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &WithBalance{
		Invoice: *inv,
		Applied: applied,
		Balance: inv.Balance(applied),
	}, nil
}

func (s *Service) GetLines(ctx context.Context, invoiceID ulid.ULID) ([]*Line, error) {
	return s.Repository.GetLines(ctx, invoiceID)
}

func (s *Service) List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*WithBalance, int64, error) {
	invoices, total, err := s.Repository.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*WithBalance, 0, len(invoices))
	for _, inv := range invoices {
		applied, err := s.Repository.AppliedTotal(ctx, inv.Id)
		if err != nil {
			return nil, 0, appErrors.NewDatabaseError(err)
		}
		out = append(out, &WithBalance{
			Invoice: *inv,
			Applied: applied,
			Balance: inv.Balance(applied),
		})
	}

	return out, total, nil
}

func (s *Service) ListPendingByClient(ctx context.Context, clientID ulid.ULID) ([]*WithBalance, error) {
	if err := s.EnsureClientExists(ctx, clientID); err != nil {
		return nil, err
	}

	invoices, err := s.Repository.ListPendingByClient(ctx, clientID)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*WithBalance, 0, len(invoices))
	for _, inv := range invoices {
		applied, err := s.Repository.AppliedTotal(ctx, inv.Id)
		if err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}
		out = append(out, &WithBalance{
			Invoice: *inv,
			Applied: applied,
			Balance: inv.Balance(applied),
		})
	}

	return out, nil
}

func (s *Service) Cancel(ctx context.Context, invoiceID ulid.ULID) error {
	inv, err := s.GetById(ctx, invoiceID)
	if err != nil {
		return err
	}

	if inv.Status == StatusPaid {
		return appErrors.ErrInvoiceAlreadyPaid
	}
	if inv.Status == StatusCancelled {
		return appErrors.ErrInvoiceCancelled
	}

	return s.Repository.SetStatus(ctx, invoiceID, StatusCancelled, nil)
}

// SettleIfCovered flips an invoice to Paid when its applied total reaches
// the amount. Every payment path runs through here, so the transition is
// consistent regardless of how the money arrived.
func (s *Service) SettleIfCovered(ctx context.Context, invoiceID ulid.ULID) error {
	inv, err := s.GetById(ctx, invoiceID)
	if err != nil {
		return err
	}

	if inv.Status != StatusPending {
		return nil
	}

	applied, err := s.Repository.AppliedTotal(ctx, invoiceID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if !inv.Covered(applied) {
		return nil
	}

	now := time.Now()
	return s.Repository.SetStatus(ctx, invoiceID, StatusPaid, &now)
}

// ReopenIfUncovered reverts a Paid invoice to Pending after a payment
// deletion left it short.
func (s *Service) ReopenIfUncovered(ctx context.Context, invoiceID ulid.ULID) error {
	inv, err := s.GetById(ctx, invoiceID)
	if err != nil {
		return err
	}

	if inv.Status != StatusPaid {
		return nil
	}

	applied, err := s.Repository.AppliedTotal(ctx, invoiceID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if inv.Covered(applied) {
		return nil
	}

	return s.Repository.SetStatus(ctx, invoiceID, StatusPending, nil)
}
