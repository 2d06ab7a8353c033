package payment

import (
	"context"
	"math"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

// amountTolerance absorbs float rounding when comparing money totals.
const amountTolerance = 0.01

// Invoices is the slice of the invoice service the payment path needs.
type Invoices interface {
	GetById(ctx context.Context, invoiceID ulid.ULID) (*invoice.Invoice, error)
	GetWithBalance(ctx context.Context, invoiceID ulid.ULID) (*invoice.WithBalance, error)
	SettleIfCovered(ctx context.Context, invoiceID ulid.ULID) error
	ReopenIfUncovered(ctx context.Context, invoiceID ulid.ULID) error
}

type Service struct {
	Repository Repository
	Invoices   Invoices
	shared.BaseService
}

func NewService(repo Repository, invoices Invoices, clientChecker *shared.ClientCheckerService) *Service {
	return &Service{
		Repository: repo,
		Invoices:   invoices,
		BaseService: shared.BaseService{
			ClientChecker: clientChecker,
		},
	}
}

// Tender carries how the money arrived; shared by both payment paths.
type Tender struct {
	Currency       Currency
	Type           Type
	BankName       string
	BankRef        string
	CordobaAmount  float64
	DollarAmount   float64
	ExchangeRate   float64
	ReceivedAmount float64
	ReceivedBy     *ulid.ULID
	Notes          string
}

type PayInvoiceRequest struct {
	InvoiceId ulid.ULID
	// Amount at or below zero means "pay the remaining balance".
	Amount float64
	Tender Tender
}

type Allocation struct {
	InvoiceId ulid.ULID
	Amount    float64
}

type PayMultipleRequest struct {
	Total       float64
	Allocations []Allocation
	Tender      Tender
}

func (t *Tender) validate() error {
	if t.Currency == "" {
		t.Currency = CurrencyCordoba
	}
	if !t.Currency.IsValid() {
		return appErrors.NewValidationError("currency", "moneda inválida")
	}
	if t.Type == "" {
		t.Type = TypeCash
	}
	if !t.Type.IsValid() {
		return appErrors.NewValidationError("type", "tipo de pago inválido")
	}
	return nil
}

func (s *Service) buildPayment(clientID ulid.ULID, amount float64, t Tender) *Payment {
	p := &Payment{
		Id:             pkg.GenerateULID(),
		ClientId:       clientID,
		Amount:         amount,
		Currency:       t.Currency,
		Type:           t.Type,
		BankName:       strings.TrimSpace(t.BankName),
		BankRef:        strings.TrimSpace(t.BankRef),
		CordobaAmount:  t.CordobaAmount,
		DollarAmount:   t.DollarAmount,
		ExchangeRate:   t.ExchangeRate,
		ReceivedAmount: t.ReceivedAmount,
		ReceivedBy:     t.ReceivedBy,
		Notes:          strings.TrimSpace(t.Notes),
		CreatedAt:      pkg.SetTimestamps(),
	}

	if p.ReceivedAmount > p.Amount {
		p.ChangeAmount = p.ReceivedAmount - p.Amount
	}

	return p
}

func payableCheck(inv *invoice.Invoice) error {
	switch inv.Status {
	case invoice.StatusPaid:
		return appErrors.ErrInvoiceAlreadyPaid
	case invoice.StatusCancelled:
		return appErrors.ErrInvoiceCancelled
	}
	return nil
}

// PayInvoice records a payment against a single invoice.
func (s *Service) PayInvoice(ctx context.Context, req *PayInvoiceRequest) (*Payment, error) {
	if err := req.Tender.validate(); err != nil {
		return nil, err
	}

	wb, err := s.Invoices.GetWithBalance(ctx, req.InvoiceId)
	if err != nil {
		return nil, err
	}

	if err := payableCheck(&wb.Invoice); err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount <= 0 {
		amount = wb.Balance
	}
	if amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "la factura no tiene saldo pendiente")
	}

	p := s.buildPayment(wb.ClientId, amount, req.Tender)
	links := []*InvoiceLink{{
		Id:            pkg.GenerateULID(),
		PaymentId:     p.Id,
		InvoiceId:     req.InvoiceId,
		AmountApplied: amount,
	}}

	if err := s.Repository.CreateWithLinks(ctx, p, links); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	if err := s.Invoices.SettleIfCovered(ctx, req.InvoiceId); err != nil {
		return nil, err
	}

	return p, nil
}

// PayMultiple records one payment split across several invoices of the
// same client. The whole allocation set either lands or nothing does.
func (s *Service) PayMultiple(ctx context.Context, req *PayMultipleRequest) (*Payment, error) {
	if err := req.Tender.validate(); err != nil {
		return nil, err
	}

	if req.Total <= 0 {
		return nil, appErrors.NewValidationError("total", "debe ser mayor que cero")
	}
	if len(req.Allocations) == 0 {
		return nil, appErrors.NewValidationError("allocations", "debe indicar al menos una factura")
	}

	var sum float64
	seen := make(map[ulid.ULID]bool, len(req.Allocations))
	for _, a := range req.Allocations {
		if a.Amount <= 0 {
			return nil, appErrors.NewValidationError("allocations", "cada monto aplicado debe ser mayor que cero")
		}
		if seen[a.InvoiceId] {
			return nil, appErrors.NewValidationError("allocations", "factura repetida en la distribución")
		}
		seen[a.InvoiceId] = true
		sum += a.Amount
	}

	if math.Abs(sum-req.Total) > amountTolerance {
		return nil, appErrors.NewValidationError("total", "la suma de los montos aplicados no coincide con el total").
			WithDetails(map[string]interface{}{
				"total":   req.Total,
				"applied": sum,
			})
	}

	var clientID ulid.ULID
	for i, a := range req.Allocations {
		inv, err := s.Invoices.GetById(ctx, a.InvoiceId)
		if err != nil {
			return nil, err
		}
		if err := payableCheck(inv); err != nil {
			return nil, err
		}
		if i == 0 {
			clientID = inv.ClientId
		} else if inv.ClientId != clientID {
			return nil, appErrors.NewValidationError("allocations", "todas las facturas deben pertenecer al mismo cliente")
		}
	}

	p := s.buildPayment(clientID, req.Total, req.Tender)
	links := make([]*InvoiceLink, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		links = append(links, &InvoiceLink{
			Id:            pkg.GenerateULID(),
			PaymentId:     p.Id,
			InvoiceId:     a.InvoiceId,
			AmountApplied: a.Amount,
		})
	}

	if err := s.Repository.CreateWithLinks(ctx, p, links); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	for _, a := range req.Allocations {
		if err := s.Invoices.SettleIfCovered(ctx, a.InvoiceId); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (s *Service) GetById(ctx context.Context, paymentID ulid.ULID) (*Payment, error) {
	p, err := s.Repository.GetById(ctx, paymentID)
	if err != nil {
		return nil, appErrors.ErrPaymentNotFound.WithError(err)
	}
	return p, nil
}

func (s *Service) GetLinks(ctx context.Context, paymentID ulid.ULID) ([]*InvoiceLink, error) {
	return s.Repository.GetLinks(ctx, paymentID)
}

func (s *Service) List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Payment, int64, error) {
	return s.Repository.List(ctx, filter, pagination)
}

func (s *Service) ListByClient(ctx context.Context, clientID ulid.ULID, pagination *pkg.PaginationParams) ([]*Payment, int64, error) {
	if err := s.EnsureClientExists(ctx, clientID); err != nil {
		return nil, 0, err
	}
	return s.Repository.ListByClient(ctx, clientID, pagination)
}

// Delete removes a payment and reopens any invoice the removal left
// uncovered.
func (s *Service) Delete(ctx context.Context, paymentID ulid.ULID) error {
	if _, err := s.GetById(ctx, paymentID); err != nil {
		return err
	}

	links, err := s.Repository.GetLinks(ctx, paymentID)
	if err != nil {
		return appErrors.NewDatabaseError(err)
	}

	if err := s.Repository.DeleteWithLinks(ctx, paymentID); err != nil {
		return appErrors.NewDatabaseError(err)
	}

	for _, link := range links {
		if err := s.Invoices.ReopenIfUncovered(ctx, link.InvoiceId); err != nil {
			return err
		}
	}

	return nil
}
