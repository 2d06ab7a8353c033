package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/domain/payment"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type fakePaymentRepository struct {
	createWithLinksFn func(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error
	deleteWithLinksFn func(ctx context.Context, paymentID ulid.ULID) error
	getByIdFn         func(ctx context.Context, id ulid.ULID) (*payment.Payment, error)
	getLinksFn        func(ctx context.Context, paymentID ulid.ULID) ([]*payment.InvoiceLink, error)
}

func (f *fakePaymentRepository) CreateWithLinks(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
	if f.createWithLinksFn != nil {
		return f.createWithLinksFn(ctx, p, links)
	}
	return nil
}

func (f *fakePaymentRepository) DeleteWithLinks(ctx context.Context, paymentID ulid.ULID) error {
	if f.deleteWithLinksFn != nil {
		return f.deleteWithLinksFn(ctx, paymentID)
	}
	return nil
}

func (f *fakePaymentRepository) GetById(ctx context.Context, id ulid.ULID) (*payment.Payment, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, id)
	}
	return &payment.Payment{Id: id}, nil
}

func (f *fakePaymentRepository) GetLinks(ctx context.Context, paymentID ulid.ULID) ([]*payment.InvoiceLink, error) {
	if f.getLinksFn != nil {
		return f.getLinksFn(ctx, paymentID)
	}
	return nil, nil
}

func (f *fakePaymentRepository) List(ctx context.Context, filter payment.ListFilter, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepository) ListByClient(ctx context.Context, clientID ulid.ULID, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	return nil, 0, nil
}

type fakeInvoices struct {
	getByIdFn        func(ctx context.Context, invoiceID ulid.ULID) (*invoice.Invoice, error)
	getWithBalanceFn func(ctx context.Context, invoiceID ulid.ULID) (*invoice.WithBalance, error)

	settled  []ulid.ULID
	reopened []ulid.ULID
}

func (f *fakeInvoices) GetById(ctx context.Context, invoiceID ulid.ULID) (*invoice.Invoice, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, invoiceID)
	}
	return &invoice.Invoice{Id: invoiceID, Status: invoice.StatusPending}, nil
}

func (f *fakeInvoices) GetWithBalance(ctx context.Context, invoiceID ulid.ULID) (*invoice.WithBalance, error) {
	if f.getWithBalanceFn != nil {
		return f.getWithBalanceFn(ctx, invoiceID)
	}
	return &invoice.WithBalance{
		Invoice: invoice.Invoice{Id: invoiceID, Status: invoice.StatusPending},
	}, nil
}

func (f *fakeInvoices) SettleIfCovered(ctx context.Context, invoiceID ulid.ULID) error {
	f.settled = append(f.settled, invoiceID)
	return nil
}

func (f *fakeInvoices) ReopenIfUncovered(ctx context.Context, invoiceID ulid.ULID) error {
	f.reopened = append(f.reopened, invoiceID)
	return nil
}

func TestServicePayInvoiceRejectsSettledInvoices(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()

	tests := []struct {
		name        string
		status      invoice.Status
		balance     float64
		wantErrCode string
	}{
		{
			name:        "already paid",
			status:      invoice.StatusPaid,
			wantErrCode: appErrors.ErrInvoiceAlreadyPaid.Code,
		},
		{
			name:        "cancelled",
			status:      invoice.StatusCancelled,
			wantErrCode: appErrors.ErrInvoiceCancelled.Code,
		},
		{
			name:        "pending without balance",
			status:      invoice.StatusPending,
			balance:     0,
			wantErrCode: "VALIDATION_ERROR",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			created := 0
			repo := &fakePaymentRepository{
				createWithLinksFn: func(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
					created++
					return nil
				},
			}
			invoices := &fakeInvoices{
				getWithBalanceFn: func(ctx context.Context, invoiceID ulid.ULID) (*invoice.WithBalance, error) {
					return &invoice.WithBalance{
						Invoice: invoice.Invoice{Id: invoiceID, ClientId: clientID, Amount: 1000, Status: tt.status},
						Applied: 1000 - tt.balance,
						Balance: tt.balance,
					}, nil
				},
			}

			svc := payment.Service{Repository: repo, Invoices: invoices}

			_, err := svc.PayInvoice(ctx, &payment.PayInvoiceRequest{InvoiceId: ulid.Make()})
			if err == nil {
				t.Fatalf("expected error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tt.wantErrCode {
				t.Fatalf("expected code %s, got %s", tt.wantErrCode, appErr.Code)
			}
			if created != 0 {
				t.Fatalf("expected no payment to be recorded, got %d", created)
			}
			if len(invoices.settled) != 0 {
				t.Fatalf("expected no settle attempt")
			}
		})
	}
}

func TestServicePayInvoiceDefaultsToBalance(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()
	invoiceID := ulid.Make()

	var gotLinks []*payment.InvoiceLink
	repo := &fakePaymentRepository{
		createWithLinksFn: func(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
			gotLinks = links
			return nil
		},
	}
	invoices := &fakeInvoices{
		getWithBalanceFn: func(ctx context.Context, id ulid.ULID) (*invoice.WithBalance, error) {
			return &invoice.WithBalance{
				Invoice: invoice.Invoice{Id: id, ClientId: clientID, Amount: 1000, Status: invoice.StatusPending},
				Applied: 400,
				Balance: 600,
			}, nil
		},
	}

	svc := payment.Service{Repository: repo, Invoices: invoices}

	p, err := svc.PayInvoice(context.Background(), &payment.PayInvoiceRequest{InvoiceId: invoiceID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Amount != 600 {
		t.Fatalf("expected payment for the remaining 600, got %v", p.Amount)
	}
	if p.ClientId != clientID {
		t.Fatalf("expected payment to carry the invoice's client")
	}
	if p.Currency != payment.CurrencyCordoba || p.Type != payment.TypeCash {
		t.Fatalf("expected cash in córdobas by default, got %s/%s", p.Currency, p.Type)
	}
	if len(gotLinks) != 1 {
		t.Fatalf("expected a single allocation, got %d", len(gotLinks))
	}
	if gotLinks[0].InvoiceId != invoiceID || gotLinks[0].AmountApplied != 600 {
		t.Fatalf("unexpected allocation: %+v", gotLinks[0])
	}
	if len(invoices.settled) != 1 || invoices.settled[0] != invoiceID {
		t.Fatalf("expected settle check on the paid invoice")
	}
}

func TestServicePayInvoiceComputesChange(t *testing.T) {
	t.Parallel()

	invoices := &fakeInvoices{
		getWithBalanceFn: func(ctx context.Context, id ulid.ULID) (*invoice.WithBalance, error) {
			return &invoice.WithBalance{
				Invoice: invoice.Invoice{Id: id, ClientId: ulid.Make(), Amount: 800, Status: invoice.StatusPending},
				Balance: 800,
			}, nil
		},
	}

	svc := payment.Service{Repository: &fakePaymentRepository{}, Invoices: invoices}

	p, err := svc.PayInvoice(context.Background(), &payment.PayInvoiceRequest{
		InvoiceId: ulid.Make(),
		Amount:    800,
		Tender:    payment.Tender{ReceivedAmount: 1000},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ChangeAmount != 200 {
		t.Fatalf("expected change of 200, got %v", p.ChangeAmount)
	}
}

func TestServicePayMultipleValidations(t *testing.T) {
	t.Parallel()

	invA := ulid.Make()
	invB := ulid.Make()

	tests := []struct {
		name        string
		total       float64
		allocations []payment.Allocation
		wantErrCode string
	}{
		{
			name:        "total must be positive",
			total:       0,
			allocations: []payment.Allocation{{InvoiceId: invA, Amount: 100}},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "allocations required",
			total:       100,
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "allocation amounts must be positive",
			total:       100,
			allocations: []payment.Allocation{{InvoiceId: invA, Amount: 100}, {InvoiceId: invB, Amount: 0}},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "repeated invoice",
			total:       200,
			allocations: []payment.Allocation{{InvoiceId: invA, Amount: 100}, {InvoiceId: invA, Amount: 100}},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "sum must match total",
			total:       1000,
			allocations: []payment.Allocation{{InvoiceId: invA, Amount: 600}, {InvoiceId: invB, Amount: 300}},
			wantErrCode: "VALIDATION_ERROR",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			created := 0
			repo := &fakePaymentRepository{
				createWithLinksFn: func(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
					created++
					return nil
				},
			}
			svc := payment.Service{Repository: repo, Invoices: &fakeInvoices{}}

			_, err := svc.PayMultiple(ctx, &payment.PayMultipleRequest{
				Total:       tt.total,
				Allocations: tt.allocations,
			})
			if err == nil {
				t.Fatalf("expected error")
			}
			appErr, ok := appErrors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tt.wantErrCode {
				t.Fatalf("expected code %s, got %s", tt.wantErrCode, appErr.Code)
			}
			if created != 0 {
				t.Fatalf("expected no payment to be recorded")
			}
		})
	}
}

func TestServicePayMultipleRejectsMixedClients(t *testing.T) {
	t.Parallel()

	invA := ulid.Make()
	invB := ulid.Make()
	clientA := ulid.Make()
	clientB := ulid.Make()

	invoices := &fakeInvoices{
		getByIdFn: func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
			owner := clientA
			if id == invB {
				owner = clientB
			}
			return &invoice.Invoice{Id: id, ClientId: owner, Amount: 500, Status: invoice.StatusPending}, nil
		},
	}

	svc := payment.Service{Repository: &fakePaymentRepository{}, Invoices: invoices}

	_, err := svc.PayMultiple(context.Background(), &payment.PayMultipleRequest{
		Total:       1000,
		Allocations: []payment.Allocation{{InvoiceId: invA, Amount: 500}, {InvoiceId: invB, Amount: 500}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	appErr, _ := appErrors.AsAppError(err)
	if appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", appErr.Code)
	}
}

func TestServicePayMultipleCreatesOnePaymentWithAllLinks(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()
	invA := ulid.Make()
	invB := ulid.Make()

	created := 0
	var gotPayment *payment.Payment
	var gotLinks []*payment.InvoiceLink
	repo := &fakePaymentRepository{
		createWithLinksFn: func(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
			created++
			gotPayment = p
			gotLinks = links
			return nil
		},
	}
	invoices := &fakeInvoices{
		getByIdFn: func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
			return &invoice.Invoice{Id: id, ClientId: clientID, Amount: 600, Status: invoice.StatusPending}, nil
		},
	}

	svc := payment.Service{Repository: repo, Invoices: invoices}

	p, err := svc.PayMultiple(context.Background(), &payment.PayMultipleRequest{
		Total:       1000,
		Allocations: []payment.Allocation{{InvoiceId: invA, Amount: 600}, {InvoiceId: invB, Amount: 400}},
		Tender:      payment.Tender{Type: payment.TypeTransfer, BankName: "BAC"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created != 1 {
		t.Fatalf("expected exactly one payment record, got %d", created)
	}
	if gotPayment.Amount != 1000 || gotPayment.ClientId != clientID {
		t.Fatalf("unexpected payment: %+v", gotPayment)
	}
	if len(gotLinks) != 2 {
		t.Fatalf("expected two allocations, got %d", len(gotLinks))
	}
	for _, link := range gotLinks {
		if link.PaymentId != p.Id {
			t.Fatalf("allocation not tied to the payment")
		}
	}
	if len(invoices.settled) != 2 {
		t.Fatalf("expected settle check on both invoices, got %d", len(invoices.settled))
	}
}

func TestServiceDeleteReopensLinkedInvoices(t *testing.T) {
	t.Parallel()

	paymentID := ulid.Make()
	invA := ulid.Make()
	invB := ulid.Make()

	t.Run("payment not found", func(t *testing.T) {
		repo := &fakePaymentRepository{
			getByIdFn: func(ctx context.Context, id ulid.ULID) (*payment.Payment, error) {
				return nil, appErrors.ErrNotFound
			},
		}
		svc := payment.Service{Repository: repo, Invoices: &fakeInvoices{}}

		err := svc.Delete(context.Background(), paymentID)
		appErr, ok := appErrors.AsAppError(err)
		if !ok || appErr.Code != appErrors.ErrPaymentNotFound.Code {
			t.Fatalf("expected %s, got %v", appErrors.ErrPaymentNotFound.Code, err)
		}
	})

	t.Run("reopens every linked invoice", func(t *testing.T) {
		deleted := false
		repo := &fakePaymentRepository{
			getLinksFn: func(ctx context.Context, id ulid.ULID) ([]*payment.InvoiceLink, error) {
				return []*payment.InvoiceLink{
					{Id: ulid.Make(), PaymentId: id, InvoiceId: invA, AmountApplied: 600},
					{Id: ulid.Make(), PaymentId: id, InvoiceId: invB, AmountApplied: 400},
				}, nil
			},
			deleteWithLinksFn: func(ctx context.Context, id ulid.ULID) error {
				deleted = true
				return nil
			},
		}
		invoices := &fakeInvoices{}
		svc := payment.Service{Repository: repo, Invoices: invoices}

		if err := svc.Delete(context.Background(), paymentID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !deleted {
			t.Fatalf("expected the payment to be removed")
		}
		if len(invoices.reopened) != 2 {
			t.Fatalf("expected reopen check on both invoices, got %d", len(invoices.reopened))
		}
	})
}

// memStore backs a stateful fake pair so a payment flow can run against
// the real invoice service, settle logic included.
type memStore struct {
	invoices map[ulid.ULID]*invoice.Invoice
	payments map[ulid.ULID]*payment.Payment
	links    []*payment.InvoiceLink
}

func newMemStore() *memStore {
	return &memStore{
		invoices: make(map[ulid.ULID]*invoice.Invoice),
		payments: make(map[ulid.ULID]*payment.Payment),
	}
}

func (m *memStore) applied(invoiceID ulid.ULID) float64 {
	var sum float64
	for _, link := range m.links {
		if link.InvoiceId == invoiceID {
			sum += link.AmountApplied
		}
	}
	return sum
}

type memInvoiceRepository struct{ store *memStore }

func (r *memInvoiceRepository) CreateWithLines(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error {
	r.store.invoices[inv.Id] = inv
	return nil
}

func (r *memInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.store.invoices[inv.Id] = inv
	return nil
}

func (r *memInvoiceRepository) GetById(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	copy := *inv
	return &copy, nil
}

func (r *memInvoiceRepository) GetLines(ctx context.Context, invoiceID ulid.ULID) ([]*invoice.Line, error) {
	return nil, nil
}

func (r *memInvoiceRepository) List(ctx context.Context, filter invoice.ListFilter, pagination *pkg.PaginationParams) ([]*invoice.Invoice, int64, error) {
	return nil, 0, nil
}

func (r *memInvoiceRepository) ListPendingByClient(ctx context.Context, clientID ulid.ULID) ([]*invoice.Invoice, error) {
	return nil, nil
}

func (r *memInvoiceRepository) AppliedTotal(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
	return r.store.applied(invoiceID), nil
}

func (r *memInvoiceRepository) SetStatus(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
	inv, ok := r.store.invoices[invoiceID]
	if !ok {
		return appErrors.ErrNotFound
	}
	inv.Status = status
	inv.PaidAt = paidAt
	return nil
}

type memPaymentRepository struct{ store *memStore }

func (r *memPaymentRepository) CreateWithLinks(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
	r.store.payments[p.Id] = p
	r.store.links = append(r.store.links, links...)
	return nil
}

func (r *memPaymentRepository) DeleteWithLinks(ctx context.Context, paymentID ulid.ULID) error {
	delete(r.store.payments, paymentID)
	kept := r.store.links[:0]
	for _, link := range r.store.links {
		if link.PaymentId != paymentID {
			kept = append(kept, link)
		}
	}
	r.store.links = kept
	return nil
}

func (r *memPaymentRepository) GetById(ctx context.Context, id ulid.ULID) (*payment.Payment, error) {
	p, ok := r.store.payments[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return p, nil
}

func (r *memPaymentRepository) GetLinks(ctx context.Context, paymentID ulid.ULID) ([]*payment.InvoiceLink, error) {
	var out []*payment.InvoiceLink
	for _, link := range r.store.links {
		if link.PaymentId == paymentID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (r *memPaymentRepository) List(ctx context.Context, filter payment.ListFilter, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	return nil, 0, nil
}

func (r *memPaymentRepository) ListByClient(ctx context.Context, clientID ulid.ULID, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	return nil, 0, nil
}

type noopCounter struct{}

func (noopCounter) IncrementInvoiceCount(ctx context.Context, id ulid.ULID, delta int) error {
	return nil
}

// The partial payment flow end to end: a 1000 invoice takes a 400
// abono, stays pending with a 600 balance, settles when the rest
// arrives, and reopens when that second payment is deleted.
func TestPartialPaymentLifecycle(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	invoiceSvc := invoice.Service{Repository: &memInvoiceRepository{store: store}, ClientCounter: noopCounter{}}
	paymentSvc := payment.Service{Repository: &memPaymentRepository{store: store}, Invoices: &invoiceSvc}

	ctx := context.Background()
	clientID := ulid.Make()
	invoiceID := pkg.GenerateULID()
	store.invoices[invoiceID] = &invoice.Invoice{
		Id:       invoiceID,
		ClientId: clientID,
		Amount:   1000,
		Status:   invoice.StatusPending,
		Month:    3,
		Year:     2026,
		Category: catalog.CategoryInternet,
	}

	if _, err := paymentSvc.PayInvoice(ctx, &payment.PayInvoiceRequest{InvoiceId: invoiceID, Amount: 400}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	wb, err := invoiceSvc.GetWithBalance(ctx, invoiceID)
	if err != nil {
		t.Fatalf("balance after abono: %v", err)
	}
	if wb.Status != invoice.StatusPending || wb.Balance != 600 {
		t.Fatalf("expected pending with 600 due, got %s with %v", wb.Status, wb.Balance)
	}

	// Amount omitted: the service pays the remaining balance.
	second, err := paymentSvc.PayInvoice(ctx, &payment.PayInvoiceRequest{InvoiceId: invoiceID})
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if second.Amount != 600 {
		t.Fatalf("expected the remaining 600, got %v", second.Amount)
	}

	wb, err = invoiceSvc.GetWithBalance(ctx, invoiceID)
	if err != nil {
		t.Fatalf("balance after settlement: %v", err)
	}
	if wb.Status != invoice.StatusPaid || wb.Balance != 0 {
		t.Fatalf("expected settled invoice, got %s with %v due", wb.Status, wb.Balance)
	}
	if wb.PaidAt == nil {
		t.Fatalf("expected paidAt to be stamped")
	}

	// A third attempt bounces off the settled invoice.
	if _, err := paymentSvc.PayInvoice(ctx, &payment.PayInvoiceRequest{InvoiceId: invoiceID, Amount: 100}); err == nil {
		t.Fatalf("expected rejection on a paid invoice")
	}

	if err := paymentSvc.Delete(ctx, second.Id); err != nil {
		t.Fatalf("delete second payment: %v", err)
	}

	wb, err = invoiceSvc.GetWithBalance(ctx, invoiceID)
	if err != nil {
		t.Fatalf("balance after deletion: %v", err)
	}
	if wb.Status != invoice.StatusPending || wb.Balance != 600 {
		t.Fatalf("expected the invoice to reopen with 600 due, got %s with %v", wb.Status, wb.Balance)
	}
}
