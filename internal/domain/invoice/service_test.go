package invoice_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type fakeInvoiceRepository struct {
	createWithLinesFn func(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error
	getByIdFn         func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error)
	appliedTotalFn    func(ctx context.Context, invoiceID ulid.ULID) (float64, error)
	setStatusFn       func(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error
}

func (f *fakeInvoiceRepository) CreateWithLines(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error {
	if f.createWithLinesFn != nil {
		return f.createWithLinesFn(ctx, inv, lines)
	}
	return nil
}

func (f *fakeInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return nil
}

func (f *fakeInvoiceRepository) GetById(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, id)
	}
	return &invoice.Invoice{Id: id, Status: invoice.StatusPending}, nil
}

func (f *fakeInvoiceRepository) GetLines(ctx context.Context, invoiceID ulid.ULID) ([]*invoice.Line, error) {
	return nil, nil
}

func (f *fakeInvoiceRepository) List(ctx context.Context, filter invoice.ListFilter, pagination *pkg.PaginationParams) ([]*invoice.Invoice, int64, error) {
	return nil, 0, nil
}

func (f *fakeInvoiceRepository) ListPendingByClient(ctx context.Context, clientID ulid.ULID) ([]*invoice.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepository) AppliedTotal(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
	if f.appliedTotalFn != nil {
		return f.appliedTotalFn(ctx, invoiceID)
	}
	return 0, nil
}

func (f *fakeInvoiceRepository) SetStatus(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
	if f.setStatusFn != nil {
		return f.setStatusFn(ctx, invoiceID, status, paidAt)
	}
	return nil
}

type fakeClientCounter struct {
	incrementFn func(ctx context.Context, id ulid.ULID, delta int) error
}

func (f *fakeClientCounter) IncrementInvoiceCount(ctx context.Context, id ulid.ULID, delta int) error {
	if f.incrementFn != nil {
		return f.incrementFn(ctx, id, delta)
	}
	return nil
}

type fakeClientChecker struct {
	existsErr error
}

func (f *fakeClientChecker) Exists(ctx context.Context, clientID ulid.ULID) error {
	return f.existsErr
}

func newTestService(repo *fakeInvoiceRepository, checker *fakeClientChecker) invoice.Service {
	if checker == nil {
		checker = &fakeClientChecker{}
	}
	return invoice.Service{
		Repository:    repo,
		ClientCounter: &fakeClientCounter{},
		BaseService: shared.BaseService{
			ClientChecker: shared.NewClientCheckerService(checker),
		},
	}
}

func TestServiceCreateValidations(t *testing.T) {
	t.Parallel()

	clientID := ulid.Make()

	tests := []struct {
		name        string
		req         invoice.CreateInvoiceRequest
		clientErr   error
		wantErrCode string
	}{
		{
			name:        "unknown client",
			req:         invoice.CreateInvoiceRequest{ClientId: clientID, Amount: 500, Month: 3, Year: 2026, Category: catalog.CategoryInternet},
			clientErr:   appErrors.ErrNotFound,
			wantErrCode: appErrors.ErrClientNotFound.Code,
		},
		{
			name:        "month too low",
			req:         invoice.CreateInvoiceRequest{ClientId: clientID, Amount: 500, Month: 0, Year: 2026, Category: catalog.CategoryInternet},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "month too high",
			req:         invoice.CreateInvoiceRequest{ClientId: clientID, Amount: 500, Month: 13, Year: 2026, Category: catalog.CategoryInternet},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "year out of range",
			req:         invoice.CreateInvoiceRequest{ClientId: clientID, Amount: 500, Month: 3, Year: 1999, Category: catalog.CategoryInternet},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "invalid category",
			req:         invoice.CreateInvoiceRequest{ClientId: clientID, Amount: 500, Month: 3, Year: 2026, Category: "CABLE"},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name: "negative line amount",
			req: invoice.CreateInvoiceRequest{
				ClientId: clientID, Month: 3, Year: 2026, Category: catalog.CategoryInternet,
				Lines: []invoice.CreateLineRequest{{ServiceId: ulid.Make(), Amount: -10}},
			},
			wantErrCode: "VALIDATION_ERROR",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			created := 0
			repo := &fakeInvoiceRepository{
				createWithLinesFn: func(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error {
					created++
					return nil
				},
			}
			svc := newTestService(repo, &fakeClientChecker{existsErr: tt.clientErr})

			_, err := svc.Create(ctx, &tt.req)
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
				t.Fatalf("expected no invoice to be persisted")
			}
		})
	}
}

func TestServiceCreateSumsLines(t *testing.T) {
	t.Parallel()

	var persisted *invoice.Invoice
	var persistedLines []*invoice.Line
	repo := &fakeInvoiceRepository{
		createWithLinesFn: func(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error {
			persisted = inv
			persistedLines = lines
			return nil
		},
	}
	counted := 0
	svc := newTestService(repo, nil)
	svc.ClientCounter = &fakeClientCounter{
		incrementFn: func(ctx context.Context, id ulid.ULID, delta int) error {
			counted += delta
			return nil
		},
	}

	inv, err := svc.Create(context.Background(), &invoice.CreateInvoiceRequest{
		ClientId: ulid.Make(),
		// Ignored: with explicit lines the amount is their sum.
		Amount:   999,
		Month:    4,
		Year:     2026,
		Category: catalog.CategoryInternet,
		Lines: []invoice.CreateLineRequest{
			{ServiceId: ulid.Make(), Amount: 500},
			{ServiceId: ulid.Make(), Amount: 250},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Amount != 750 {
		t.Fatalf("expected amount 750 from line sum, got %v", inv.Amount)
	}
	if inv.Status != invoice.StatusPending {
		t.Fatalf("expected a pending invoice, got %s", inv.Status)
	}
	if persisted == nil || len(persistedLines) != 2 {
		t.Fatalf("expected invoice with two lines to be persisted")
	}
	for _, line := range persistedLines {
		if line.InvoiceId != inv.Id {
			t.Fatalf("line not tied to the invoice")
		}
	}
	if counted != 1 {
		t.Fatalf("expected the client invoice counter to advance by 1, got %d", counted)
	}
}

func TestServiceGetWithBalance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amount      float64
		applied     float64
		wantBalance float64
	}{
		{name: "nothing applied", amount: 1000, applied: 0, wantBalance: 1000},
		{name: "partial", amount: 1000, applied: 400, wantBalance: 600},
		{name: "covered", amount: 1000, applied: 1000, wantBalance: 0},
		{name: "overpaid clamps to zero", amount: 1000, applied: 1200, wantBalance: 0},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeInvoiceRepository{
				getByIdFn: func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
					return &invoice.Invoice{Id: id, Amount: tt.amount, Status: invoice.StatusPending}, nil
				},
				appliedTotalFn: func(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
					return tt.applied, nil
				},
			}
			svc := newTestService(repo, nil)

			wb, err := svc.GetWithBalance(ctx, ulid.Make())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if wb.Applied != tt.applied {
				t.Fatalf("expected applied %v, got %v", tt.applied, wb.Applied)
			}
			if wb.Balance != tt.wantBalance {
				t.Fatalf("expected balance %v, got %v", tt.wantBalance, wb.Balance)
			}
		})
	}
}

func TestServiceSettleIfCovered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     invoice.Status
		applied    float64
		wantSettle bool
	}{
		{name: "covered pending settles", status: invoice.StatusPending, applied: 1000, wantSettle: true},
		{name: "short pending stays open", status: invoice.StatusPending, applied: 400, wantSettle: false},
		{name: "already paid untouched", status: invoice.StatusPaid, applied: 1000, wantSettle: false},
		{name: "cancelled untouched", status: invoice.StatusCancelled, applied: 1000, wantSettle: false},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotStatus *invoice.Status
			var gotPaidAt *time.Time
			repo := &fakeInvoiceRepository{
				getByIdFn: func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
					return &invoice.Invoice{Id: id, Amount: 1000, Status: tt.status}, nil
				},
				appliedTotalFn: func(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
					return tt.applied, nil
				},
				setStatusFn: func(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
					gotStatus = &status
					gotPaidAt = paidAt
					return nil
				},
			}
			svc := newTestService(repo, nil)

			if err := svc.SettleIfCovered(ctx, ulid.Make()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !tt.wantSettle {
				if gotStatus != nil {
					t.Fatalf("expected no status change, got %s", *gotStatus)
				}
				return
			}
			if gotStatus == nil || *gotStatus != invoice.StatusPaid {
				t.Fatalf("expected transition to PAID")
			}
			if gotPaidAt == nil {
				t.Fatalf("expected paidAt to be stamped")
			}
		})
	}
}

func TestServiceReopenIfUncovered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     invoice.Status
		applied    float64
		wantReopen bool
	}{
		{name: "short paid invoice reopens", status: invoice.StatusPaid, applied: 400, wantReopen: true},
		{name: "still covered stays paid", status: invoice.StatusPaid, applied: 1000, wantReopen: false},
		{name: "pending untouched", status: invoice.StatusPending, applied: 0, wantReopen: false},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotStatus *invoice.Status
			var gotPaidAt *time.Time
			repo := &fakeInvoiceRepository{
				getByIdFn: func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
					return &invoice.Invoice{Id: id, Amount: 1000, Status: tt.status}, nil
				},
				appliedTotalFn: func(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
					return tt.applied, nil
				},
				setStatusFn: func(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
					gotStatus = &status
					gotPaidAt = paidAt
					return nil
				},
			}
			svc := newTestService(repo, nil)

			if err := svc.ReopenIfUncovered(ctx, ulid.Make()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !tt.wantReopen {
				if gotStatus != nil {
					t.Fatalf("expected no status change, got %s", *gotStatus)
				}
				return
			}
			if gotStatus == nil || *gotStatus != invoice.StatusPending {
				t.Fatalf("expected transition back to PENDING")
			}
			if gotPaidAt != nil {
				t.Fatalf("expected paidAt to be cleared")
			}
		})
	}
}

func TestServiceCancel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      invoice.Status
		wantErrCode string
	}{
		{name: "pending cancels", status: invoice.StatusPending},
		{name: "paid rejected", status: invoice.StatusPaid, wantErrCode: appErrors.ErrInvoiceAlreadyPaid.Code},
		{name: "already cancelled rejected", status: invoice.StatusCancelled, wantErrCode: appErrors.ErrInvoiceCancelled.Code},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotStatus *invoice.Status
			repo := &fakeInvoiceRepository{
				getByIdFn: func(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
					return &invoice.Invoice{Id: id, Amount: 500, Status: tt.status}, nil
				},
				setStatusFn: func(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
					gotStatus = &status
					return nil
				},
			}
			svc := newTestService(repo, nil)

			err := svc.Cancel(ctx, ulid.Make())
			if tt.wantErrCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if gotStatus == nil || *gotStatus != invoice.StatusCancelled {
					t.Fatalf("expected transition to CANCELLED")
				}
				return
			}
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
			if gotStatus != nil {
				t.Fatalf("expected no status change")
			}
		})
	}
}
