package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
	"github.com/Wisofer/billing-system-sub001/internal/routes"
)

type fakeInvoiceRepository struct {
	invoices map[ulid.ULID]*invoice.Invoice
}

func (f *fakeInvoiceRepository) CreateWithLines(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error {
	return nil
}

func (f *fakeInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error { return nil }

func (f *fakeInvoiceRepository) GetById(ctx context.Context, id ulid.ULID) (*invoice.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepository) GetLines(ctx context.Context, invoiceID ulid.ULID) ([]*invoice.Line, error) {
	return nil, nil
}

func (f *fakeInvoiceRepository) List(ctx context.Context, filter invoice.ListFilter, pagination *pkg.PaginationParams) ([]*invoice.Invoice, int64, error) {
	return nil, 0, nil
}

func (f *fakeInvoiceRepository) ListPendingByClient(ctx context.Context, clientID ulid.ULID) ([]*invoice.Invoice, error) {
	var out []*invoice.Invoice
	for _, inv := range f.invoices {
		if inv.ClientId == clientID && inv.Status == invoice.StatusPending {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepository) AppliedTotal(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
	return 0, nil
}

func (f *fakeInvoiceRepository) SetStatus(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
	return nil
}

// The portal surface must never leak another client's invoices: foreign
// resources answer 403, missing ones 404.
func TestPortalInvoiceOwnership(t *testing.T) {
	ownerID := ulid.Make()
	strangerID := ulid.Make()
	ownInvoice := pkg.GenerateULID()
	foreignInvoice := pkg.GenerateULID()

	repo := &fakeInvoiceRepository{
		invoices: map[ulid.ULID]*invoice.Invoice{
			ownInvoice:     {Id: ownInvoice, ClientId: ownerID, Amount: 500, Status: invoice.StatusPending},
			foreignInvoice: {Id: foreignInvoice, ClientId: strangerID, Amount: 700, Status: invoice.StatusPending},
		},
	}

	h := &routes.Handler{InvoiceService: &invoice.Service{Repository: repo}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/facturas/:id", func(c *gin.Context) {
		c.Set("cliente_id", ownerID.String())
		h.PortalInvoice(c)
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "own invoice",
			path:       "/facturas/" + ownInvoice.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "foreign invoice hidden behind 403",
			path:       "/facturas/" + foreignInvoice.String(),
			wantStatus: http.StatusForbidden,
			wantCode:   appErrors.ErrResourceNotOwned.Code,
		},
		{
			name:       "missing invoice",
			path:       "/facturas/" + pkg.GenerateULID().String(),
			wantStatus: http.StatusNotFound,
			wantCode:   appErrors.ErrInvoiceNotFound.Code,
		},
		{
			name:       "malformed id",
			path:       "/facturas/no-es-un-ulid",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}
