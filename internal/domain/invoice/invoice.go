package invoice

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
)

type Invoice struct {
	Id        ulid.ULID        `gorm:"type:varchar(26);primaryKey" json:"id"`
	ClientId  ulid.ULID        `gorm:"type:varchar(26);index:idx_facturas_client;not null" json:"clientId"`
	Amount    float64          `gorm:"type:decimal(15,2);not null;check:amount >= 0" json:"amount"`
	Status    Status           `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_facturas_status" json:"status"`
	Month     int              `gorm:"not null;check:month >= 1 AND month <= 12;index:idx_facturas_period,priority:2" json:"month"`
	Year      int              `gorm:"not null;index:idx_facturas_period,priority:1" json:"year"`
	Category  catalog.Category `gorm:"type:varchar(20);not null;index:idx_facturas_category" json:"category"`
	DueDate   *time.Time       `gorm:"type:date" json:"dueDate"`
	Notes     string           `gorm:"type:varchar(255)" json:"notes"`
	PaidAt    *time.Time       `gorm:"type:timestamp" json:"paidAt"`
	CreatedAt time.Time        `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Invoice) TableName() string {
	return "facturas"
}

// Line itemizes an invoice against a catalog service.
type Line struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	InvoiceId ulid.ULID `gorm:"type:varchar(26);index:idx_factura_servicios_invoice;not null" json:"invoiceId"`
	ServiceId ulid.ULID `gorm:"type:varchar(26);index:idx_factura_servicios_service;not null" json:"serviceId"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
}

func (Line) TableName() string {
	return "factura_servicios"
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Balance is what the client still owes. Overpayments are clamped to zero
// for display; credit is never surfaced.
func (i *Invoice) Balance(applied float64) float64 {
	balance := i.Amount - applied
	if balance < 0 {
		return 0
	}
	return balance
}

// Covered reports whether the applied total settles the invoice.
func (i *Invoice) Covered(applied float64) bool {
	return applied >= i.Amount
}

// WithBalance is the listing/detail projection carrying computed figures.
type WithBalance struct {
	Invoice
	Applied float64 `json:"applied"`
	Balance float64 `json:"balance"`
}
