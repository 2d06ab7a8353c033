package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type InvoiceRepository struct {
	DB *gorm.DB
}

type invoiceDB struct {
	Id        string     `gorm:"type:varchar(26);primaryKey"`
	ClientId  string     `gorm:"type:varchar(26);index;not null"`
	Amount    float64    `gorm:"type:decimal(15,2);not null"`
	Status    string     `gorm:"type:varchar(20);not null"`
	Month     int        `gorm:"not null"`
	Year      int        `gorm:"not null"`
	Category  string     `gorm:"type:varchar(20);not null"`
	DueDate   *time.Time `gorm:"type:date"`
	Notes     string     `gorm:"type:varchar(255)"`
	PaidAt    *time.Time `gorm:"type:timestamp"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

func (invoiceDB) TableName() string {
	return "facturas"
}

type invoiceLineDB struct {
	Id        string  `gorm:"type:varchar(26);primaryKey"`
	InvoiceId string  `gorm:"type:varchar(26);index;not null"`
	ServiceId string  `gorm:"type:varchar(26);index;not null"`
	Amount    float64 `gorm:"type:decimal(15,2);not null"`
}

func (invoiceLineDB) TableName() string {
	return "factura_servicios"
}

func toDomainInvoice(idb *invoiceDB) (*invoice.Invoice, error) {
	id, err := pkg.ParseULID(idb.Id)
	if err != nil {
		return nil, err
	}

	clientID, err := pkg.ParseULID(idb.ClientId)
	if err != nil {
		return nil, err
	}

	return &invoice.Invoice{
		Id:        id,
		ClientId:  clientID,
		Amount:    idb.Amount,
		Status:    invoice.Status(idb.Status),
		Month:     idb.Month,
		Year:      idb.Year,
		Category:  catalog.Category(idb.Category),
		DueDate:   idb.DueDate,
		Notes:     idb.Notes,
		PaidAt:    idb.PaidAt,
		CreatedAt: idb.CreatedAt,
		UpdatedAt: idb.UpdatedAt,
	}, nil
}

func toDBInvoice(i *invoice.Invoice) *invoiceDB {
	return &invoiceDB{
		Id:        i.Id.String(),
		ClientId:  i.ClientId.String(),
		Amount:    i.Amount,
		Status:    string(i.Status),
		Month:     i.Month,
		Year:      i.Year,
		Category:  string(i.Category),
		DueDate:   i.DueDate,
		Notes:     i.Notes,
		PaidAt:    i.PaidAt,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func toDomainLine(ldb *invoiceLineDB) (*invoice.Line, error) {
	id, err := pkg.ParseULID(ldb.Id)
	if err != nil {
		return nil, err
	}

	invoiceID, err := pkg.ParseULID(ldb.InvoiceId)
	if err != nil {
		return nil, err
	}

	serviceID, err := pkg.ParseULID(ldb.ServiceId)
	if err != nil {
		return nil, err
	}

	return &invoice.Line{
		Id:        id,
		InvoiceId: invoiceID,
		ServiceId: serviceID,
		Amount:    ldb.Amount,
	}, nil
}

func (r *InvoiceRepository) CreateWithLines(ctx context.Context, inv *invoice.Invoice, lines []*invoice.Line) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("facturas").Create(toDBInvoice(inv)).Error; err != nil {
			return err
		}

		for _, line := range lines {
			ldb := &invoiceLineDB{
				Id:        line.Id.String(),
				InvoiceId: line.InvoiceId.String(),
				ServiceId: line.ServiceId.String(),
				Amount:    line.Amount,
			}
			if err := tx.Table("factura_servicios").Create(ldb).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return r.DB.WithContext(ctx).Model(&invoiceDB{}).Where("id = ?", inv.Id.String()).
		Select("*").Omit("id", "created_at").Updates(toDBInvoice(inv)).Error
}

func (r *InvoiceRepository) GetById(ctx context.Context, invoiceID ulid.ULID) (*invoice.Invoice, error) {
	var idb invoiceDB
	err := r.DB.WithContext(ctx).Where("id = ?", invoiceID.String()).First(&idb).Error
	if err != nil {
		return nil, err
	}
	return toDomainInvoice(&idb)
}

func (r *InvoiceRepository) GetLines(ctx context.Context, invoiceID ulid.ULID) ([]*invoice.Line, error) {
	var rows []*invoiceLineDB
	err := r.DB.WithContext(ctx).Where("invoice_id = ?", invoiceID.String()).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	lines := make([]*invoice.Line, 0, len(rows))
	for _, row := range rows {
		line, err := toDomainLine(row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter invoice.ListFilter, pagination *pkg.PaginationParams) ([]*invoice.Invoice, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("facturas")

	if filter.ClientId != nil {
		baseQuery = baseQuery.Where("client_id = ?", filter.ClientId.String())
	}
	if filter.Status != nil {
		baseQuery = baseQuery.Where("status = ?", string(*filter.Status))
	}
	if filter.Month > 0 {
		baseQuery = baseQuery.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 {
		baseQuery = baseQuery.Where("year = ?", filter.Year)
	}
	if filter.Category != "" {
		baseQuery = baseQuery.Where("category = ?", filter.Category)
	}

	return pkg.Paginate(baseQuery, pagination, "year DESC, month DESC, created_at DESC", toDomainInvoice)
}

func (r *InvoiceRepository) ListPendingByClient(ctx context.Context, clientID ulid.ULID) ([]*invoice.Invoice, error) {
	var rows []*invoiceDB
	err := r.DB.WithContext(ctx).
		Where("client_id = ? AND status = ?", clientID.String(), string(invoice.StatusPending)).
		Order("year ASC, month ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := toDomainInvoice(row)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func (r *InvoiceRepository) AppliedTotal(ctx context.Context, invoiceID ulid.ULID) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Table("pago_factura").
		Select("COALESCE(SUM(amount_applied), 0)").
		Where("invoice_id = ?", invoiceID.String()).
		Scan(&total).Error
	return total, err
}

func (r *InvoiceRepository) SetStatus(ctx context.Context, invoiceID ulid.ULID, status invoice.Status, paidAt *time.Time) error {
	return r.DB.WithContext(ctx).Model(&invoiceDB{}).Where("id = ?", invoiceID.String()).
		UpdateColumns(map[string]interface{}{
			"status":     string(status),
			"paid_at":    paidAt,
			"updated_at": time.Now(),
		}).Error
}
