package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/payment"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type PaymentRepository struct {
	DB *gorm.DB
}

type paymentDB struct {
	Id             string    `gorm:"type:varchar(26);primaryKey"`
	ClientId       string    `gorm:"type:varchar(26);index;not null"`
	Amount         float64   `gorm:"type:decimal(15,2);not null"`
	Currency       string    `gorm:"type:varchar(3);not null"`
	Type           string    `gorm:"type:varchar(20);not null"`
	BankName       string    `gorm:"type:varchar(50)"`
	BankRef        string    `gorm:"type:varchar(50)"`
	CordobaAmount  float64   `gorm:"type:decimal(15,2);not null;default:0"`
	DollarAmount   float64   `gorm:"type:decimal(15,2);not null;default:0"`
	ExchangeRate   float64   `gorm:"type:decimal(10,4);not null;default:0"`
	ReceivedAmount float64   `gorm:"type:decimal(15,2);not null;default:0"`
	ChangeAmount   float64   `gorm:"type:decimal(15,2);not null;default:0"`
	ReceivedBy     *string   `gorm:"type:varchar(26)"`
	Notes          string    `gorm:"type:varchar(255)"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (paymentDB) TableName() string {
	return "pagos"
}

type invoiceLinkDB struct {
	Id            string  `gorm:"type:varchar(26);primaryKey"`
	PaymentId     string  `gorm:"type:varchar(26);index;not null"`
	InvoiceId     string  `gorm:"type:varchar(26);index;not null"`
	AmountApplied float64 `gorm:"type:decimal(15,2);not null"`
}

func (invoiceLinkDB) TableName() string {
	return "pago_factura"
}

func toDomainPayment(pdb *paymentDB) (*payment.Payment, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}

	clientID, err := pkg.ParseULID(pdb.ClientId)
	if err != nil {
		return nil, err
	}

	var receivedBy *ulid.ULID
	if pdb.ReceivedBy != nil && *pdb.ReceivedBy != "" {
		parsed, err := pkg.ParseULID(*pdb.ReceivedBy)
		if err == nil {
			receivedBy = &parsed
		}
	}

	return &payment.Payment{
		Id:             id,
		ClientId:       clientID,
		Amount:         pdb.Amount,
		Currency:       payment.Currency(pdb.Currency),
		Type:           payment.Type(pdb.Type),
		BankName:       pdb.BankName,
		BankRef:        pdb.BankRef,
		CordobaAmount:  pdb.CordobaAmount,
		DollarAmount:   pdb.DollarAmount,
		ExchangeRate:   pdb.ExchangeRate,
		ReceivedAmount: pdb.ReceivedAmount,
		ChangeAmount:   pdb.ChangeAmount,
		ReceivedBy:     receivedBy,
		Notes:          pdb.Notes,
		CreatedAt:      pdb.CreatedAt,
	}, nil
}

func toDBPayment(p *payment.Payment) *paymentDB {
	var receivedBy *string
	if p.ReceivedBy != nil {
		s := p.ReceivedBy.String()
		receivedBy = &s
	}

	return &paymentDB{
		Id:             p.Id.String(),
		ClientId:       p.ClientId.String(),
		Amount:         p.Amount,
		Currency:       string(p.Currency),
		Type:           string(p.Type),
		BankName:       p.BankName,
		BankRef:        p.BankRef,
		CordobaAmount:  p.CordobaAmount,
		DollarAmount:   p.DollarAmount,
		ExchangeRate:   p.ExchangeRate,
		ReceivedAmount: p.ReceivedAmount,
		ChangeAmount:   p.ChangeAmount,
		ReceivedBy:     receivedBy,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}

func toDomainLink(ldb *invoiceLinkDB) (*payment.InvoiceLink, error) {
	id, err := pkg.ParseULID(ldb.Id)
	if err != nil {
		return nil, err
	}

	paymentID, err := pkg.ParseULID(ldb.PaymentId)
	if err != nil {
		return nil, err
	}

	invoiceID, err := pkg.ParseULID(ldb.InvoiceId)
	if err != nil {
		return nil, err
	}

	return &payment.InvoiceLink{
		Id:            id,
		PaymentId:     paymentID,
		InvoiceId:     invoiceID,
		AmountApplied: ldb.AmountApplied,
	}, nil
}

func (r *PaymentRepository) CreateWithLinks(ctx context.Context, p *payment.Payment, links []*payment.InvoiceLink) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("pagos").Create(toDBPayment(p)).Error; err != nil {
			return err
		}

		for _, link := range links {
			ldb := &invoiceLinkDB{
				Id:            link.Id.String(),
				PaymentId:     link.PaymentId.String(),
				InvoiceId:     link.InvoiceId.String(),
				AmountApplied: link.AmountApplied,
			}
			if err := tx.Table("pago_factura").Create(ldb).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *PaymentRepository) DeleteWithLinks(ctx context.Context, paymentID ulid.ULID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_id = ?", paymentID.String()).Delete(&invoiceLinkDB{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", paymentID.String()).Delete(&paymentDB{}).Error
	})
}

func (r *PaymentRepository) GetById(ctx context.Context, paymentID ulid.ULID) (*payment.Payment, error) {
	var pdb paymentDB
	err := r.DB.WithContext(ctx).Where("id = ?", paymentID.String()).First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayment(&pdb)
}

func (r *PaymentRepository) GetLinks(ctx context.Context, paymentID ulid.ULID) ([]*payment.InvoiceLink, error) {
	var rows []*invoiceLinkDB
	err := r.DB.WithContext(ctx).Where("payment_id = ?", paymentID.String()).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	links := make([]*payment.InvoiceLink, 0, len(rows))
	for _, row := range rows {
		link, err := toDomainLink(row)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.ListFilter, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("pagos")

	if filter.ClientId != nil {
		baseQuery = baseQuery.Where("client_id = ?", filter.ClientId.String())
	}
	if filter.Type != nil {
		baseQuery = baseQuery.Where("type = ?", string(*filter.Type))
	}
	if filter.From != nil {
		baseQuery = baseQuery.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		baseQuery = baseQuery.Where("created_at < ?", *filter.To)
	}

	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainPayment)
}

func (r *PaymentRepository) ListByClient(ctx context.Context, clientID ulid.ULID, pagination *pkg.PaginationParams) ([]*payment.Payment, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("pagos").Where("client_id = ?", clientID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainPayment)
}
