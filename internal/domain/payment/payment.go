package payment

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Payment records money received at the point of sale. It never points at
// an invoice directly; allocation always goes through InvoiceLink rows,
// with the single-invoice case being one link.
type Payment struct {
	Id       ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	ClientId ulid.ULID `gorm:"type:varchar(26);index:idx_pagos_client;not null" json:"clientId"`
	Amount   float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency Currency  `gorm:"type:varchar(3);not null;default:'NIO'" json:"currency"`
	Type     Type      `gorm:"type:varchar(20);not null;index:idx_pagos_type" json:"type"`
	BankName string    `gorm:"type:varchar(50)" json:"bankName"`
	BankRef  string    `gorm:"type:varchar(50)" json:"bankRef"`
	// Mixed-currency receipts keep their raw sub-amounts and the rate of
	// the day. Nothing reconciles them into Amount; they are display-only.
	CordobaAmount  float64    `gorm:"type:decimal(15,2);not null;default:0" json:"cordobaAmount"`
	DollarAmount   float64    `gorm:"type:decimal(15,2);not null;default:0" json:"dollarAmount"`
	ExchangeRate   float64    `gorm:"type:decimal(10,4);not null;default:0" json:"exchangeRate"`
	ReceivedAmount float64    `gorm:"type:decimal(15,2);not null;default:0" json:"receivedAmount"`
	ChangeAmount   float64    `gorm:"type:decimal(15,2);not null;default:0" json:"changeAmount"`
	ReceivedBy     *ulid.ULID `gorm:"type:varchar(26);index:idx_pagos_received_by" json:"receivedBy"`
	Notes          string     `gorm:"type:varchar(255)" json:"notes"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;not null;index:idx_pagos_created" json:"createdAt"`
}

func (Payment) TableName() string {
	return "pagos"
}

type InvoiceLink struct {
	Id            ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	PaymentId     ulid.ULID `gorm:"type:varchar(26);index:idx_pago_factura_payment;not null" json:"paymentId"`
	InvoiceId     ulid.ULID `gorm:"type:varchar(26);index:idx_pago_factura_invoice;not null" json:"invoiceId"`
	AmountApplied float64   `gorm:"type:decimal(15,2);not null;check:amount_applied > 0" json:"amountApplied"`
}

func (InvoiceLink) TableName() string {
	return "pago_factura"
}

type Currency string

const (
	CurrencyCordoba Currency = "NIO"
	CurrencyDollar  Currency = "USD"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyCordoba, CurrencyDollar:
		return true
	}
	return false
}

type Type string

const (
	TypeCash     Type = "EFECTIVO"
	TypeCard     Type = "TARJETA"
	TypeTransfer Type = "TRANSFERENCIA"
	TypeWallet   Type = "BILLETERA"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeCash, TypeCard, TypeTransfer, TypeWallet:
		return true
	}
	return false
}
