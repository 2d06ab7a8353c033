package contracts

import "github.com/Wisofer/billing-system-sub001/internal/domain/payment"

// TenderFields is shared by both payment endpoints; it mirrors what the
// cashier captures at the counter.
type TenderFields struct {
	Currency       string  `json:"currency" binding:"omitempty,oneof=NIO USD"`
	Type           string  `json:"type" binding:"omitempty,oneof=EFECTIVO TARJETA TRANSFERENCIA BILLETERA"`
	BankName       string  `json:"bank_name" binding:"omitempty,max=50"`
	BankRef        string  `json:"bank_ref" binding:"omitempty,max=50"`
	CordobaAmount  float64 `json:"cordoba_amount" binding:"omitempty,gte=0"`
	DollarAmount   float64 `json:"dollar_amount" binding:"omitempty,gte=0"`
	ExchangeRate   float64 `json:"exchange_rate" binding:"omitempty,gte=0"`
	ReceivedAmount float64 `json:"received_amount" binding:"omitempty,gte=0"`
	Notes          string  `json:"notes" binding:"omitempty,max=255"`
}

type PaySingleRequest struct {
	InvoiceId string  `json:"invoice_id" binding:"required,len=26"`
	Amount    float64 `json:"amount" binding:"omitempty,gte=0"`
	TenderFields
}

type PaymentAllocationRequest struct {
	InvoiceId string  `json:"invoice_id" binding:"required,len=26"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type PayMultipleRequest struct {
	Total       float64                    `json:"total" binding:"required,gt=0"`
	Allocations []PaymentAllocationRequest `json:"allocations" binding:"required,min=1,dive"`
	TenderFields
}

type PaymentCreateResponse struct {
	Message string           `json:"message"`
	Payment *payment.Payment `json:"payment"`
}

type PaymentSingleResponse struct {
	Payment *payment.Payment       `json:"payment"`
	Links   []*payment.InvoiceLink `json:"links"`
}
