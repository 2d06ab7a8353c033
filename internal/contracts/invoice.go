package contracts

import "github.com/Wisofer/billing-system-sub001/internal/domain/invoice"

type InvoiceLineRequest struct {
	ServiceId string  `json:"service_id" binding:"required,len=26"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type InvoiceCreateRequest struct {
	ClientId string               `json:"client_id" binding:"required,len=26"`
	Amount   float64              `json:"amount" binding:"omitempty,gte=0"`
	Month    int                  `json:"month" binding:"required,min=1,max=12"`
	Year     int                  `json:"year" binding:"required,min=2020,max=2100"`
	Category string               `json:"category" binding:"required,oneof=INTERNET STREAMING"`
	DueDate  string               `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Notes    string               `json:"notes" binding:"omitempty,max=255"`
	Lines    []InvoiceLineRequest `json:"lines" binding:"omitempty,dive"`
}

type InvoiceCreateResponse struct {
	Message string           `json:"message"`
	Invoice *invoice.Invoice `json:"invoice"`
}

type InvoiceSingleResponse struct {
	Invoice *invoice.WithBalance `json:"invoice"`
	Lines   []*invoice.Line      `json:"lines"`
}

type InvoicePendingListResponse struct {
	Invoices []*invoice.WithBalance `json:"invoices"`
	Total    float64                `json:"total"`
}
