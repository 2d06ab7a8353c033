package contracts

import "github.com/Wisofer/billing-system-sub001/internal/domain/expense"

type ExpenseCreateRequest struct {
	Description string  `json:"description" binding:"required,max=255"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,oneof=EQUIPOS INFRAESTRUCTURA TRANSPORTE SALARIOS SERVICIOS MANTENIMIENTO OTROS"`
	SpentAt     string  `json:"spent_at" binding:"omitempty,datetime=2006-01-02"`
	PaidTo      string  `json:"paid_to" binding:"omitempty,max=120"`
	Notes       string  `json:"notes" binding:"omitempty,max=500"`
}

type ExpenseUpdateRequest struct {
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	Category    *string  `json:"category" binding:"omitempty,oneof=EQUIPOS INFRAESTRUCTURA TRANSPORTE SALARIOS SERVICIOS MANTENIMIENTO OTROS"`
	SpentAt     *string  `json:"spent_at" binding:"omitempty,datetime=2006-01-02"`
	PaidTo      *string  `json:"paid_to" binding:"omitempty,max=120"`
	Notes       *string  `json:"notes" binding:"omitempty,max=500"`
}

type ExpenseCreateResponse struct {
	Message string           `json:"message"`
	Expense *expense.Expense `json:"expense"`
}

type ExpenseSingleResponse struct {
	Expense *expense.Expense `json:"expense"`
}
