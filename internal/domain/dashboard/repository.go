package dashboard

import (
	"context"
)

type Repository interface {
	GetBillingSummary(ctx context.Context, month, year int) (*BillingSummary, error)
	GetIncomeByDay(ctx context.Context, month, year int) ([]*DailyIncomeItem, error)
	GetIncomeByCategory(ctx context.Context, month, year int) ([]*CategoryIncome, error)
	GetIncomeByPaymentType(ctx context.Context, month, year int) ([]*PaymentTypeIncome, error)
	GetMonthlyTrend(ctx context.Context, months int) ([]*MonthlyTrendItem, error)
	GetRecentPayments(ctx context.Context, limit int) ([]*PaymentSummary, error)
	GetDebtorRanking(ctx context.Context, limit int) ([]*DebtorItem, error)
}
