package dashboard

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) GetDashboard(ctx context.Context, month, year int) (*DashboardResponse, error) {
	if month <= 0 || month > 12 {
		month = int(time.Now().Month())
	}
	if year <= 0 {
		year = time.Now().Year()
	}

	summary, err := s.Repository.GetBillingSummary(ctx, month, year)
	if err != nil {
		return nil, err
	}

	incomeByDay, err := s.Repository.GetIncomeByDay(ctx, month, year)
	if err != nil {
		return nil, err
	}

	incomeByCategory, err := s.Repository.GetIncomeByCategory(ctx, month, year)
	if err != nil {
		return nil, err
	}

	incomeByType, err := s.Repository.GetIncomeByPaymentType(ctx, month, year)
	if err != nil {
		return nil, err
	}

	monthlyTrend, err := s.Repository.GetMonthlyTrend(ctx, 6)
	if err != nil {
		return nil, err
	}

	recentPayments, err := s.Repository.GetRecentPayments(ctx, 5)
	if err != nil {
		return nil, err
	}

	debtors, err := s.Repository.GetDebtorRanking(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Summary:          summary,
		IncomeByDay:      incomeByDay,
		IncomeByCategory: incomeByCategory,
		IncomeByType:     incomeByType,
		MonthlyTrend:     monthlyTrend,
		RecentPayments:   recentPayments,
		Debtors:          debtors,
	}, nil
}

type DashboardResponse struct {
	Summary          *BillingSummary      `json:"summary"`
	IncomeByDay      []*DailyIncomeItem   `json:"incomeByDay"`
	IncomeByCategory []*CategoryIncome    `json:"incomeByCategory"`
	IncomeByType     []*PaymentTypeIncome `json:"incomeByType"`
	MonthlyTrend     []*MonthlyTrendItem  `json:"monthlyTrend"`
	RecentPayments   []*PaymentSummary    `json:"recentPayments"`
	Debtors          []*DebtorItem        `json:"debtors"`
}

type BillingSummary struct {
	ActiveClients   int64   `json:"activeClients"`
	PendingInvoices int64   `json:"pendingInvoices"`
	PaidInvoices    int64   `json:"paidInvoices"`
	PendingBalance  float64 `json:"pendingBalance"`
	MonthIncome     float64 `json:"monthIncome"`
	MonthExpenses   float64 `json:"monthExpenses"`
	MonthBalance    float64 `json:"monthBalance"`
}

type DailyIncomeItem struct {
	Day    int     `json:"day"`
	Amount float64 `json:"amount"`
}

type CategoryIncome struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type PaymentTypeIncome struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

type MonthlyTrendItem struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

type PaymentSummary struct {
	Id         ulid.ULID `json:"id"`
	ClientId   ulid.ULID `json:"clientId"`
	ClientName string    `json:"clientName"`
	Amount     float64   `json:"amount"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

type DebtorItem struct {
	ClientId        ulid.ULID `json:"clientId"`
	ClientName      string    `json:"clientName"`
	ClientCode      string    `json:"clientCode"`
	PendingInvoices int64     `json:"pendingInvoices"`
	PendingBalance  float64   `json:"pendingBalance"`
}
