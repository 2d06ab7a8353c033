package infrastructure

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/dashboard"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type DashboardRepository struct {
	DB *gorm.DB
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

func (r *DashboardRepository) GetBillingSummary(ctx context.Context, month, year int) (*dashboard.BillingSummary, error) {
	startDate, endDate := monthRange(month, year)

	var activeClients int64
	if err := r.DB.WithContext(ctx).Table("clientes").
		Where("is_active = ?", true).
		Count(&activeClients).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var pendingInvoices int64
	if err := r.DB.WithContext(ctx).Table("facturas").
		Where("status = ?", string(invoice.StatusPending)).
		Count(&pendingInvoices).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var paidInvoices int64
	if err := r.DB.WithContext(ctx).Table("facturas").
		Where("status = ? AND paid_at >= ? AND paid_at < ?", string(invoice.StatusPaid), startDate, endDate).
		Count(&paidInvoices).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	// Outstanding debt: pending invoice totals minus what partial
	// payments already covered.
	var pendingBalance float64
	if err := r.DB.WithContext(ctx).Table("facturas f").
		Select("COALESCE(SUM(f.amount - COALESCE(pf.applied, 0)), 0)").
		Joins("LEFT JOIN (SELECT invoice_id, SUM(amount_applied) AS applied FROM pago_factura GROUP BY invoice_id) pf ON pf.invoice_id = f.id").
		Where("f.status = ?", string(invoice.StatusPending)).
		Scan(&pendingBalance).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}
	if pendingBalance < 0 {
		pendingBalance = 0
	}

	var monthIncome float64
	if err := r.DB.WithContext(ctx).Table("pagos").
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthIncome).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	var monthExpenses float64
	if err := r.DB.WithContext(ctx).Table("gastos").
		Where("spent_at >= ? AND spent_at < ?", startDate, endDate).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthExpenses).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return &dashboard.BillingSummary{
		ActiveClients:   activeClients,
		PendingInvoices: pendingInvoices,
		PaidInvoices:    paidInvoices,
		PendingBalance:  pendingBalance,
		MonthIncome:     monthIncome,
		MonthExpenses:   monthExpenses,
		MonthBalance:    monthIncome - monthExpenses,
	}, nil
}

func (r *DashboardRepository) GetIncomeByDay(ctx context.Context, month, year int) ([]*dashboard.DailyIncomeItem, error) {
	startDate, endDate := monthRange(month, year)

	var rows []struct {
		Day    int
		Amount float64
	}
	err := r.DB.WithContext(ctx).Table("pagos").
		Select("EXTRACT(DAY FROM created_at)::int AS day, COALESCE(SUM(amount), 0) AS amount").
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	items := make([]*dashboard.DailyIncomeItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dashboard.DailyIncomeItem{Day: row.Day, Amount: row.Amount})
	}
	return items, nil
}

func (r *DashboardRepository) GetIncomeByCategory(ctx context.Context, month, year int) ([]*dashboard.CategoryIncome, error) {
	startDate, endDate := monthRange(month, year)

	var rows []struct {
		Category string
		Amount   float64
	}
	err := r.DB.WithContext(ctx).Table("pago_factura pf").
		Select("f.category AS category, COALESCE(SUM(pf.amount_applied), 0) AS amount").
		Joins("JOIN facturas f ON f.id = pf.invoice_id").
		Joins("JOIN pagos p ON p.id = pf.payment_id").
		Where("p.created_at >= ? AND p.created_at < ?", startDate, endDate).
		Group("f.category").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	items := make([]*dashboard.CategoryIncome, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dashboard.CategoryIncome{Category: row.Category, Amount: row.Amount})
	}
	return items, nil
}

func (r *DashboardRepository) GetIncomeByPaymentType(ctx context.Context, month, year int) ([]*dashboard.PaymentTypeIncome, error) {
	startDate, endDate := monthRange(month, year)

	var rows []struct {
		Type   string
		Amount float64
		Count  int64
	}
	err := r.DB.WithContext(ctx).Table("pagos").
		Select("type, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS count").
		Where("created_at >= ? AND created_at < ?", startDate, endDate).
		Group("type").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	items := make([]*dashboard.PaymentTypeIncome, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dashboard.PaymentTypeIncome{Type: row.Type, Amount: row.Amount, Count: row.Count})
	}
	return items, nil
}

func (r *DashboardRepository) GetMonthlyTrend(ctx context.Context, months int) ([]*dashboard.MonthlyTrendItem, error) {
	now := time.Now()
	items := make([]*dashboard.MonthlyTrendItem, 0, months)

	for i := months - 1; i >= 0; i-- {
		targetDate := now.AddDate(0, -i, 0)
		startDate, endDate := monthRange(int(targetDate.Month()), targetDate.Year())

		var income float64
		if err := r.DB.WithContext(ctx).Table("pagos").
			Where("created_at >= ? AND created_at < ?", startDate, endDate).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&income).Error; err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}

		var expenses float64
		if err := r.DB.WithContext(ctx).Table("gastos").
			Where("spent_at >= ? AND spent_at < ?", startDate, endDate).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&expenses).Error; err != nil {
			return nil, appErrors.NewDatabaseError(err)
		}

		items = append(items, &dashboard.MonthlyTrendItem{
			Month:    targetDate.Format("Jan"),
			Year:     targetDate.Year(),
			Income:   income,
			Expenses: expenses,
			Balance:  income - expenses,
		})
	}

	return items, nil
}

func (r *DashboardRepository) GetRecentPayments(ctx context.Context, limit int) ([]*dashboard.PaymentSummary, error) {
	var rows []struct {
		Id         string
		ClientId   string
		ClientName string
		Amount     float64
		Type       string
		CreatedAt  time.Time
	}
	err := r.DB.WithContext(ctx).Table("pagos p").
		Select("p.id, p.client_id, c.name AS client_name, p.amount, p.type, p.created_at").
		Joins("JOIN clientes c ON c.id = p.client_id").
		Order("p.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	items := make([]*dashboard.PaymentSummary, 0, len(rows))
	for _, row := range rows {
		id, err := pkg.ParseULID(row.Id)
		if err != nil {
			continue
		}
		clientID, err := pkg.ParseULID(row.ClientId)
		if err != nil {
			continue
		}
		items = append(items, &dashboard.PaymentSummary{
			Id:         id,
			ClientId:   clientID,
			ClientName: row.ClientName,
			Amount:     row.Amount,
			Type:       row.Type,
			CreatedAt:  row.CreatedAt,
		})
	}
	return items, nil
}

func (r *DashboardRepository) GetDebtorRanking(ctx context.Context, limit int) ([]*dashboard.DebtorItem, error) {
	var rows []struct {
		ClientId        string
		ClientName      string
		ClientCode      string
		PendingInvoices int64
		PendingBalance  float64
	}
	err := r.DB.WithContext(ctx).Table("facturas f").
		Select("f.client_id, c.name AS client_name, c.code AS client_code, COUNT(*) AS pending_invoices, COALESCE(SUM(f.amount - COALESCE(pf.applied, 0)), 0) AS pending_balance").
		Joins("JOIN clientes c ON c.id = f.client_id").
		Joins("LEFT JOIN (SELECT invoice_id, SUM(amount_applied) AS applied FROM pago_factura GROUP BY invoice_id) pf ON pf.invoice_id = f.id").
		Where("f.status = ?", string(invoice.StatusPending)).
		Group("f.client_id, c.name, c.code").
		Order("pending_balance DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	items := make([]*dashboard.DebtorItem, 0, len(rows))
	for _, row := range rows {
		clientID, err := pkg.ParseULID(row.ClientId)
		if err != nil {
			continue
		}
		items = append(items, &dashboard.DebtorItem{
			ClientId:        clientID,
			ClientName:      row.ClientName,
			ClientCode:      row.ClientCode,
			PendingInvoices: row.PendingInvoices,
			PendingBalance:  row.PendingBalance,
		})
	}
	return items, nil
}
