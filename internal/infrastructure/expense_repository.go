package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/expense"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ExpenseRepository struct {
	DB *gorm.DB
}

type expenseDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey"`
	Description string    `gorm:"type:varchar(255);not null"`
	Amount      float64   `gorm:"type:decimal(15,2);not null"`
	Category    string    `gorm:"type:varchar(20);not null"`
	SpentAt     time.Time `gorm:"not null"`
	PaidTo      string    `gorm:"type:varchar(120)"`
	RecordedBy  *string   `gorm:"type:varchar(26)"`
	Notes       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (expenseDB) TableName() string {
	return "gastos"
}

func toDomainExpense(edb *expenseDB) (*expense.Expense, error) {
	id, err := pkg.ParseULID(edb.Id)
	if err != nil {
		return nil, err
	}

	var recordedBy *ulid.ULID
	if edb.RecordedBy != nil && *edb.RecordedBy != "" {
		parsed, err := pkg.ParseULID(*edb.RecordedBy)
		if err == nil {
			recordedBy = &parsed
		}
	}

	return &expense.Expense{
		Id:          id,
		Description: edb.Description,
		Amount:      edb.Amount,
		Category:    expense.Category(edb.Category),
		SpentAt:     edb.SpentAt,
		PaidTo:      edb.PaidTo,
		RecordedBy:  recordedBy,
		Notes:       edb.Notes,
		CreatedAt:   edb.CreatedAt,
		UpdatedAt:   edb.UpdatedAt,
	}, nil
}

func toDBExpense(e *expense.Expense) *expenseDB {
	var recordedBy *string
	if e.RecordedBy != nil {
		s := e.RecordedBy.String()
		recordedBy = &s
	}

	return &expenseDB{
		Id:          e.Id.String(),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    string(e.Category),
		SpentAt:     e.SpentAt,
		PaidTo:      e.PaidTo,
		RecordedBy:  recordedBy,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	return r.DB.WithContext(ctx).Table("gastos").Create(toDBExpense(e)).Error
}

func (r *ExpenseRepository) Update(ctx context.Context, e *expense.Expense) error {
	return r.DB.WithContext(ctx).Model(&expenseDB{}).Where("id = ?", e.Id.String()).
		Select("*").Omit("id", "created_at").Updates(toDBExpense(e)).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, expenseID ulid.ULID) error {
	return r.DB.WithContext(ctx).Where("id = ?", expenseID.String()).Delete(&expenseDB{}).Error
}

func (r *ExpenseRepository) GetById(ctx context.Context, expenseID ulid.ULID) (*expense.Expense, error) {
	var edb expenseDB
	err := r.DB.WithContext(ctx).Where("id = ?", expenseID.String()).First(&edb).Error
	if err != nil {
		return nil, err
	}
	return toDomainExpense(&edb)
}

func (r *ExpenseRepository) List(ctx context.Context, filter expense.ListFilter, pagination *pkg.PaginationParams) ([]*expense.Expense, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("gastos")

	if filter.Category != "" {
		baseQuery = baseQuery.Where("category = ?", string(filter.Category))
	}
	if !filter.From.IsZero() {
		baseQuery = baseQuery.Where("spent_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		baseQuery = baseQuery.Where("spent_at < ?", filter.To)
	}

	return pkg.Paginate(baseQuery, pagination, "spent_at DESC", toDomainExpense)
}

func (r *ExpenseRepository) TotalInRange(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).Table("gastos").
		Select("COALESCE(SUM(amount), 0)").
		Where("spent_at >= ? AND spent_at < ?", from, to).
		Scan(&total).Error
	return total, err
}
