package fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/infrastructure"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newUserRepository,
		newClientRepository,
		newCatalogRepository,
		newInvoiceRepository,
		newPaymentRepository,
		newExpenseRepository,
		newEquipmentRepository,
		newDashboardRepository,
		newLandingRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newClientRepository(db *gorm.DB) *infrastructure.ClientRepository {
	return &infrastructure.ClientRepository{DB: db}
}

func newCatalogRepository(db *gorm.DB) *infrastructure.CatalogRepository {
	return &infrastructure.CatalogRepository{DB: db}
}

func newInvoiceRepository(db *gorm.DB) *infrastructure.InvoiceRepository {
	return &infrastructure.InvoiceRepository{DB: db}
}

func newPaymentRepository(db *gorm.DB) *infrastructure.PaymentRepository {
	return &infrastructure.PaymentRepository{DB: db}
}

func newExpenseRepository(db *gorm.DB) *infrastructure.ExpenseRepository {
	return &infrastructure.ExpenseRepository{DB: db}
}

func newEquipmentRepository(db *gorm.DB) *infrastructure.EquipmentRepository {
	return &infrastructure.EquipmentRepository{DB: db}
}

func newDashboardRepository(db *gorm.DB) *infrastructure.DashboardRepository {
	return &infrastructure.DashboardRepository{DB: db}
}

func newLandingRepository(db *gorm.DB) *infrastructure.LandingRepository {
	return &infrastructure.LandingRepository{DB: db}
}
