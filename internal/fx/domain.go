package fx

import (
	"go.uber.org/fx"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/domain/auth"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/domain/dashboard"
	"github.com/Wisofer/billing-system-sub001/internal/domain/equipment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/expense"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/domain/landing"
	"github.com/Wisofer/billing-system-sub001/internal/domain/payment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	"github.com/Wisofer/billing-system-sub001/internal/infrastructure"
	"github.com/Wisofer/billing-system-sub001/internal/middleware"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newClientService,
		newClientCheckerService,
		newCatalogService,
		newInvoiceService,
		newPaymentService,
		newExpenseService,
		newEquipmentService,
		newDashboardService,
		newLandingService,
		newAuthService,
	),
	fx.Invoke(
		runSeed,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newClientService(repo *infrastructure.ClientRepository) *client.Service {
	return client.NewService(repo)
}

func newClientCheckerService(clientSvc *client.Service) *shared.ClientCheckerService {
	return shared.NewClientCheckerService(clientSvc)
}

func newCatalogService(
	repo *infrastructure.CatalogRepository,
	clientChecker *shared.ClientCheckerService,
) *catalog.Service {
	return catalog.NewService(repo, clientChecker)
}

func newInvoiceService(
	repo *infrastructure.InvoiceRepository,
	clientRepo *infrastructure.ClientRepository,
	clientChecker *shared.ClientCheckerService,
) *invoice.Service {
	return invoice.NewService(repo, clientRepo, clientChecker)
}

func newPaymentService(
	repo *infrastructure.PaymentRepository,
	invoiceSvc *invoice.Service,
	clientChecker *shared.ClientCheckerService,
) *payment.Service {
	return payment.NewService(repo, invoiceSvc, clientChecker)
}

func newExpenseService(repo *infrastructure.ExpenseRepository) *expense.Service {
	return expense.NewService(repo)
}

func newEquipmentService(
	repo *infrastructure.EquipmentRepository,
	clientChecker *shared.ClientCheckerService,
) *equipment.Service {
	return equipment.NewService(repo, clientChecker)
}

func newDashboardService(repo *infrastructure.DashboardRepository) *dashboard.Service {
	return dashboard.NewService(repo)
}

func newLandingService(
	repo *infrastructure.LandingRepository,
	catalogSvc *catalog.Service,
) *landing.Service {
	return landing.NewService(repo, catalogSvc)
}

func newAuthService(
	userRepo *infrastructure.UserRepository,
	clientRepo *infrastructure.ClientRepository,
	jwtSvc *middleware.JwtService,
) *auth.Service {
	return auth.NewService(userRepo, clientRepo, jwtSvc)
}

func runSeed(cfg *config.Config, users *user.Service, plans *catalog.Service) error {
	return infrastructure.Seed(cfg, users, plans)
}
