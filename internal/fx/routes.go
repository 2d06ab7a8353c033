package fx

import (
	"time"

	"go.uber.org/fx"

	"github.com/Wisofer/billing-system-sub001/internal/domain/auth"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/domain/dashboard"
	"github.com/Wisofer/billing-system-sub001/internal/domain/equipment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/expense"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	"github.com/Wisofer/billing-system-sub001/internal/domain/landing"
	"github.com/Wisofer/billing-system-sub001/internal/domain/payment"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	"github.com/Wisofer/billing-system-sub001/internal/middleware"
	"github.com/Wisofer/billing-system-sub001/internal/routes"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newPublicRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	clientSvc *client.Service,
	catalogSvc *catalog.Service,
	invoiceSvc *invoice.Service,
	paymentSvc *payment.Service,
	expenseSvc *expense.Service,
	equipmentSvc *equipment.Service,
	dashboardSvc *dashboard.Service,
	landingSvc *landing.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:      userSvc,
		AuthService:      authSvc,
		JwtService:       jwtSvc,
		ClientService:    clientSvc,
		CatalogService:   catalogSvc,
		InvoiceService:   invoiceSvc,
		PaymentService:   paymentSvc,
		ExpenseService:   expenseSvc,
		EquipmentService: equipmentSvc,
		DashboardService: dashboardSvc,
		LandingService:   landingSvc,
	}
}

func newPublicRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(60, time.Minute)
}
