package fx

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	"github.com/Wisofer/billing-system-sub001/internal/logger"
	"github.com/Wisofer/billing-system-sub001/internal/middleware"
	"github.com/Wisofer/billing-system-sub001/internal/routes"
)

var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	publicRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	// Public landing surface
	landingAPI := router.Group("/api/landing")
	landingAPI.Use(middleware.RateLimit(publicRateLimiter))
	{
		landingAPI.GET("/planes", handler.LandingPlans)
		landingAPI.GET("/info", handler.LandingInfo)
		landingAPI.POST("/leads", handler.CreateLead)
	}

	// Login endpoints share the public rate limit
	router.POST("/api/movil/auth/login", middleware.RateLimit(publicRateLimiter), handler.StaffLogin)
	router.POST("/api/cliente/auth/login", middleware.RateLimit(publicRateLimiter), handler.ClientLogin)

	// Staff surface
	movil := router.Group("/api/movil")
	movil.Use(middleware.AuthMiddleware(jwtSvc))
	{
		movil.GET("/dashboard", handler.GetDashboard)

		movil.POST("/usuarios", middleware.RequireRoles(user.RoleAdmin), handler.CreateUser)
		movil.GET("/auth/me", handler.Me)
		movil.PATCH("/auth/password", handler.ChangePassword)

		clientes := movil.Group("/clientes")
		{
			clientes.POST("", handler.CreateClient)
			clientes.GET("", handler.ListClients)
			clientes.GET("/:id", handler.GetClient)
			clientes.PATCH("/:id", handler.UpdateClient)
			clientes.DELETE("/:id", handler.DeactivateClient)
			clientes.GET("/:id/servicios", handler.ListClientSubscriptions)
			clientes.POST("/:id/servicios", handler.Subscribe)
			clientes.DELETE("/:id/servicios/:subId", handler.Unsubscribe)
			clientes.GET("/:id/facturas/pendientes", handler.ListPendingInvoices)
			clientes.GET("/:id/equipos", handler.ListClientEquipment)
		}

		servicios := movil.Group("/servicios")
		{
			servicios.POST("", handler.CreatePlan)
			servicios.GET("", handler.ListPlans)
			servicios.GET("/:id", handler.GetPlan)
			servicios.PATCH("/:id", handler.UpdatePlan)
		}

		facturas := movil.Group("/facturas")
		{
			facturas.POST("", handler.CreateInvoice)
			facturas.GET("", handler.ListInvoices)
			facturas.GET("/:id", handler.GetInvoice)
			facturas.GET("/:id/pdf", handler.InvoicePDF)
			facturas.POST("/:id/anular", handler.CancelInvoice)
		}

		pagos := movil.Group("/pagos")
		{
			pagos.POST("", handler.PayInvoice)
			pagos.POST("/multiple", handler.PayMultiple)
			pagos.GET("", handler.ListPayments)
			pagos.GET("/:id", handler.GetPayment)
			pagos.DELETE("/:id", middleware.RequireRoles(user.RoleAdmin), handler.DeletePayment)
		}

		gastos := movil.Group("/gastos")
		{
			gastos.POST("", handler.CreateExpense)
			gastos.GET("", handler.ListExpenses)
			gastos.GET("/total", handler.ExpenseMonthlyTotal)
			gastos.GET("/:id", handler.GetExpense)
			gastos.PATCH("/:id", handler.UpdateExpense)
			gastos.DELETE("/:id", middleware.RequireRoles(user.RoleAdmin), handler.DeleteExpense)
		}

		equipos := movil.Group("/equipos")
		{
			equipos.POST("", handler.CreateEquipment)
			equipos.GET("", handler.ListEquipment)
			equipos.GET("/:id", handler.GetEquipment)
			equipos.PATCH("/:id", handler.UpdateEquipment)
			equipos.POST("/:id/asignar", handler.AssignEquipment)
			equipos.POST("/:id/devolver", handler.ReturnEquipment)
			equipos.PATCH("/:id/estado", handler.SetEquipmentStatus)
		}

		leads := movil.Group("/leads")
		{
			leads.GET("", handler.ListLeads)
			leads.POST("/:id/atender", handler.MarkLeadAttended)
		}
	}

	// Client self-service surface
	cliente := router.Group("/api/cliente")
	cliente.Use(middleware.ClientAuthMiddleware(jwtSvc))
	cliente.Use(middleware.RateLimitByClient())
	{
		cliente.GET("/perfil", handler.PortalProfile)
		cliente.GET("/facturas", handler.PortalInvoices)
		cliente.GET("/facturas/pendientes", handler.PortalPendingInvoices)
		cliente.GET("/facturas/:id", handler.PortalInvoice)
		cliente.GET("/facturas/:id/pdf", handler.PortalInvoicePDF)
		cliente.GET("/pagos", handler.PortalPayments)
		cliente.GET("/equipos", handler.PortalEquipment)
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Fallo al iniciar el servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor deteniéndose...")
			return nil
		},
	})
}
