package infrastructure

import (
	"context"
	"errors"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	"github.com/Wisofer/billing-system-sub001/internal/logger"
)

// Seed creates the initial admin user and a starter catalog on an empty
// database. It is idempotent; a populated database is left untouched.
func Seed(cfg *config.Config, users *user.Service, plans *catalog.Service) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	ctx := context.Background()

	count, err := users.Count(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		if cfg.Seed.AdminPassword == "" {
			return errors.New("SEED_ADMIN_PASSWORD es obligatorio para crear el usuario administrador inicial")
		}
		admin := &user.User{
			Username: cfg.Seed.AdminUsername,
			FullName: "Administrador",
			Password: cfg.Seed.AdminPassword,
			Role:     user.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			return err
		}
		logger.Info().Str("username", cfg.Seed.AdminUsername).Msg("Usuario administrador inicial creado")
	}

	existing, err := plans.ListActivePlans(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	starter := []catalog.CreatePlanRequest{
		{Name: "Internet Básico", Description: "Plan residencial", Price: 500, Category: catalog.CategoryInternet, Speed: "10 Mbps"},
		{Name: "Internet Plus", Description: "Plan residencial ampliado", Price: 800, Category: catalog.CategoryInternet, Speed: "20 Mbps"},
		{Name: "Internet Empresarial", Description: "Plan para negocios", Price: 1500, Category: catalog.CategoryInternet, Speed: "50 Mbps"},
		{Name: "Streaming TV", Description: "Paquete de canales en línea", Price: 250, Category: catalog.CategoryStreaming, Speed: ""},
	}

	for _, req := range starter {
		if _, err := plans.CreatePlan(ctx, &req); err != nil {
			return err
		}
	}

	logger.Info().Int("plans", len(starter)).Msg("Catálogo inicial creado")
	return nil
}
