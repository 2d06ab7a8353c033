package infrastructure_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/infrastructure"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type seedUserRepository struct {
	users []*user.User
}

func (f *seedUserRepository) Create(ctx context.Context, u *user.User) error {
	f.users = append(f.users, u)
	return nil
}

func (f *seedUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *seedUserRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *seedUserRepository) GetById(ctx context.Context, id ulid.ULID) (*user.User, error) {
	return nil, appErrors.ErrNotFound
}

func (f *seedUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, appErrors.ErrNotFound
}

func (f *seedUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type seedCatalogRepository struct {
	plans []*catalog.ServicePlan
}

func (f *seedCatalogRepository) CreatePlan(ctx context.Context, plan *catalog.ServicePlan) error {
	f.plans = append(f.plans, plan)
	return nil
}

func (f *seedCatalogRepository) UpdatePlan(ctx context.Context, plan *catalog.ServicePlan) error {
	return nil
}

func (f *seedCatalogRepository) GetPlanById(ctx context.Context, id ulid.ULID) (*catalog.ServicePlan, error) {
	return nil, appErrors.ErrNotFound
}

func (f *seedCatalogRepository) ListPlans(ctx context.Context, onlyActive bool, pagination *pkg.PaginationParams) ([]*catalog.ServicePlan, int64, error) {
	return nil, 0, nil
}

func (f *seedCatalogRepository) ListActivePlans(ctx context.Context) ([]*catalog.ServicePlan, error) {
	return f.plans, nil
}

func (f *seedCatalogRepository) CreateSubscription(ctx context.Context, sub *catalog.Subscription) error {
	return nil
}

func (f *seedCatalogRepository) UpdateSubscription(ctx context.Context, sub *catalog.Subscription) error {
	return nil
}

func (f *seedCatalogRepository) GetSubscriptionById(ctx context.Context, id ulid.ULID) (*catalog.Subscription, error) {
	return nil, appErrors.ErrNotFound
}

func (f *seedCatalogRepository) GetActiveSubscription(ctx context.Context, clientID, serviceID ulid.ULID) (*catalog.Subscription, error) {
	return nil, appErrors.ErrNotFound
}

func (f *seedCatalogRepository) ListSubscriptionsByClient(ctx context.Context, clientID ulid.ULID, onlyActive bool) ([]*catalog.Subscription, error) {
	return nil, nil
}

func newSeedServices() (*user.Service, *seedUserRepository, *catalog.Service, *seedCatalogRepository) {
	userRepo := &seedUserRepository{}
	catalogRepo := &seedCatalogRepository{}
	return &user.Service{Repository: userRepo}, userRepo, &catalog.Service{Repository: catalogRepo}, catalogRepo
}

func TestSeedRefusesEmptyAdminPassword(t *testing.T) {
	t.Parallel()

	users, userRepo, plans, _ := newSeedServices()
	cfg := &config.Config{}
	cfg.Seed.Enabled = true
	cfg.Seed.AdminUsername = "admin"
	cfg.Seed.AdminPassword = ""

	if err := infrastructure.Seed(cfg, users, plans); err == nil {
		t.Fatal("expected an error when seeding without an admin password")
	}
	if len(userRepo.users) != 0 {
		t.Fatalf("expected no user to be created, got %d", len(userRepo.users))
	}
}

func TestSeedCreatesAdminAndCatalog(t *testing.T) {
	t.Parallel()

	users, userRepo, plans, catalogRepo := newSeedServices()
	cfg := &config.Config{}
	cfg.Seed.Enabled = true
	cfg.Seed.AdminUsername = "admin"
	cfg.Seed.AdminPassword = "cambiar-esta-clave"

	if err := infrastructure.Seed(cfg, users, plans); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(userRepo.users) != 1 {
		t.Fatalf("expected one admin user, got %d", len(userRepo.users))
	}
	admin := userRepo.users[0]
	if admin.Role != user.RoleAdmin {
		t.Fatalf("expected ADMIN role, got %s", admin.Role)
	}
	if admin.Password == "cambiar-esta-clave" {
		t.Fatal("expected the admin password to be hashed")
	}
	if len(catalogRepo.plans) == 0 {
		t.Fatal("expected a starter catalog to be created")
	}

	// A second run against the populated repositories is a no-op.
	if err := infrastructure.Seed(cfg, users, plans); err != nil {
		t.Fatalf("unexpected error on rerun: %v", err)
	}
	if len(userRepo.users) != 1 || len(catalogRepo.plans) != 4 {
		t.Fatalf("expected seeding to be idempotent, got %d users and %d plans", len(userRepo.users), len(catalogRepo.plans))
	}
}
