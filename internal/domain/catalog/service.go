package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, clientChecker *shared.ClientCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			ClientChecker: clientChecker,
		},
	}
}

type CreatePlanRequest struct {
	Name        string
	Description string
	Price       float64
	Category    Category
	Speed       string
}

type UpdatePlanRequest struct {
	Name        *string
	Description *string
	Price       *float64
	Speed       *string
	IsActive    *bool
}

func (s *Service) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*ServicePlan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "no puede estar vacío")
	}
	if req.Price < 0 {
		return nil, appErrors.NewValidationError("price", "debe ser mayor o igual a cero")
	}
	if !req.Category.IsValid() {
		return nil, appErrors.NewValidationError("category", "categoría inválida")
	}

	now := pkg.SetTimestamps()
	plan := &ServicePlan{
		Id:          pkg.GenerateULID(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    req.Category,
		Speed:       strings.TrimSpace(req.Speed),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repository.CreatePlan(ctx, plan); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return plan, nil
}

func (s *Service) UpdatePlan(ctx context.Context, planID ulid.ULID, req *UpdatePlanRequest) error {
	plan, err := s.GetPlanById(ctx, planID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "no puede estar vacío")
		}
		plan.Name = name
	}

	if req.Description != nil {
		plan.Description = strings.TrimSpace(*req.Description)
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return appErrors.NewValidationError("price", "debe ser mayor o igual a cero")
		}
		plan.Price = *req.Price
	}

	if req.Speed != nil {
		plan.Speed = strings.TrimSpace(*req.Speed)
	}

	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	plan.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.UpdatePlan(ctx, plan)
}

func (s *Service) GetPlanById(ctx context.Context, planID ulid.ULID) (*ServicePlan, error) {
	plan, err := s.Repository.GetPlanById(ctx, planID)
	if err != nil {
		return nil, appErrors.ErrServiceNotFound.WithError(err)
	}
	return plan, nil
}

func (s *Service) ListPlans(ctx context.Context, onlyActive bool, pagination *pkg.PaginationParams) ([]*ServicePlan, int64, error) {
	return s.Repository.ListPlans(ctx, onlyActive, pagination)
}

func (s *Service) ListActivePlans(ctx context.Context) ([]*ServicePlan, error) {
	return s.Repository.ListActivePlans(ctx)
}

func (s *Service) Subscribe(ctx context.Context, clientID, serviceID ulid.ULID, priceOverride float64, installedAt *time.Time) (*Subscription, error) {
	if err := s.EnsureClientExists(ctx, clientID); err != nil {
		return nil, err
	}

	plan, err := s.GetPlanById(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !plan.IsActive {
		return nil, appErrors.NewValidationError("service_id", "el servicio no está activo")
	}

	if priceOverride < 0 {
		return nil, appErrors.NewValidationError("price_override", "debe ser mayor o igual a cero")
	}

	if existing, _ := s.Repository.GetActiveSubscription(ctx, clientID, serviceID); existing != nil {
		return nil, appErrors.NewValidationError("service_id", "el cliente ya tiene este servicio activo")
	}

	now := pkg.SetTimestamps()
	sub := &Subscription{
		Id:            pkg.GenerateULID(),
		ClientId:      clientID,
		ServiceId:     serviceID,
		PriceOverride: priceOverride,
		InstalledAt:   installedAt,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repository.CreateSubscription(ctx, sub); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return sub, nil
}

func (s *Service) Unsubscribe(ctx context.Context, subscriptionID ulid.ULID) error {
	sub, err := s.Repository.GetSubscriptionById(ctx, subscriptionID)
	if err != nil {
		return appErrors.ErrNotFound.WithError(err)
	}

	sub.IsActive = false
	sub.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.UpdateSubscription(ctx, sub)
}

func (s *Service) ListClientSubscriptions(ctx context.Context, clientID ulid.ULID, onlyActive bool) ([]*Subscription, error) {
	if err := s.EnsureClientExists(ctx, clientID); err != nil {
		return nil, err
	}
	return s.Repository.ListSubscriptionsByClient(ctx, clientID, onlyActive)
}

// MonthlyTotal sums the effective price of a client's active subscriptions.
func (s *Service) MonthlyTotal(ctx context.Context, clientID ulid.ULID) (float64, error) {
	subs, err := s.ListClientSubscriptions(ctx, clientID, true)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, sub := range subs {
		plan, err := s.Repository.GetPlanById(ctx, sub.ServiceId)
		if err != nil {
			return 0, appErrors.ErrServiceNotFound.WithError(err)
		}
		total += sub.MonthlyPrice(plan)
	}

	return total, nil
}
