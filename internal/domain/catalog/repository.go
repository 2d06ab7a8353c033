package catalog

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type Repository interface {
	CreatePlan(ctx context.Context, plan *ServicePlan) error
	UpdatePlan(ctx context.Context, plan *ServicePlan) error
	GetPlanById(ctx context.Context, id ulid.ULID) (*ServicePlan, error)
	ListPlans(ctx context.Context, onlyActive bool, pagination *pkg.PaginationParams) ([]*ServicePlan, int64, error)
	ListActivePlans(ctx context.Context) ([]*ServicePlan, error)

	CreateSubscription(ctx context.Context, sub *Subscription) error
	UpdateSubscription(ctx context.Context, sub *Subscription) error
	GetSubscriptionById(ctx context.Context, id ulid.ULID) (*Subscription, error)
	GetActiveSubscription(ctx context.Context, clientID, serviceID ulid.ULID) (*Subscription, error)
	ListSubscriptionsByClient(ctx context.Context, clientID ulid.ULID, onlyActive bool) ([]*Subscription, error)
}
