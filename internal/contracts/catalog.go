package contracts

import "github.com/Wisofer/billing-system-sub001/internal/domain/catalog"

type PlanCreateRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"omitempty,max=255"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,oneof=INTERNET STREAMING"`
	Speed       string  `json:"speed" binding:"omitempty,max=30"`
}

type PlanUpdateRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Speed       *string  `json:"speed" binding:"omitempty,max=30"`
	IsActive    *bool    `json:"is_active" binding:"omitempty"`
}

type PlanCreateResponse struct {
	Message string               `json:"message"`
	Plan    *catalog.ServicePlan `json:"plan"`
}

type PlanSingleResponse struct {
	Plan *catalog.ServicePlan `json:"plan"`
}

type SubscribeRequest struct {
	ServiceId     string  `json:"service_id" binding:"required,len=26"`
	PriceOverride float64 `json:"price_override" binding:"omitempty,gte=0"`
	InstalledAt   string  `json:"installed_at" binding:"omitempty,datetime=2006-01-02"`
}

type SubscriptionResponse struct {
	Message      string                `json:"message"`
	Subscription *catalog.Subscription `json:"subscription"`
}

type SubscriptionListResponse struct {
	Subscriptions []*catalog.Subscription `json:"subscriptions"`
	MonthlyTotal  float64                 `json:"monthlyTotal"`
}
