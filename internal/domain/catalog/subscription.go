package catalog

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Subscription links a client to a catalog service. PriceOverride at zero
// means the catalog price applies.
type Subscription struct {
	Id            ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	ClientId      ulid.ULID  `gorm:"type:varchar(26);index:idx_cliente_servicios_client;not null" json:"clientId"`
	ServiceId     ulid.ULID  `gorm:"type:varchar(26);index:idx_cliente_servicios_service;not null" json:"serviceId"`
	PriceOverride float64    `gorm:"type:decimal(15,2);not null;default:0" json:"priceOverride"`
	InstalledAt   *time.Time `gorm:"type:date" json:"installedAt"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "cliente_servicios"
}

// MonthlyPrice resolves the effective price of a subscription against its
// catalog entry.
func (s *Subscription) MonthlyPrice(plan *ServicePlan) float64 {
	if s.PriceOverride > 0 {
		return s.PriceOverride
	}
	if plan == nil {
		return 0
	}
	return plan.Price
}
