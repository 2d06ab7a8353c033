package catalog

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type ServicePlan struct {
	Id          ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Price       float64   `gorm:"type:decimal(15,2);not null" json:"price"`
	Category    Category  `gorm:"type:varchar(20);not null;index:idx_servicios_category" json:"category"`
	Speed       string    `gorm:"type:varchar(30)" json:"speed"`
	IsActive    bool      `gorm:"not null;default:true;index:idx_servicios_active" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (ServicePlan) TableName() string {
	return "servicios"
}

type Category string

const (
	CategoryInternet  Category = "INTERNET"
	CategoryStreaming Category = "STREAMING"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryInternet, CategoryStreaming:
		return true
	}
	return false
}
