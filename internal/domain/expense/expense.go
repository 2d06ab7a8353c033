package expense

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Category string

const (
	CategoryEquipment   Category = "EQUIPOS"
	CategoryInfra       Category = "INFRAESTRUCTURA"
	CategoryTransport   Category = "TRANSPORTE"
	CategorySalaries    Category = "SALARIOS"
	CategoryServices    Category = "SERVICIOS"
	CategoryMaintenance Category = "MANTENIMIENTO"
	CategoryOther       Category = "OTROS"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryEquipment, CategoryInfra, CategoryTransport,
		CategorySalaries, CategoryServices, CategoryMaintenance, CategoryOther:
		return true
	}
	return false
}

// Expense is an operating cost entry; it is not tied to any client.
type Expense struct {
	Id          ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	Description string     `gorm:"type:varchar(255);not null" json:"description"`
	Amount      float64    `gorm:"type:decimal(15,2);not null;check:amount > 0" json:"amount"`
	Category    Category   `gorm:"type:varchar(20);not null;index" json:"category"`
	SpentAt     time.Time  `gorm:"not null;index" json:"spentAt"`
	PaidTo      string     `gorm:"type:varchar(120)" json:"paidTo,omitempty"`
	RecordedBy  *ulid.ULID `gorm:"type:varchar(26)" json:"recordedBy,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Expense) TableName() string {
	return "gastos"
}
