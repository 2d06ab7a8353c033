package equipment

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusInStock  Status = "EN_STOCK"
	StatusAssigned Status = "ASIGNADO"
	StatusDamaged  Status = "DANADO"
	StatusRetired  Status = "RETIRADO"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusInStock, StatusAssigned, StatusDamaged, StatusRetired:
		return true
	}
	return false
}

// Equipment is a physical unit tracked by serial number: routers,
// antennas, ONUs and the like. A unit is assigned to at most one
// client at a time.
type Equipment struct {
	Id          ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(120);not null" json:"name"`
	Brand       string     `gorm:"type:varchar(80)" json:"brand,omitempty"`
	Model       string     `gorm:"type:varchar(80)" json:"model,omitempty"`
	Serial      string     `gorm:"type:varchar(80);not null;uniqueIndex" json:"serial"`
	Mac         string     `gorm:"type:varchar(17)" json:"mac,omitempty"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'EN_STOCK';index" json:"status"`
	ClientId    *ulid.ULID `gorm:"type:varchar(26);index" json:"clientId,omitempty"`
	Cost        float64    `gorm:"type:decimal(15,2)" json:"cost"`
	AssignedAt  *time.Time `json:"assignedAt,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Equipment) TableName() string {
	return "equipos"
}
