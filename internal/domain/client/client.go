package client

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Client struct {
	Id      ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Code    string    `gorm:"type:varchar(20);uniqueIndex:idx_clientes_code;not null" json:"code"`
	Name    string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone   string    `gorm:"type:varchar(20)" json:"phone"`
	Email   string    `gorm:"type:varchar(100)" json:"email"`
	Address string    `gorm:"type:varchar(255)" json:"address"`
	Sector  string    `gorm:"type:varchar(50);index:idx_clientes_sector" json:"sector"`
	// InvoiceCount is denormalized; it is bumped by the invoice path and
	// only used for listings.
	InvoiceCount int       `gorm:"not null;default:0" json:"invoiceCount"`
	IsActive     bool      `gorm:"not null;default:true;index:idx_clientes_active" json:"isActive"`
	CreatedAt    time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Client) TableName() string {
	return "clientes"
}
