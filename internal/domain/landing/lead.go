package landing

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Lead is a contact request captured from the public landing page.
type Lead struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(30);not null" json:"phone"`
	Email     string    `gorm:"type:varchar(120)" json:"email,omitempty"`
	Sector    string    `gorm:"type:varchar(80)" json:"sector,omitempty"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	Attended  bool      `gorm:"not null;default:false" json:"attended"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Lead) TableName() string {
	return "landing_leads"
}
