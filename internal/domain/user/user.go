package user

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type User struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex:idx_usuarios_username;not null" json:"username"`
	FullName  string    `gorm:"type:varchar(100);not null" json:"fullName"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;index:idx_usuarios_role" json:"role"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "usuarios"
}

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CAJERO"
	RoleTech    Role = "TECNICO"
	// RoleClient never lives in the usuarios table; it only appears in
	// tokens minted for the self-service portal.
	RoleClient Role = "CLIENTE"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleTech:
		return true
	}
	return false
}
