package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type UserRepository struct {
	DB *gorm.DB
}

type userDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName  string    `gorm:"type:varchar(120);not null"`
	Password  string    `gorm:"type:varchar(100);not null"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (userDB) TableName() string {
	return "usuarios"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, err
	}

	return &user.User{
		Id:        id,
		Username:  udb.Username,
		FullName:  udb.FullName,
		Password:  udb.Password,
		Role:      user.Role(udb.Role),
		Phone:     udb.Phone,
		IsActive:  udb.IsActive,
		CreatedAt: udb.CreatedAt,
		UpdatedAt: udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:        u.Id.String(),
		Username:  u.Username,
		FullName:  u.FullName,
		Password:  u.Password,
		Role:      string(u.Role),
		Phone:     u.Phone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.DB.WithContext(ctx).Table("usuarios").Create(toDBUser(u)).Error
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	return r.DB.WithContext(ctx).Model(&userDB{}).Where("id = ?", u.Id.String()).Updates(toDBUser(u)).Error
}

func (r *UserRepository) Delete(ctx context.Context, userID ulid.ULID) error {
	return r.DB.WithContext(ctx).Where("id = ?", userID.String()).Delete(&userDB{}).Error
}

func (r *UserRepository) GetById(ctx context.Context, userID ulid.ULID) (*user.User, error) {
	var udb userDB
	err := r.DB.WithContext(ctx).Where("id = ?", userID.String()).First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var udb userDB
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&udb).Error
	if err != nil {
		return nil, err
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&userDB{}).Count(&count).Error
	return count, err
}
