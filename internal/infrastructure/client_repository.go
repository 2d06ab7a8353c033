package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type ClientRepository struct {
	DB *gorm.DB
}

type clientDB struct {
	Id           string    `gorm:"type:varchar(26);primaryKey"`
	Code         string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Phone        string    `gorm:"type:varchar(30)"`
	Email        string    `gorm:"type:varchar(120)"`
	Address      string    `gorm:"type:varchar(255)"`
	Sector       string    `gorm:"type:varchar(80);index"`
	InvoiceCount int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (clientDB) TableName() string {
	return "clientes"
}

func toDomainClient(cdb *clientDB) (*client.Client, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}

	return &client.Client{
		Id:           id,
		Code:         cdb.Code,
		Name:         cdb.Name,
		Phone:        cdb.Phone,
		Email:        cdb.Email,
		Address:      cdb.Address,
		Sector:       cdb.Sector,
		InvoiceCount: cdb.InvoiceCount,
		IsActive:     cdb.IsActive,
		CreatedAt:    cdb.CreatedAt,
		UpdatedAt:    cdb.UpdatedAt,
	}, nil
}

func toDBClient(c *client.Client) *clientDB {
	return &clientDB{
		Id:           c.Id.String(),
		Code:         c.Code,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Sector:       c.Sector,
		InvoiceCount: c.InvoiceCount,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	return r.DB.WithContext(ctx).Table("clientes").Create(toDBClient(c)).Error
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	return r.DB.WithContext(ctx).Model(&clientDB{}).Where("id = ?", c.Id.String()).
		Select("*").Omit("id", "created_at").Updates(toDBClient(c)).Error
}

func (r *ClientRepository) GetById(ctx context.Context, clientID ulid.ULID) (*client.Client, error) {
	var cdb clientDB
	err := r.DB.WithContext(ctx).Where("id = ?", clientID.String()).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainClient(&cdb)
}

func (r *ClientRepository) GetByCode(ctx context.Context, code string) (*client.Client, error) {
	var cdb clientDB
	err := r.DB.WithContext(ctx).Where("code = ?", code).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainClient(&cdb)
}

func (r *ClientRepository) List(ctx context.Context, filter client.ListFilter, pagination *pkg.PaginationParams) ([]*client.Client, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("clientes")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		baseQuery = baseQuery.Where("name ILIKE ? OR code ILIKE ? OR phone ILIKE ?", like, like, like)
	}
	if filter.Sector != "" {
		baseQuery = baseQuery.Where("sector = ?", filter.Sector)
	}
	if filter.OnlyActive {
		baseQuery = baseQuery.Where("is_active = ?", true)
	}

	return pkg.Paginate(baseQuery, pagination, "name ASC", toDomainClient)
}

func (r *ClientRepository) IncrementInvoiceCount(ctx context.Context, clientID ulid.ULID, delta int) error {
	return r.DB.WithContext(ctx).Model(&clientDB{}).Where("id = ?", clientID.String()).
		UpdateColumns(map[string]interface{}{
			"invoice_count": gorm.Expr("invoice_count + ?", delta),
			"updated_at":    time.Now(),
		}).Error
}
