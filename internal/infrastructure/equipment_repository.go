package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/equipment"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type EquipmentRepository struct {
	DB *gorm.DB
}

type equipmentDB struct {
	Id         string     `gorm:"type:varchar(26);primaryKey"`
	Name       string     `gorm:"type:varchar(120);not null"`
	Brand      string     `gorm:"type:varchar(80)"`
	Model      string     `gorm:"type:varchar(80)"`
	Serial     string     `gorm:"type:varchar(80);not null;uniqueIndex"`
	Mac        string     `gorm:"type:varchar(17)"`
	Status     string     `gorm:"type:varchar(20);not null"`
	ClientId   *string    `gorm:"type:varchar(26);index"`
	Cost       float64    `gorm:"type:decimal(15,2)"`
	AssignedAt *time.Time
	Notes      string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`
}

func (equipmentDB) TableName() string {
	return "equipos"
}

func toDomainEquipment(edb *equipmentDB) (*equipment.Equipment, error) {
	id, err := pkg.ParseULID(edb.Id)
	if err != nil {
		return nil, err
	}

	var clientID *ulid.ULID
	if edb.ClientId != nil && *edb.ClientId != "" {
		parsed, err := pkg.ParseULID(*edb.ClientId)
		if err == nil {
			clientID = &parsed
		}
	}

	return &equipment.Equipment{
		Id:         id,
		Name:       edb.Name,
		Brand:      edb.Brand,
		Model:      edb.Model,
		Serial:     edb.Serial,
		Mac:        edb.Mac,
		Status:     equipment.Status(edb.Status),
		ClientId:   clientID,
		Cost:       edb.Cost,
		AssignedAt: edb.AssignedAt,
		Notes:      edb.Notes,
		CreatedAt:  edb.CreatedAt,
		UpdatedAt:  edb.UpdatedAt,
	}, nil
}

func toDBEquipment(e *equipment.Equipment) *equipmentDB {
	var clientID *string
	if e.ClientId != nil {
		s := e.ClientId.String()
		clientID = &s
	}

	return &equipmentDB{
		Id:         e.Id.String(),
		Name:       e.Name,
		Brand:      e.Brand,
		Model:      e.Model,
		Serial:     e.Serial,
		Mac:        e.Mac,
		Status:     string(e.Status),
		ClientId:   clientID,
		Cost:       e.Cost,
		AssignedAt: e.AssignedAt,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) error {
	return r.DB.WithContext(ctx).Table("equipos").Create(toDBEquipment(e)).Error
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipment.Equipment) error {
	return r.DB.WithContext(ctx).Model(&equipmentDB{}).Where("id = ?", e.Id.String()).
		Select("*").Omit("id", "created_at").Updates(toDBEquipment(e)).Error
}

func (r *EquipmentRepository) GetById(ctx context.Context, equipmentID ulid.ULID) (*equipment.Equipment, error) {
	var edb equipmentDB
	err := r.DB.WithContext(ctx).Where("id = ?", equipmentID.String()).First(&edb).Error
	if err != nil {
		return nil, err
	}
	return toDomainEquipment(&edb)
}

func (r *EquipmentRepository) GetBySerial(ctx context.Context, serial string) (*equipment.Equipment, error) {
	var edb equipmentDB
	err := r.DB.WithContext(ctx).Where("serial = ?", serial).First(&edb).Error
	if err != nil {
		return nil, err
	}
	return toDomainEquipment(&edb)
}

func (r *EquipmentRepository) List(ctx context.Context, filter equipment.ListFilter, pagination *pkg.PaginationParams) ([]*equipment.Equipment, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("equipos")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		baseQuery = baseQuery.Where("name ILIKE ? OR serial ILIKE ? OR brand ILIKE ?", like, like, like)
	}
	if filter.Status != "" {
		baseQuery = baseQuery.Where("status = ?", string(filter.Status))
	}
	if filter.ClientId != nil {
		baseQuery = baseQuery.Where("client_id = ?", filter.ClientId.String())
	}

	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainEquipment)
}

func (r *EquipmentRepository) ListByClient(ctx context.Context, clientID ulid.ULID) ([]*equipment.Equipment, error) {
	var rows []*equipmentDB
	err := r.DB.WithContext(ctx).Where("client_id = ?", clientID.String()).
		Order("assigned_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]*equipment.Equipment, 0, len(rows))
	for _, row := range rows {
		e, err := toDomainEquipment(row)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}
