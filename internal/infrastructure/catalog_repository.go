package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type CatalogRepository struct {
	DB *gorm.DB
}

type servicePlanDB struct {
	Id          string    `gorm:"type:varchar(26);primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(255)"`
	Price       float64   `gorm:"type:decimal(15,2);not null"`
	Category    string    `gorm:"type:varchar(20);not null"`
	Speed       string    `gorm:"type:varchar(30)"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (servicePlanDB) TableName() string {
	return "servicios"
}

type subscriptionDB struct {
	Id            string     `gorm:"type:varchar(26);primaryKey"`
	ClientId      string     `gorm:"type:varchar(26);index;not null"`
	ServiceId     string     `gorm:"type:varchar(26);index;not null"`
	PriceOverride float64    `gorm:"type:decimal(15,2);not null;default:0"`
	InstalledAt   *time.Time `gorm:"type:date"`
	IsActive      bool       `gorm:"not null;default:true"`
	CreatedAt     time.Time  `gorm:"not null"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

func (subscriptionDB) TableName() string {
	return "cliente_servicios"
}

func toDomainPlan(pdb *servicePlanDB) (*catalog.ServicePlan, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}

	return &catalog.ServicePlan{
		Id:          id,
		Name:        pdb.Name,
		Description: pdb.Description,
		Price:       pdb.Price,
		Category:    catalog.Category(pdb.Category),
		Speed:       pdb.Speed,
		IsActive:    pdb.IsActive,
		CreatedAt:   pdb.CreatedAt,
		UpdatedAt:   pdb.UpdatedAt,
	}, nil
}

func toDBPlan(p *catalog.ServicePlan) *servicePlanDB {
	return &servicePlanDB{
		Id:          p.Id.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    string(p.Category),
		Speed:       p.Speed,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDomainSubscription(sdb *subscriptionDB) (*catalog.Subscription, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, err
	}

	clientID, err := pkg.ParseULID(sdb.ClientId)
	if err != nil {
		return nil, err
	}

	serviceID, err := pkg.ParseULID(sdb.ServiceId)
	if err != nil {
		return nil, err
	}

	return &catalog.Subscription{
		Id:            id,
		ClientId:      clientID,
		ServiceId:     serviceID,
		PriceOverride: sdb.PriceOverride,
		InstalledAt:   sdb.InstalledAt,
		IsActive:      sdb.IsActive,
		CreatedAt:     sdb.CreatedAt,
		UpdatedAt:     sdb.UpdatedAt,
	}, nil
}

func toDBSubscription(s *catalog.Subscription) *subscriptionDB {
	return &subscriptionDB{
		Id:            s.Id.String(),
		ClientId:      s.ClientId.String(),
		ServiceId:     s.ServiceId.String(),
		PriceOverride: s.PriceOverride,
		InstalledAt:   s.InstalledAt,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *CatalogRepository) CreatePlan(ctx context.Context, p *catalog.ServicePlan) error {
	return r.DB.WithContext(ctx).Table("servicios").Create(toDBPlan(p)).Error
}

func (r *CatalogRepository) UpdatePlan(ctx context.Context, p *catalog.ServicePlan) error {
	return r.DB.WithContext(ctx).Model(&servicePlanDB{}).Where("id = ?", p.Id.String()).
		Select("*").Omit("id", "created_at").Updates(toDBPlan(p)).Error
}

func (r *CatalogRepository) GetPlanById(ctx context.Context, planID ulid.ULID) (*catalog.ServicePlan, error) {
	var pdb servicePlanDB
	err := r.DB.WithContext(ctx).Where("id = ?", planID.String()).First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPlan(&pdb)
}

func (r *CatalogRepository) ListPlans(ctx context.Context, onlyActive bool, pagination *pkg.PaginationParams) ([]*catalog.ServicePlan, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("servicios")
	if onlyActive {
		baseQuery = baseQuery.Where("is_active = ?", true)
	}
	return pkg.Paginate(baseQuery, pagination, "category ASC, price ASC", toDomainPlan)
}

func (r *CatalogRepository) ListActivePlans(ctx context.Context) ([]*catalog.ServicePlan, error) {
	var rows []*servicePlanDB
	err := r.DB.WithContext(ctx).Where("is_active = ?", true).
		Order("category ASC, price ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	plans := make([]*catalog.ServicePlan, 0, len(rows))
	for _, row := range rows {
		p, err := toDomainPlan(row)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (r *CatalogRepository) CreateSubscription(ctx context.Context, s *catalog.Subscription) error {
	return r.DB.WithContext(ctx).Table("cliente_servicios").Create(toDBSubscription(s)).Error
}

func (r *CatalogRepository) UpdateSubscription(ctx context.Context, s *catalog.Subscription) error {
	return r.DB.WithContext(ctx).Model(&subscriptionDB{}).Where("id = ?", s.Id.String()).
		Select("*").Omit("id", "created_at").Updates(toDBSubscription(s)).Error
}

func (r *CatalogRepository) GetSubscriptionById(ctx context.Context, subID ulid.ULID) (*catalog.Subscription, error) {
	var sdb subscriptionDB
	err := r.DB.WithContext(ctx).Where("id = ?", subID.String()).First(&sdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainSubscription(&sdb)
}

func (r *CatalogRepository) GetActiveSubscription(ctx context.Context, clientID, serviceID ulid.ULID) (*catalog.Subscription, error) {
	var sdb subscriptionDB
	err := r.DB.WithContext(ctx).
		Where("client_id = ? AND service_id = ? AND is_active = ?", clientID.String(), serviceID.String(), true).
		First(&sdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainSubscription(&sdb)
}

func (r *CatalogRepository) ListSubscriptionsByClient(ctx context.Context, clientID ulid.ULID, onlyActive bool) ([]*catalog.Subscription, error) {
	q := r.DB.WithContext(ctx).Where("client_id = ?", clientID.String())
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var rows []*subscriptionDB
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	subs := make([]*catalog.Subscription, 0, len(rows))
	for _, row := range rows {
		s, err := toDomainSubscription(row)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}
