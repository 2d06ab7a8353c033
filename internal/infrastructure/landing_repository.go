package infrastructure

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"

	"github.com/Wisofer/billing-system-sub001/internal/domain/landing"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type LandingRepository struct {
	DB *gorm.DB
}

type leadDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Phone     string    `gorm:"type:varchar(30);not null"`
	Email     string    `gorm:"type:varchar(120)"`
	Sector    string    `gorm:"type:varchar(80)"`
	Message   string    `gorm:"type:text"`
	Attended  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

func (leadDB) TableName() string {
	return "landing_leads"
}

func toDomainLead(ldb *leadDB) (*landing.Lead, error) {
	id, err := pkg.ParseULID(ldb.Id)
	if err != nil {
		return nil, err
	}

	return &landing.Lead{
		Id:        id,
		Name:      ldb.Name,
		Phone:     ldb.Phone,
		Email:     ldb.Email,
		Sector:    ldb.Sector,
		Message:   ldb.Message,
		Attended:  ldb.Attended,
		CreatedAt: ldb.CreatedAt,
	}, nil
}

func (r *LandingRepository) CreateLead(ctx context.Context, lead *landing.Lead) error {
	ldb := &leadDB{
		Id:        lead.Id.String(),
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		Sector:    lead.Sector,
		Message:   lead.Message,
		Attended:  lead.Attended,
		CreatedAt: lead.CreatedAt,
	}
	return r.DB.WithContext(ctx).Table("landing_leads").Create(ldb).Error
}

func (r *LandingRepository) ListLeads(ctx context.Context, onlyPending bool, pagination *pkg.PaginationParams) ([]*landing.Lead, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("landing_leads")
	if onlyPending {
		baseQuery = baseQuery.Where("attended = ?", false)
	}
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainLead)
}

func (r *LandingRepository) MarkAttended(ctx context.Context, leadID ulid.ULID) error {
	return r.DB.WithContext(ctx).Model(&leadDB{}).Where("id = ?", leadID.String()).
		UpdateColumn("attended", true).Error
}
