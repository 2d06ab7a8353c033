package landing

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

// Plans exposes the slice of the catalog the public page may see.
type Plans interface {
	ListActivePlans(ctx context.Context) ([]*catalog.ServicePlan, error)
}

type Service struct {
	Repository Repository
	Plans      Plans
}

func NewService(repo Repository, plans Plans) *Service {
	return &Service{Repository: repo, Plans: plans}
}

// CompanyInfo is the static block rendered on the landing page.
type CompanyInfo struct {
	Name     string   `json:"name"`
	Tagline  string   `json:"tagline"`
	Phone    string   `json:"phone"`
	WhatsApp string   `json:"whatsapp"`
	Email    string   `json:"email"`
	Address  string   `json:"address"`
	Sectors  []string `json:"sectors"`
}

func (s *Service) GetCompanyInfo() *CompanyInfo {
	return &CompanyInfo{
		Name:     "Wisofer Internet",
		Tagline:  "Internet rápido y estable para tu hogar y negocio",
		Phone:    "+505 8888 0000",
		WhatsApp: "+505 8888 0000",
		Email:    "contacto@wisofer.com",
		Address:  "Managua, Nicaragua",
		Sectors:  []string{"Villa Libertad", "Sabana Grande", "Las Mercedes", "Rubenia"},
	}
}

// ListPublicPlans returns only active catalog plans; pricing shown on
// the landing page never includes per-client overrides.
func (s *Service) ListPublicPlans(ctx context.Context) ([]*catalog.ServicePlan, error) {
	return s.Plans.ListActivePlans(ctx)
}

type LeadRequest struct {
	Name    string
	Phone   string
	Email   string
	Sector  string
	Message string
}

func (s *Service) CreateLead(ctx context.Context, req *LeadRequest) (*Lead, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "el nombre es requerido")
	}
	if phone == "" {
		return nil, appErrors.NewValidationError("phone", "el teléfono es requerido")
	}

	lead := &Lead{
		Id:        pkg.GenerateULID(),
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(req.Email),
		Sector:    strings.TrimSpace(req.Sector),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: pkg.SetTimestamps(),
	}

	if err := s.Repository.CreateLead(ctx, lead); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return lead, nil
}

func (s *Service) ListLeads(ctx context.Context, onlyPending bool, pagination *pkg.PaginationParams) ([]*Lead, int64, error) {
	return s.Repository.ListLeads(ctx, onlyPending, pagination)
}

func (s *Service) MarkAttended(ctx context.Context, leadID ulid.ULID) error {
	if err := s.Repository.MarkAttended(ctx, leadID); err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}
