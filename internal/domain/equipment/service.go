package equipment

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type Service struct {
	Repository Repository
	shared.BaseService
}

func NewService(repo Repository, clientChecker *shared.ClientCheckerService) *Service {
	return &Service{
		Repository: repo,
		BaseService: shared.BaseService{
			ClientChecker: clientChecker,
		},
	}
}

type CreateRequest struct {
	Name   string
	Brand  string
	Model  string
	Serial string
	Mac    string
	Cost   float64
	Notes  string
}

type UpdateRequest struct {
	Name  *string
	Brand *string
	Model *string
	Mac   *string
	Cost  *float64
	Notes *string
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Equipment, error) {
	serial := shared.NormalizeCode(req.Serial)
	if serial == "" {
		return nil, appErrors.NewValidationError("serial", "el número de serie es requerido")
	}

	if existing, err := s.Repository.GetBySerial(ctx, serial); err == nil && existing != nil {
		return nil, appErrors.ErrSerialAlreadyExists
	}

	e := &Equipment{
		Id:        pkg.GenerateULID(),
		Name:      strings.TrimSpace(req.Name),
		Brand:     strings.TrimSpace(req.Brand),
		Model:     strings.TrimSpace(req.Model),
		Serial:    serial,
		Mac:       shared.NormalizeCode(req.Mac),
		Status:    StatusInStock,
		Cost:      req.Cost,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: pkg.SetTimestamps(),
		UpdatedAt: pkg.SetTimestamps(),
	}

	if err := s.Repository.Create(ctx, e); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrSerialAlreadyExists
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

func (s *Service) Update(ctx context.Context, equipmentID ulid.ULID, req *UpdateRequest) (*Equipment, error) {
	e, err := s.GetById(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		e.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		e.Model = strings.TrimSpace(*req.Model)
	}
	if req.Mac != nil {
		e.Mac = shared.NormalizeCode(*req.Mac)
	}
	if req.Cost != nil {
		e.Cost = *req.Cost
	}
	if req.Notes != nil {
		e.Notes = strings.TrimSpace(*req.Notes)
	}
	e.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, e); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

// Assign hands an in-stock unit to a client.
func (s *Service) Assign(ctx context.Context, equipmentID, clientID ulid.ULID) (*Equipment, error) {
	e, err := s.GetById(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if e.Status != StatusInStock {
		return nil, appErrors.NewValidationError("status", "el equipo no está disponible en stock")
	}

	if err := s.EnsureClientExists(ctx, clientID); err != nil {
		return nil, err
	}

	now := time.Now()
	e.Status = StatusAssigned
	e.ClientId = &clientID
	e.AssignedAt = &now
	e.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, e); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

// Return puts an assigned unit back in stock.
func (s *Service) Return(ctx context.Context, equipmentID ulid.ULID) (*Equipment, error) {
	e, err := s.GetById(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	if e.Status != StatusAssigned {
		return nil, appErrors.NewValidationError("status", "el equipo no está asignado a ningún cliente")
	}

	e.Status = StatusInStock
	e.ClientId = nil
	e.AssignedAt = nil
	e.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, e); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

// SetStatus covers the damaged and retired transitions; assignment is
// handled by Assign and Return.
func (s *Service) SetStatus(ctx context.Context, equipmentID ulid.ULID, status Status) (*Equipment, error) {
	if !status.IsValid() {
		return nil, appErrors.NewValidationError("status", "estado de equipo inválido")
	}
	if status == StatusAssigned {
		return nil, appErrors.NewValidationError("status", "use la operación de asignación para asignar equipos")
	}

	e, err := s.GetById(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	e.Status = status
	if status != StatusAssigned {
		e.ClientId = nil
		e.AssignedAt = nil
	}
	e.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, e); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return e, nil
}

func (s *Service) GetById(ctx context.Context, equipmentID ulid.ULID) (*Equipment, error) {
	e, err := s.Repository.GetById(ctx, equipmentID)
	if err != nil {
		return nil, appErrors.ErrEquipmentNotFound.WithError(err)
	}
	return e, nil
}

func (s *Service) GetBySerial(ctx context.Context, serial string) (*Equipment, error) {
	e, err := s.Repository.GetBySerial(ctx, shared.NormalizeCode(serial))
	if err != nil {
		return nil, appErrors.ErrEquipmentNotFound.WithError(err)
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Equipment, int64, error) {
	return s.Repository.List(ctx, filter, pagination)
}

func (s *Service) ListByClient(ctx context.Context, clientID ulid.ULID) ([]*Equipment, error) {
	if err := s.EnsureClientExists(ctx, clientID); err != nil {
		return nil, err
	}
	return s.Repository.ListByClient(ctx, clientID)
}
