package client

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

type CreateClientRequest struct {
	Code    string
	Name    string
	Phone   string
	Email   string
	Address string
	Sector  string
}

type UpdateClientRequest struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Sector  *string
}

func (s *Service) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	code := shared.NormalizeCode(req.Code)
	if code == "" {
		return nil, appErrors.NewValidationError("code", "no puede estar vacío")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "no puede estar vacío")
	}

	if existing, _ := s.Repository.GetByCode(ctx, code); existing != nil {
		return nil, appErrors.ErrClientCodeTaken
	}

	now := pkg.SetTimestamps()
	client := &Client{
		Id:        pkg.GenerateULID(),
		Code:      code,
		Name:      shared.NormalizeName(name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		Sector:    strings.TrimSpace(req.Sector),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.Create(ctx, client); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.ErrClientCodeTaken
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return client, nil
}

func (s *Service) Update(ctx context.Context, clientID ulid.ULID, req *UpdateClientRequest) error {
	client, err := s.GetById(ctx, clientID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return appErrors.NewValidationError("name", "no puede estar vacío")
		}
		client.Name = shared.NormalizeName(name)
	}

	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}

	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}

	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}

	if req.Sector != nil {
		client.Sector = strings.TrimSpace(*req.Sector)
	}

	client.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, client)
}

// Deactivate is the only deletion path; client rows are never removed.
func (s *Service) Deactivate(ctx context.Context, clientID ulid.ULID) error {
	client, err := s.GetById(ctx, clientID)
	if err != nil {
		return err
	}

	client.IsActive = false
	client.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, client)
}

func (s *Service) GetById(ctx context.Context, clientID ulid.ULID) (*Client, error) {
	client, err := s.Repository.GetById(ctx, clientID)
	if err != nil {
		return nil, appErrors.ErrClientNotFound.WithError(err)
	}
	return client, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Client, error) {
	client, err := s.Repository.GetByCode(ctx, shared.NormalizeCode(code))
	if err != nil {
		return nil, appErrors.ErrClientNotFound.WithError(err)
	}
	return client, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter, pagination *pkg.PaginationParams) ([]*Client, int64, error) {
	return s.Repository.List(ctx, filter, pagination)
}

func (s *Service) Exists(ctx context.Context, clientID ulid.ULID) error {
	_, err := s.GetById(ctx, clientID)
	return err
}
