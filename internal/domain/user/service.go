package user

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

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

func (s *Service) Create(ctx context.Context, u *User) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	if u.Username == "" {
		return appErrors.NewValidationError("username", "no puede estar vacío")
	}
	if !u.Role.IsValid() {
		return appErrors.NewValidationError("role", "rol inválido")
	}

	u.Id = pkg.GenerateULID()
	now := pkg.SetTimestamps()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.IsActive = true

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), 12)
	if err != nil {
		return appErrors.ErrInternalServer.WithError(err)
	}
	u.Password = string(hashed)

	if err := s.Repository.Create(ctx, u); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.ErrUsernameTaken
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.Repository.Count(ctx)
}

func (s *Service) GetById(ctx context.Context, id ulid.ULID) (*User, error) {
	u, err := s.Repository.GetById(ctx, id)
	if err != nil {
		return nil, appErrors.ErrUserNotFound.WithError(err)
	}
	return u, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.Repository.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
}

func (s *Service) UpdatePassword(ctx context.Context, userID ulid.ULID, currentPassword, newPassword string) error {
	u, err := s.GetById(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(currentPassword)); err != nil {
		return appErrors.ErrInvalidCredentials
	}

	if len(newPassword) < 8 {
		return appErrors.NewValidationError("password", "debe tener al menos 8 caracteres")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return appErrors.ErrInternalServer.WithError(err)
	}

	u.Password = string(hashed)
	u.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, u)
}

func (s *Service) Deactivate(ctx context.Context, userID ulid.ULID) error {
	u, err := s.GetById(ctx, userID)
	if err != nil {
		return err
	}

	u.IsActive = false
	u.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, u)
}
