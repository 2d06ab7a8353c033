package shared

import (
	"context"

	"github.com/oklog/ulid/v2"

	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
)

type ClientChecker interface {
	Exists(ctx context.Context, clientID ulid.ULID) error
}

type ClientCheckerService struct {
	clientService ClientChecker
}

func NewClientCheckerService(clientService ClientChecker) *ClientCheckerService {
	return &ClientCheckerService{clientService: clientService}
}

func (s *ClientCheckerService) EnsureClientExists(ctx context.Context, clientID ulid.ULID) error {
	if s.clientService == nil {
		return appErrors.ErrInternalServer
	}

	if err := s.clientService.Exists(ctx, clientID); err != nil {
		return appErrors.ErrClientNotFound.WithError(err)
	}

	return nil
}

type BaseService struct {
	ClientChecker *ClientCheckerService
}

func (b *BaseService) EnsureClientExists(ctx context.Context, clientID ulid.ULID) error {
	if b.ClientChecker == nil {
		return appErrors.ErrInternalServer
	}
	return b.ClientChecker.EnsureClientExists(ctx, clientID)
}
