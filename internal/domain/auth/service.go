package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/domain/shared"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
)

// TokenIssuer mints signed tokens; implemented by the JWT middleware
// service.
type TokenIssuer interface {
	GenerateStaffToken(u *user.User) (string, time.Time, error)
	GenerateClientToken(c *client.Client) (string, time.Time, error)
}

type Service struct {
	Users   user.Repository
	Clients client.Repository
	Tokens  TokenIssuer
}

func NewService(users user.Repository, clients client.Repository, tokens TokenIssuer) *Service {
	return &Service{Users: users, Clients: clients, Tokens: tokens}
}

type StaffSession struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

type ClientSession struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Client    *client.Client `json:"client"`
}

// LoginStaff authenticates an operator by username and password.
// Unknown users, wrong passwords and deactivated accounts all map to
// the same credentials error.
func (s *Service) LoginStaff(ctx context.Context, username, password string) (*StaffSession, error) {
	u, err := s.Users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, appErrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.Tokens.GenerateStaffToken(u)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	return &StaffSession{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// LoginClient authenticates a subscriber by client code alone. The
// code behaves as a shared secret printed on the client's contract.
func (s *Service) LoginClient(ctx context.Context, code string) (*ClientSession, error) {
	c, err := s.Clients.GetByCode(ctx, shared.NormalizeCode(code))
	if err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !c.IsActive {
		return nil, appErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.Tokens.GenerateClientToken(c)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	return &ClientSession{Token: token, ExpiresAt: expiresAt, Client: c}, nil
}
