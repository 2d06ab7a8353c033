package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Wisofer/billing-system-sub001/config"
	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
)

// Claims is the token payload for both staff and client sessions.
// Staff tokens carry the operator role; client tokens carry the role
// CLIENTE plus the client id.
type Claims struct {
	ClienteId      string `json:"clienteId,omitempty"`
	Rol            string `json:"rol"`
	NombreCompleto string `json:"nombreCompleto"`
	jwt.RegisteredClaims
}

type JwtService struct {
	secret       []byte
	issuer       string
	audience     string
	staffExpiry  time.Duration
	clientExpiry time.Duration
}

func NewJwtService(cfg *config.Config) *JwtService {
	return &JwtService{
		secret:       []byte(cfg.JWT.Secret),
		issuer:       cfg.JWT.Issuer,
		audience:     cfg.JWT.Audience,
		staffExpiry:  cfg.JWT.StaffExpiry,
		clientExpiry: cfg.JWT.ClientExpiry,
	}
}

func (s *JwtService) sign(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JwtService) registered(subject string, expiry time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := time.Now()
	expiresAt := now.Add(expiry)
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}, expiresAt
}

func (s *JwtService) GenerateStaffToken(u *user.User) (string, time.Time, error) {
	registered, expiresAt := s.registered(u.Id.String(), s.staffExpiry)
	token, err := s.sign(&Claims{
		Rol:              string(u.Role),
		NombreCompleto:   u.FullName,
		RegisteredClaims: registered,
	})
	return token, expiresAt, err
}

func (s *JwtService) GenerateClientToken(c *client.Client) (string, time.Time, error) {
	registered, expiresAt := s.registered(c.Id.String(), s.clientExpiry)
	token, err := s.sign(&Claims{
		ClienteId:        c.Id.String(),
		Rol:              string(user.RoleClient),
		NombreCompleto:   c.Name,
		RegisteredClaims: registered,
	})
	return token, expiresAt, err
}

// Parse validates the signature, expiry, issuer and audience.
func (s *JwtService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, appErrors.ErrUnauthorized
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil || !token.Valid {
		return nil, appErrors.ErrUnauthorized.WithError(err)
	}
	return claims, nil
}
