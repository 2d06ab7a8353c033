package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
)

type fakeUserRepository struct {
	createFn  func(ctx context.Context, u *user.User) error
	getByIdFn func(ctx context.Context, id ulid.ULID) (*user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }

func (f *fakeUserRepository) GetById(ctx context.Context, id ulid.ULID) (*user.User, error) {
	if f.getByIdFn != nil {
		return f.getByIdFn(ctx, id)
	}
	return nil, appErrors.ErrNotFound
}

func (f *fakeUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, appErrors.ErrNotFound
}

func (f *fakeUserRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		user        user.User
		createErr   error
		wantErrCode string
	}{
		{
			name:        "empty username",
			user:        user.User{Username: "   ", FullName: "Ana", Password: "secreto123", Role: user.RoleCashier},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "portal role is not a staff role",
			user:        user.User{Username: "ana", FullName: "Ana", Password: "secreto123", Role: user.RoleClient},
			wantErrCode: "VALIDATION_ERROR",
		},
		{
			name:        "duplicate username",
			user:        user.User{Username: "ana", FullName: "Ana", Password: "secreto123", Role: user.RoleCashier},
			createErr:   errors.New(`ERROR: duplicate key value violates unique constraint "idx_usuarios_username" (SQLSTATE 23505)`),
			wantErrCode: appErrors.ErrUsernameTaken.Code,
		},
		{
			name:        "unrelated database failure",
			user:        user.User{Username: "ana", FullName: "Ana", Password: "secreto123", Role: user.RoleCashier},
			createErr:   errors.New("connection refused"),
			wantErrCode: "DATABASE_ERROR",
		},
		{
			name: "valid user",
			user: user.User{Username: "  ANA  ", FullName: "Ana", Password: "secreto123", Role: user.RoleCashier},
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeUserRepository{
				createFn: func(ctx context.Context, u *user.User) error {
					return tt.createErr
				},
			}
			svc := user.Service{Repository: repo}

			u := tt.user
			err := svc.Create(ctx, &u)
			if tt.wantErrCode != "" {
				appErr, ok := appErrors.AsAppError(err)
				if !ok || appErr.Code != tt.wantErrCode {
					t.Fatalf("expected %s, got %v", tt.wantErrCode, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.Username != "ana" {
				t.Fatalf("expected lowercased trimmed username, got %q", u.Username)
			}
			if !u.IsActive {
				t.Fatalf("expected new user to be active")
			}
			if u.Password == "secreto123" {
				t.Fatalf("expected password to be hashed")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secreto123")); err != nil {
				t.Fatalf("stored hash does not match the original password: %v", err)
			}
		})
	}
}
