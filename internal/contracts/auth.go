package contracts

import (
	"time"

	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	"github.com/Wisofer/billing-system-sub001/internal/domain/user"
)

type StaffLoginRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
}

type ClientLoginRequest struct {
	Code string `json:"code" binding:"required,max=20"`
}

type StaffLoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

type ClientLoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Client    *client.Client `json:"client"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type UserCreateRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	FullName string `json:"full_name" binding:"required,max=120"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN CAJERO TECNICO"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
}

type UserResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}
