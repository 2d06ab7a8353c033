package contracts

import "github.com/Wisofer/billing-system-sub001/internal/domain/client"

type ClientCreateRequest struct {
	Code    string `json:"code" binding:"required,max=20"`
	Name    string `json:"name" binding:"required,max=120"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=120"`
	Address string `json:"address" binding:"omitempty,max=255"`
	Sector  string `json:"sector" binding:"omitempty,max=80"`
}

type ClientUpdateRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=120"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Email   *string `json:"email" binding:"omitempty,email,max=120"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Sector  *string `json:"sector" binding:"omitempty,max=80"`
}

type ClientCreateResponse struct {
	Message string         `json:"message"`
	Client  *client.Client `json:"client"`
}

type ClientSingleResponse struct {
	Client *client.Client `json:"client"`
}
