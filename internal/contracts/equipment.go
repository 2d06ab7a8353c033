package contracts

import "github.com/Wisofer/billing-system-sub001/internal/domain/equipment"

type EquipmentCreateRequest struct {
	Name   string  `json:"name" binding:"required,max=120"`
	Brand  string  `json:"brand" binding:"omitempty,max=80"`
	Model  string  `json:"model" binding:"omitempty,max=80"`
	Serial string  `json:"serial" binding:"required,max=80"`
	Mac    string  `json:"mac" binding:"omitempty,max=17"`
	Cost   float64 `json:"cost" binding:"omitempty,gte=0"`
	Notes  string  `json:"notes" binding:"omitempty,max=500"`
}

type EquipmentUpdateRequest struct {
	Name  *string  `json:"name" binding:"omitempty,max=120"`
	Brand *string  `json:"brand" binding:"omitempty,max=80"`
	Model *string  `json:"model" binding:"omitempty,max=80"`
	Mac   *string  `json:"mac" binding:"omitempty,max=17"`
	Cost  *float64 `json:"cost" binding:"omitempty,gte=0"`
	Notes *string  `json:"notes" binding:"omitempty,max=500"`
}

type EquipmentAssignRequest struct {
	ClientId string `json:"client_id" binding:"required,len=26"`
}

type EquipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=EN_STOCK DANADO RETIRADO"`
}

type EquipmentResponse struct {
	Message   string               `json:"message"`
	Equipment *equipment.Equipment `json:"equipment"`
}

type EquipmentSingleResponse struct {
	Equipment *equipment.Equipment `json:"equipment"`
}
