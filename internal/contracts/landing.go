package contracts

import (
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/landing"
)

type LeadCreateRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Phone   string `json:"phone" binding:"required,max=30"`
	Email   string `json:"email" binding:"omitempty,email,max=120"`
	Sector  string `json:"sector" binding:"omitempty,max=80"`
	Message string `json:"message" binding:"omitempty,max=1000"`
}

type LeadCreateResponse struct {
	Message string        `json:"message"`
	Lead    *landing.Lead `json:"lead"`
}

type LandingPlansResponse struct {
	Plans []*catalog.ServicePlan `json:"plans"`
}

type LandingInfoResponse struct {
	Company *landing.CompanyInfo `json:"company"`
}
