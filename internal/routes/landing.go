package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/landing"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

// The landing surface is unauthenticated; it only ever exposes the
// public catalog and company contact data.

func (h *Handler) LandingPlans(c *gin.Context) {
	plans, err := h.LandingService.ListPublicPlans(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.LandingPlansResponse{Plans: plans})
}

func (h *Handler) LandingInfo(c *gin.Context) {
	c.JSON(http.StatusOK, contracts.LandingInfoResponse{Company: h.LandingService.GetCompanyInfo()})
}

func (h *Handler) CreateLead(c *gin.Context) {
	var body contracts.LeadCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	lead, err := h.LandingService.CreateLead(c.Request.Context(), &landing.LeadRequest{
		Name:    body.Name,
		Phone:   body.Phone,
		Email:   body.Email,
		Sector:  body.Sector,
		Message: body.Message,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.LeadCreateResponse{
		Message: "Solicitud recibida, le contactaremos pronto",
		Lead:    lead,
	})
}

func (h *Handler) ListLeads(c *gin.Context) {
	onlyPending := c.DefaultQuery("pending", "false") == "true"
	pagination := h.parsePagination(c)

	leads, total, err := h.LandingService.ListLeads(c.Request.Context(), onlyPending, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(leads, pagination.Page, pagination.Limit, total))
}

func (h *Handler) MarkLeadAttended(c *gin.Context) {
	leadID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.LandingService.MarkAttended(c.Request.Context(), leadID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Solicitud marcada como atendida"})
}
