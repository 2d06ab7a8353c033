package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) CreatePlan(c *gin.Context) {
	var body contracts.PlanCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	plan, err := h.CatalogService.CreatePlan(c.Request.Context(), &catalog.CreatePlanRequest{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Category:    catalog.Category(body.Category),
		Speed:       body.Speed,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PlanCreateResponse{
		Message: "Servicio creado correctamente",
		Plan:    plan,
	})
}

func (h *Handler) ListPlans(c *gin.Context) {
	onlyActive := c.DefaultQuery("active", "true") == "true"
	pagination := h.parsePagination(c)

	plans, total, err := h.CatalogService.ListPlans(c.Request.Context(), onlyActive, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(plans, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetPlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	plan, err := h.CatalogService.GetPlanById(c.Request.Context(), planID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PlanSingleResponse{Plan: plan})
}

func (h *Handler) UpdatePlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.PlanUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	err = h.CatalogService.UpdatePlan(c.Request.Context(), planID, &catalog.UpdatePlanRequest{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Speed:       body.Speed,
		IsActive:    body.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Servicio actualizado correctamente"})
}

func (h *Handler) Subscribe(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.SubscribeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	serviceID, err := pkg.ParseULID(body.ServiceId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("service_id", "formato inválido"))
		return
	}

	var installedAt *time.Time
	if body.InstalledAt != "" {
		parsed, err := time.Parse("2006-01-02", body.InstalledAt)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("installed_at", "formato inválido"))
			return
		}
		installedAt = &parsed
	}

	sub, err := h.CatalogService.Subscribe(c.Request.Context(), clientID, serviceID, body.PriceOverride, installedAt)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.SubscriptionResponse{
		Message:      "Servicio contratado correctamente",
		Subscription: sub,
	})
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	subID, err := pkg.ParseULID(c.Param("subId"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("subId", "formato inválido"))
		return
	}

	if err := h.CatalogService.Unsubscribe(c.Request.Context(), subID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Servicio dado de baja correctamente"})
}
