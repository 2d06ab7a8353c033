package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/client"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) CreateClient(c *gin.Context) {
	var body contracts.ClientCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	created, err := h.ClientService.Create(c.Request.Context(), &client.CreateClientRequest{
		Code:    body.Code,
		Name:    body.Name,
		Phone:   body.Phone,
		Email:   body.Email,
		Address: body.Address,
		Sector:  body.Sector,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ClientCreateResponse{
		Message: "Cliente creado correctamente",
		Client:  created,
	})
}

func (h *Handler) ListClients(c *gin.Context) {
	filter := client.ListFilter{
		Search:     c.Query("search"),
		Sector:     c.Query("sector"),
		OnlyActive: c.DefaultQuery("active", "true") == "true",
	}

	pagination := h.parsePagination(c)

	clients, total, err := h.ClientService.List(c.Request.Context(), filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(clients, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetClient(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	found, err := h.ClientService.GetById(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ClientSingleResponse{Client: found})
}

func (h *Handler) UpdateClient(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.ClientUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	err = h.ClientService.Update(c.Request.Context(), clientID, &client.UpdateClientRequest{
		Name:    body.Name,
		Phone:   body.Phone,
		Email:   body.Email,
		Address: body.Address,
		Sector:  body.Sector,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cliente actualizado correctamente"})
}

func (h *Handler) DeactivateClient(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.ClientService.Deactivate(c.Request.Context(), clientID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Cliente desactivado correctamente"})
}

func (h *Handler) ListClientSubscriptions(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	onlyActive := c.DefaultQuery("active", "true") == "true"

	subs, err := h.CatalogService.ListClientSubscriptions(ctx, clientID, onlyActive)
	if err != nil {
		h.respondError(c, err)
		return
	}

	monthlyTotal, err := h.CatalogService.MonthlyTotal(ctx, clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.SubscriptionListResponse{
		Subscriptions: subs,
		MonthlyTotal:  monthlyTotal,
	})
}

func (h *Handler) ListClientEquipment(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	items, err := h.EquipmentService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": items})
}
