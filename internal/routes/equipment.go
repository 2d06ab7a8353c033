package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/equipment"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) CreateEquipment(c *gin.Context) {
	var body contracts.EquipmentCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	e, err := h.EquipmentService.Create(c.Request.Context(), &equipment.CreateRequest{
		Name:   body.Name,
		Brand:  body.Brand,
		Model:  body.Model,
		Serial: body.Serial,
		Mac:    body.Mac,
		Cost:   body.Cost,
		Notes:  body.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.EquipmentResponse{
		Message:   "Equipo registrado correctamente",
		Equipment: e,
	})
}

func (h *Handler) ListEquipment(c *gin.Context) {
	filter := equipment.ListFilter{
		Search: c.Query("search"),
		Status: equipment.Status(c.Query("status")),
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		if clientID, err := pkg.ParseULID(clientIDStr); err == nil {
			filter.ClientId = &clientID
		}
	}

	pagination := h.parsePagination(c)

	items, total, err := h.EquipmentService.List(c.Request.Context(), filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(items, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetEquipment(c *gin.Context) {
	equipmentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	e, err := h.EquipmentService.GetById(c.Request.Context(), equipmentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EquipmentSingleResponse{Equipment: e})
}

func (h *Handler) UpdateEquipment(c *gin.Context) {
	equipmentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.EquipmentUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	e, err := h.EquipmentService.Update(c.Request.Context(), equipmentID, &equipment.UpdateRequest{
		Name:  body.Name,
		Brand: body.Brand,
		Model: body.Model,
		Mac:   body.Mac,
		Cost:  body.Cost,
		Notes: body.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EquipmentResponse{
		Message:   "Equipo actualizado correctamente",
		Equipment: e,
	})
}

func (h *Handler) AssignEquipment(c *gin.Context) {
	equipmentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.EquipmentAssignRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	clientID, err := pkg.ParseULID(body.ClientId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("client_id", "formato inválido"))
		return
	}

	e, err := h.EquipmentService.Assign(c.Request.Context(), equipmentID, clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EquipmentResponse{
		Message:   "Equipo asignado correctamente",
		Equipment: e,
	})
}

func (h *Handler) ReturnEquipment(c *gin.Context) {
	equipmentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	e, err := h.EquipmentService.Return(c.Request.Context(), equipmentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EquipmentResponse{
		Message:   "Equipo devuelto al inventario",
		Equipment: e,
	})
}

func (h *Handler) SetEquipmentStatus(c *gin.Context) {
	equipmentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.EquipmentStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	e, err := h.EquipmentService.SetStatus(c.Request.Context(), equipmentID, equipment.Status(body.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EquipmentResponse{
		Message:   "Estado del equipo actualizado",
		Equipment: e,
	})
}
