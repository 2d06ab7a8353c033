package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

// The portal surface is scoped to the client identity inside the token;
// a client can never reach another client's resources. Foreign resources
// answer 403, missing ones 404.

func (h *Handler) PortalProfile(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()

	owner, err := h.ClientService.GetById(ctx, clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	subs, err := h.CatalogService.ListClientSubscriptions(ctx, clientID, true)
	if err != nil {
		h.respondError(c, err)
		return
	}

	monthlyTotal, err := h.CatalogService.MonthlyTotal(ctx, clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":        owner,
		"subscriptions": subs,
		"monthlyTotal":  monthlyTotal,
	})
}

func (h *Handler) PortalInvoices(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)
	filter := invoice.ListFilter{ClientId: &clientID}

	invoices, total, err := h.InvoiceService.List(c.Request.Context(), filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(invoices, pagination.Page, pagination.Limit, total))
}

func (h *Handler) PortalPendingInvoices(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	invoices, err := h.InvoiceService.ListPendingByClient(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var total float64
	for _, inv := range invoices {
		total += inv.Balance
	}

	c.JSON(http.StatusOK, contracts.InvoicePendingListResponse{Invoices: invoices, Total: total})
}

func (h *Handler) PortalInvoice(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()

	inv, err := h.InvoiceService.GetWithBalance(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if inv.ClientId != clientID {
		h.respondError(c, appErrors.ErrResourceNotOwned)
		return
	}

	lines, err := h.InvoiceService.GetLines(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceSingleResponse{Invoice: inv, Lines: lines})
}

func (h *Handler) PortalPayments(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	payments, total, err := h.PaymentService.ListByClient(c.Request.Context(), clientID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(payments, pagination.Page, pagination.Limit, total))
}

func (h *Handler) PortalEquipment(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items, err := h.EquipmentService.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipment": items})
}

func (h *Handler) PortalInvoicePDF(c *gin.Context) {
	clientID, err := h.GetClientIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	inv, err := h.InvoiceService.GetById(c.Request.Context(), invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if inv.ClientId != clientID {
		h.respondError(c, appErrors.ErrResourceNotOwned)
		return
	}

	buf, err := h.renderInvoicePDF(c, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="factura-%s.pdf"`, invoiceID.String()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
