package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/payment"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) tenderFromBody(c *gin.Context, body *contracts.TenderFields) payment.Tender {
	tender := payment.Tender{
		Currency:       payment.Currency(body.Currency),
		Type:           payment.Type(body.Type),
		BankName:       body.BankName,
		BankRef:        body.BankRef,
		CordobaAmount:  body.CordobaAmount,
		DollarAmount:   body.DollarAmount,
		ExchangeRate:   body.ExchangeRate,
		ReceivedAmount: body.ReceivedAmount,
		Notes:          body.Notes,
	}

	if userID, err := h.GetUserIDFromContext(c); err == nil {
		tender.ReceivedBy = &userID
	}

	return tender
}

func (h *Handler) PayInvoice(c *gin.Context) {
	var body contracts.PaySingleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	invoiceID, err := pkg.ParseULID(body.InvoiceId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("invoice_id", "formato inválido"))
		return
	}

	p, err := h.PaymentService.PayInvoice(c.Request.Context(), &payment.PayInvoiceRequest{
		InvoiceId: invoiceID,
		Amount:    body.Amount,
		Tender:    h.tenderFromBody(c, &body.TenderFields),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PaymentCreateResponse{
		Message: "Pago registrado correctamente",
		Payment: p,
	})
}

func (h *Handler) PayMultiple(c *gin.Context) {
	var body contracts.PayMultipleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	allocations := make([]payment.Allocation, 0, len(body.Allocations))
	for _, a := range body.Allocations {
		invoiceID, err := pkg.ParseULID(a.InvoiceId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("allocations", "invoice_id con formato inválido"))
			return
		}
		allocations = append(allocations, payment.Allocation{
			InvoiceId: invoiceID,
			Amount:    a.Amount,
		})
	}

	p, err := h.PaymentService.PayMultiple(c.Request.Context(), &payment.PayMultipleRequest{
		Total:       body.Total,
		Allocations: allocations,
		Tender:      h.tenderFromBody(c, &body.TenderFields),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.PaymentCreateResponse{
		Message: "Pago registrado correctamente",
		Payment: p,
	})
}

func (h *Handler) ListPayments(c *gin.Context) {
	filter := payment.ListFilter{}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		if clientID, err := pkg.ParseULID(clientIDStr); err == nil {
			filter.ClientId = &clientID
		}
	}
	if typeStr := c.Query("type"); typeStr != "" {
		t := payment.Type(typeStr)
		if t.IsValid() {
			filter.Type = &t
		}
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			end := to.AddDate(0, 0, 1)
			filter.To = &end
		}
	}

	pagination := h.parsePagination(c)

	payments, total, err := h.PaymentService.List(c.Request.Context(), filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(payments, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetPayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()

	p, err := h.PaymentService.GetById(ctx, paymentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	links, err := h.PaymentService.GetLinks(ctx, paymentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.PaymentSingleResponse{Payment: p, Links: links})
}

// DeletePayment reverses a mistaken register entry. Affected invoices go
// back to pending when the remaining payments no longer cover them.
func (h *Handler) DeletePayment(c *gin.Context) {
	paymentID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.PaymentService.Delete(c.Request.Context(), paymentID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Pago eliminado correctamente"})
}
