package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/catalog"
	"github.com/Wisofer/billing-system-sub001/internal/domain/invoice"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pdf"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) CreateInvoice(c *gin.Context) {
	var body contracts.InvoiceCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	clientID, err := pkg.ParseULID(body.ClientId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("client_id", "formato inválido"))
		return
	}

	var dueDate *time.Time
	if body.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("due_date", "formato inválido"))
			return
		}
		dueDate = &parsed
	}

	lines := make([]invoice.CreateLineRequest, 0, len(body.Lines))
	for _, line := range body.Lines {
		serviceID, err := pkg.ParseULID(line.ServiceId)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("lines", "service_id con formato inválido"))
			return
		}
		lines = append(lines, invoice.CreateLineRequest{
			ServiceId: serviceID,
			Amount:    line.Amount,
		})
	}

	inv, err := h.InvoiceService.Create(c.Request.Context(), &invoice.CreateInvoiceRequest{
		ClientId: clientID,
		Amount:   body.Amount,
		Month:    body.Month,
		Year:     body.Year,
		Category: catalog.Category(body.Category),
		DueDate:  dueDate,
		Notes:    body.Notes,
		Lines:    lines,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.InvoiceCreateResponse{
		Message: "Factura creada correctamente",
		Invoice: inv,
	})
}

func (h *Handler) invoiceFilter(c *gin.Context) invoice.ListFilter {
	filter := invoice.ListFilter{
		Category: c.Query("category"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := invoice.Status(statusStr)
		if status.IsValid() {
			filter.Status = &status
		}
	}
	if m, err := pkg.ParseInt(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		filter.Month = m
	}
	if y, err := pkg.ParseInt(c.Query("year")); err == nil && y > 0 {
		filter.Year = y
	}
	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		if clientID, err := pkg.ParseULID(clientIDStr); err == nil {
			filter.ClientId = &clientID
		}
	}

	return filter
}

func (h *Handler) ListInvoices(c *gin.Context) {
	pagination := h.parsePagination(c)

	invoices, total, err := h.InvoiceService.List(c.Request.Context(), h.invoiceFilter(c), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(invoices, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetInvoice(c *gin.Context) {
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

	lines, err := h.InvoiceService.GetLines(ctx, invoiceID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InvoiceSingleResponse{Invoice: inv, Lines: lines})
}

func (h *Handler) ListPendingInvoices(c *gin.Context) {
	clientID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
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

func (h *Handler) CancelInvoice(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.InvoiceService.Cancel(c.Request.Context(), invoiceID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Factura anulada correctamente"})
}

// InvoicePDF renders the invoice as a downloadable document.
func (h *Handler) InvoicePDF(c *gin.Context) {
	invoiceID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
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

func (h *Handler) renderInvoicePDF(c *gin.Context, invoiceID ulid.ULID) (*bytes.Buffer, error) {
	ctx := c.Request.Context()

	inv, err := h.InvoiceService.GetWithBalance(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	owner, err := h.ClientService.GetById(ctx, inv.ClientId)
	if err != nil {
		return nil, err
	}

	lines, err := h.InvoiceService.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	docLines := make([]pdf.LineItem, 0, len(lines))
	for _, line := range lines {
		description := "Servicio"
		if plan, err := h.CatalogService.GetPlanById(ctx, line.ServiceId); err == nil {
			description = plan.Name
		}
		docLines = append(docLines, pdf.LineItem{
			Description: description,
			Amount:      line.Amount,
		})
	}

	company := h.LandingService.GetCompanyInfo()

	doc := &pdf.InvoiceDocument{
		CompanyName:   company.Name,
		CompanyPhone:  company.Phone,
		CompanyEmail:  company.Email,
		InvoiceId:     inv.Id.String(),
		Status:        string(inv.Status),
		Month:         inv.Month,
		Year:          inv.Year,
		IssuedAt:      inv.CreatedAt,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		ClientName:    owner.Name,
		ClientCode:    owner.Code,
		ClientAddress: owner.Address,
		ClientPhone:   owner.Phone,
		Lines:         docLines,
		Amount:        inv.Amount,
		Applied:       inv.Applied,
		Balance:       inv.Balance,
	}

	var buf bytes.Buffer
	if err := pdf.RenderInvoice(&buf, doc); err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &buf, nil
}
