package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/contracts"
	"github.com/Wisofer/billing-system-sub001/internal/domain/expense"
	appErrors "github.com/Wisofer/billing-system-sub001/internal/errors"
	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) CreateExpense(c *gin.Context) {
	var body contracts.ExpenseCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	var spentAt time.Time
	if body.SpentAt != "" {
		parsed, err := time.Parse("2006-01-02", body.SpentAt)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("spent_at", "formato inválido"))
			return
		}
		spentAt = parsed
	}

	req := &expense.CreateRequest{
		Description: body.Description,
		Amount:      body.Amount,
		Category:    expense.Category(body.Category),
		SpentAt:     spentAt,
		PaidTo:      body.PaidTo,
		Notes:       body.Notes,
	}

	if userID, err := h.GetUserIDFromContext(c); err == nil {
		req.RecordedBy = &userID
	}

	e, err := h.ExpenseService.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.ExpenseCreateResponse{
		Message: "Gasto registrado correctamente",
		Expense: e,
	})
}

// ExpenseMonthlyTotal reports the expense total for a calendar month;
// month and year default to the current one.
func (h *Handler) ExpenseMonthlyTotal(c *gin.Context) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if m, err := pkg.ParseInt(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if y, err := pkg.ParseInt(c.Query("year")); err == nil && y >= 2000 {
		year = y
	}

	total, err := h.ExpenseService.MonthlyTotal(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": month,
		"year":  year,
		"total": total,
	})
}

func (h *Handler) ListExpenses(c *gin.Context) {
	filter := expense.ListFilter{
		Category: expense.Category(c.Query("category")),
	}

	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			filter.From = from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			filter.To = to.AddDate(0, 0, 1)
		}
	}

	pagination := h.parsePagination(c)

	expenses, total, err := h.ExpenseService.List(c.Request.Context(), filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(expenses, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetExpense(c *gin.Context) {
	expenseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	e, err := h.ExpenseService.GetById(c.Request.Context(), expenseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ExpenseSingleResponse{Expense: e})
}

func (h *Handler) UpdateExpense(c *gin.Context) {
	expenseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	var body contracts.ExpenseUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ErrBadRequest.WithError(err))
		return
	}

	req := &expense.UpdateRequest{
		Description: body.Description,
		Amount:      body.Amount,
		PaidTo:      body.PaidTo,
		Notes:       body.Notes,
	}

	if body.Category != nil {
		cat := expense.Category(*body.Category)
		req.Category = &cat
	}
	if body.SpentAt != nil && *body.SpentAt != "" {
		parsed, err := time.Parse("2006-01-02", *body.SpentAt)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("spent_at", "formato inválido"))
			return
		}
		req.SpentAt = &parsed
	}

	e, err := h.ExpenseService.Update(c.Request.Context(), expenseID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ExpenseCreateResponse{
		Message: "Gasto actualizado correctamente",
		Expense: e,
	})
}

func (h *Handler) DeleteExpense(c *gin.Context) {
	expenseID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	if err := h.ExpenseService.Delete(c.Request.Context(), expenseID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Gasto eliminado correctamente"})
}
