package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wisofer/billing-system-sub001/internal/pkg"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	month, _ := pkg.ParseInt(c.Query("month"))
	year, _ := pkg.ParseInt(c.Query("year"))

	response, err := h.DashboardService.GetDashboard(c.Request.Context(), month, year)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
