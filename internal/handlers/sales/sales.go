// internal/handlers/sales/sales.go
package sales

import (
	"net/http"
	"strconv"

	"garimoto-service/internal/pkg/response"
	"garimoto-service/internal/service/sales"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	salesService *sales.SalesService
}

func NewSalesHandler(salesService *sales.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// History returns sold vehicles with salesperson names, newest sale first
// GET /admin/sales
func (h *SalesHandler) History(c *gin.Context) {
	records, err := h.salesService.History(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "sales history retrieved", gin.H{
		"sales": records,
		"count": len(records),
	})
}

// Dashboard returns the admin landing page aggregates
// GET /admin/dashboard
func (h *SalesHandler) Dashboard(c *gin.Context) {
	stats, err := h.salesService.Dashboard(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", stats)
}

// Monthly returns per-month sale counts and revenue for the trailing window
// GET /admin/sales/monthly?months=6
func (h *SalesHandler) Monthly(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	buckets, err := h.salesService.MonthlySales(c.Request.Context(), months)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "monthly sales retrieved", gin.H{
		"months": buckets,
	})
}

// Revenue returns the all-time revenue total
// GET /admin/sales/revenue
func (h *SalesHandler) Revenue(c *gin.Context) {
	total, err := h.salesService.TotalRevenue(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "revenue retrieved", gin.H{
		"total_revenue": total,
	})
}
