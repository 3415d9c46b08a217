// internal/handlers/storefront/storefront.go
package storefront

import (
	"net/http"
	"strconv"

	vehicledomain "garimoto-service/internal/domain/vehicle"
	"garimoto-service/internal/pkg/response"
	"garimoto-service/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

// StorefrontHandler serves the public, unauthenticated read surface. It only
// ever exposes what a showroom visitor may see.
type StorefrontHandler struct {
	inventoryService *inventory.InventoryService
}

func NewStorefrontHandler(inventoryService *inventory.InventoryService) *StorefrontHandler {
	return &StorefrontHandler{inventoryService: inventoryService}
}

// List returns Available vehicles, optionally filtered
// GET /vehicles?search=&make=&fuel=&body_type=
func (h *StorefrontHandler) List(c *gin.Context) {
	var filters vehicledomain.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	vehicles, err := h.inventoryService.StorefrontList(c.Request.Context(), filters)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// Detail returns one vehicle for the public detail page. Sold vehicles stay
// reachable by direct link and show their negotiated price.
// GET /vehicles/:id
func (h *StorefrontHandler) Detail(c *gin.Context) {
	v, err := h.inventoryService.StorefrontDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", gin.H{
		"vehicle":       v,
		"display_price": v.DisplayPrice(),
	})
}

// Similar returns other Available vehicles of the same make
// GET /vehicles/:id/similar?limit=3
func (h *StorefrontHandler) Similar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	vehicles, err := h.inventoryService.SimilarVehicles(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "similar vehicles retrieved", gin.H{
		"vehicles": vehicles,
	})
}

// Featured returns the newest Available vehicles for the landing page
// GET /featured?limit=6
func (h *StorefrontHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))

	vehicles, err := h.inventoryService.FeaturedVehicles(c.Request.Context(), limit)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "featured vehicles retrieved", gin.H{
		"vehicles": vehicles,
	})
}

// Inquire validates that a vehicle still accepts inquiries and returns the
// payload the contact form needs.
// POST /vehicles/:id/inquire
func (h *StorefrontHandler) Inquire(c *gin.Context) {
	v, err := h.inventoryService.Inquire(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle available for inquiry", gin.H{
		"vehicle_id":       v.ID,
		"reference_number": v.ReferenceNumber,
		"make":             v.Make,
		"model":            v.Model,
		"year":             v.Year,
		"price":            v.DisplayPrice(),
		"currency":         v.Currency,
	})
}
