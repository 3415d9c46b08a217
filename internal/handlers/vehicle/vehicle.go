// internal/handlers/vehicle/vehicle.go
package vehicle

import (
	"net/http"

	vehicledomain "garimoto-service/internal/domain/vehicle"
	"garimoto-service/internal/pkg/response"
	"garimoto-service/internal/service/inventory"
	"garimoto-service/internal/service/sales"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	inventoryService *inventory.InventoryService
	salesService     *sales.SalesService
}

func NewVehicleHandler(inventoryService *inventory.InventoryService, salesService *sales.SalesService) *VehicleHandler {
	return &VehicleHandler{
		inventoryService: inventoryService,
		salesService:     salesService,
	}
}

// Create adds a vehicle to the inventory
// POST /admin/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req vehicledomain.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	v, err := h.inventoryService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "vehicle created", v)
}

// List returns the admin inventory, optionally filtered
// GET /admin/vehicles?search=&make=&fuel=&body_type=&status=
func (h *VehicleHandler) List(c *gin.Context) {
	var filters vehicledomain.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	vehicles, err := h.inventoryService.ListVehicles(c.Request.Context(), filters)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// Get returns one vehicle
// GET /admin/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	v, err := h.inventoryService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", v)
}

// Update merges the supplied fields into a vehicle
// PUT /admin/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	var req vehicledomain.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	v, err := h.inventoryService.UpdateVehicle(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated", v)
}

// Delete removes a vehicle permanently
// DELETE /admin/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

// MarkSold records a completed sale
// POST /admin/vehicles/:id/sold
func (h *VehicleHandler) MarkSold(c *gin.Context) {
	var req vehicledomain.MarkSoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	v, err := h.salesService.MarkSold(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle marked sold", v)
}

// SetStatus moves a vehicle to another lifecycle status
// PATCH /admin/vehicles/:id/status
func (h *VehicleHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status vehicledomain.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	v, err := h.salesService.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "status updated", v)
}
