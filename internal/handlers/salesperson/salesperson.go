// internal/handlers/salesperson/salesperson.go
package salesperson

import (
	"net/http"

	spdomain "garimoto-service/internal/domain/salesperson"
	"garimoto-service/internal/pkg/response"
	"garimoto-service/internal/service/salesperson"

	"github.com/gin-gonic/gin"
)

type SalespersonHandler struct {
	salespersonService *salesperson.SalespersonService
}

func NewSalespersonHandler(salespersonService *salesperson.SalespersonService) *SalespersonHandler {
	return &SalespersonHandler{salespersonService: salespersonService}
}

// Create registers a new salesperson
// POST /admin/salespeople
func (h *SalespersonHandler) Create(c *gin.Context) {
	var req spdomain.CreateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p, err := h.salespersonService.CreateSalesperson(c.Request.Context(), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "salesperson created", p)
}

// List returns all salespeople
// GET /admin/salespeople
func (h *SalespersonHandler) List(c *gin.Context) {
	people, err := h.salespersonService.ListSalespeople(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "salespeople retrieved", gin.H{
		"salespeople": people,
		"count":       len(people),
	})
}

// Get returns one salesperson
// GET /admin/salespeople/:id
func (h *SalespersonHandler) Get(c *gin.Context) {
	p, err := h.salespersonService.GetSalesperson(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "salesperson retrieved", p)
}

// Update merges the supplied fields into a salesperson record
// PUT /admin/salespeople/:id
func (h *SalespersonHandler) Update(c *gin.Context) {
	var req spdomain.UpdateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p, err := h.salespersonService.UpdateSalesperson(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "salesperson updated", p)
}

// Delete removes a salesperson
// DELETE /admin/salespeople/:id
func (h *SalespersonHandler) Delete(c *gin.Context) {
	if err := h.salespersonService.DeleteSalesperson(c.Request.Context(), c.Param("id")); err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "salesperson deleted", nil)
}
