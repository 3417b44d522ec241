package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// @Summary List Customers
// @Tags Customers
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/kunden [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	customers, err := h.customerService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "customers": customers})
}

// @Summary Create Customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body services.CreateCustomerRequest true "Customer"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/kunden [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req services.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "customer": customer})
}
