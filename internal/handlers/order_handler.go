package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// @Summary List Orders
// @Description Orders visible to the caller, newest first
// @Tags Orders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/orders [get]
func (h *OrderHandler) Index(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// @Summary Create Order
// @Description Creates a new job order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body services.CreateOrderRequest true "Order"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /api/auftraege/order [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// @Summary Get Order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /api/auftraege/order/{id} [get]
func (h *OrderHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// @Summary Update Order
// @Description Partial update; unknown fields are ignored
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/order/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var partial map[string]interface{}
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), actorFrom(c), id, partial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// @Summary Delete Order
// @Description Deleting an unknown id is not an error
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/order/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.orderService.Delete(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

// @Summary Start Order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/auftraege/order/{id}/start [post]
func (h *OrderHandler) Start(c *gin.Context) {
	h.transition(c, h.orderService.Start)
}

// @Summary Complete Order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/auftraege/order/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.orderService.Complete)
}

// @Summary Cancel Order
// @Tags Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /api/auftraege/order/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

// @Summary Order Summary
// @Description Dashboard counters for orders and daily reports
// @Tags Orders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/auftraege/summary [get]
func (h *OrderHandler) Summary(c *gin.Context) {
	summary, err := h.orderService.Summary(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

func (h *OrderHandler) transition(c *gin.Context, event func(ctx context.Context, actor services.Actor, id uint) (*models.Order, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := event(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}
