package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/messaging"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type OrderHandler struct {
	repo   *repository.OrderRepository
	events messaging.Publisher
	log    *slog.Logger
}

func NewOrderHandler(repo *repository.OrderRepository, events messaging.Publisher, log *slog.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, events: events, log: log}
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input models.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.log.Debug("Invalid request body", "fields", invalidFields(err), "err", err)
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "Email and items are required."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	order, err := h.repo.Create(ctx, input)
	if err != nil {
		fail(c, h.log, err, "", "Failed to create order.")
		return
	}

	publish(ctx, h.events, h.log, messaging.TopicOrderCreated, strconv.FormatInt(order.ID, 10), order)
	c.JSON(http.StatusCreated, models.OrderCreated{Success: true, OrderID: order.ID})
}

// GET /api/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	orders, err := h.repo.List(ctx)
	if err != nil {
		fail(c, h.log, err, "", "Failed to fetch orders.")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// DELETE /api/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := numericID(c)
	if !ok {
		c.JSON(http.StatusNotFound, MessageResponse{Message: "Order not found."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout)
	defer cancel()

	if err := h.repo.Delete(ctx, id); err != nil {
		fail(c, h.log, err, "Order not found.", "Failed to delete order.")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Order deleted successfully."})
}
