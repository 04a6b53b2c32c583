package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/you/storefront/domain"
	"github.com/you/storefront/internal/http/middleware"
)

// OrderHandlers handles order HTTP requests
type OrderHandlers struct {
	orderRepo domain.OrderRepository
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(orderRepo domain.OrderRepository) *OrderHandlers {
	return &OrderHandlers{orderRepo: orderRepo}
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	Items   []domain.OrderItem `json:"items" binding:"required,min=1,dive"`
	Address domain.Address     `json:"address" binding:"required"`
}

// UpdateStatusRequest represents an order status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

// Create places an order owned by the requester
func (h *OrderHandlers) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	userID, err := strconv.ParseUint(userIDStr.(string), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var total int64
	for _, item := range req.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}

	order := &domain.Order{
		Reference: uuid.NewString(),
		UserID:    uint(userID),
		Items:     req.Items,
		Total:     total,
		Status:    domain.OrderStatusPending,
		Address:   req.Address,
	}

	if err := h.orderRepo.Create(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	c.JSON(http.StatusCreated, orderBody(order))
}

// ListMine returns the requester's own orders
func (h *OrderHandlers) ListMine(c *gin.Context) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	userID, err := strconv.ParseUint(userIDStr.(string), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	orders, err := h.orderRepo.FindByUser(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orderBodies(orders)})
}

// Get returns a single order. The ownership middleware has already loaded
// it and verified access.
func (h *OrderHandlers) Get(c *gin.Context) {
	value, exists := c.Get(middleware.ContextOrder)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order not found in context"})
		return
	}
	order := value.(*domain.Order)

	c.JSON(http.StatusOK, orderBody(order))
}

// ListAll returns every order; admin only
func (h *OrderHandlers) ListAll(c *gin.Context) {
	orders, err := h.orderRepo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orderBodies(orders)})
}

// UpdateStatus moves an order through its lifecycle; admin only
func (h *OrderHandlers) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orderRepo.UpdateStatus(c.Request.Context(), uint(orderID), req.Status); err != nil {
		if err == domain.ErrOrderNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

func orderBody(order *domain.Order) gin.H {
	return gin.H{
		"id":         order.ID,
		"reference":  order.Reference,
		"user_id":    order.UserID,
		"items":      order.Items,
		"total":      order.Total,
		"status":     order.Status,
		"address":    order.Address,
		"created_at": order.CreatedAt,
	}
}

func orderBodies(orders []domain.Order) []gin.H {
	bodies := make([]gin.H, 0, len(orders))
	for i := range orders {
		bodies = append(bodies, orderBody(&orders[i]))
	}
	return bodies
}
