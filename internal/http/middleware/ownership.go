package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/storefront/domain"
)

// ContextOrder is the key under which RequireOrderAccess stores the loaded
// order for the downstream handler.
const ContextOrder = "order"

// OwnershipMW gates resource instances on ownership. Admins pass every
// check unconditionally.
type OwnershipMW struct {
	orderRepo domain.OrderRepository
}

// NewOwnershipMW creates new ownership middleware
func NewOwnershipMW(orderRepo domain.OrderRepository) *OwnershipMW {
	return &OwnershipMW{orderRepo: orderRepo}
}

// RequireSelfOrAdmin permits the request when the path parameter matches
// the requester's own id, or when the requester is an admin.
func (mw *OwnershipMW) RequireSelfOrAdmin(paramName string) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, role, ok := requesterIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			c.Abort()
			return
		}

		if role == domain.RoleAdmin {
			c.Next()
			return
		}

		if c.Param(paramName) != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}

// RequireOrderAccess loads the order named by the path parameter and
// permits the request when the requester owns it or is an admin. The
// loaded order is attached to the context to spare the handler a second
// lookup.
func (mw *OwnershipMW) RequireOrderAccess(paramName string) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		userID, role, ok := requesterIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			c.Abort()
			return
		}

		orderID, err := strconv.ParseUint(c.Param(paramName), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			c.Abort()
			return
		}

		order, err := mw.orderRepo.FindByID(c.Request.Context(), uint(orderID))
		if err != nil {
			if err == domain.ErrOrderNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
			}
			c.Abort()
			return
		}

		if role != domain.RoleAdmin {
			requester, err := strconv.ParseUint(userID, 10, 32)
			if err != nil || order.UserID != uint(requester) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				c.Abort()
				return
			}
		}

		c.Set(ContextOrder, order)
		c.Next()
	})
}

func requesterIdentity(c *gin.Context) (userID, role string, ok bool) {
	idVal, idExists := c.Get("user_id")
	roleVal, roleExists := c.Get("user_role")
	if !idExists || !roleExists {
		return "", "", false
	}
	return idVal.(string), roleVal.(string), true
}
