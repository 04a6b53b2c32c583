package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/storefront/domain"
)

// UserHandlers handles profile HTTP requests
type UserHandlers struct {
	authSvc  domain.AuthService
	userRepo domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService, userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{authSvc: authSvc, userRepo: userRepo}
}

// UpdateProfileRequest represents a profile update. Email, role and
// password are not mutable through this endpoint.
type UpdateProfileRequest struct {
	Name      string           `json:"name"`
	Contact   string           `json:"contact"`
	Addresses []domain.Address `json:"addresses"`
}

// Me returns the authenticated user's profile
func (h *UserHandlers) Me(c *gin.Context) {
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

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), uint(userID))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, profileBody(user))
}

// Get returns a user profile by id. Reachable only through the
// self-or-admin gate.
func (h *UserHandlers) Get(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), uint(userID))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, profileBody(user))
}

// Update mutates the mutable profile fields. Reachable only through the
// self-or-admin gate.
func (h *UserHandlers) Update(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), uint(userID))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Contact != "" {
		user.Contact = req.Contact
	}
	if req.Addresses != nil {
		user.Addresses = req.Addresses
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profileBody(user))
}

func profileBody(user *domain.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"contact":    user.Contact,
		"role":       user.Role,
		"addresses":  user.Addresses,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}
