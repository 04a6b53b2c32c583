package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/storefront/domain"
)

// PolicyHandlers manages the casbin policy surface; admin only
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

// PolicyRequest represents one policy rule
type PolicyRequest struct {
	Sub string `json:"sub" binding:"required"`
	Obj string `json:"obj" binding:"required"`
	Act string `json:"act" binding:"required"`
}

// List returns every policy rule
func (h *PolicyHandlers) List(c *gin.Context) {
	policies, err := h.policySvc.ListPolicies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list policies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"policies": policies})
}

// Add installs a policy rule
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.policySvc.AddPolicy(req.Sub, req.Obj, req.Act); err != nil {
		if err == domain.ErrPolicyExists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Policy already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add policy"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Remove deletes a policy rule
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.policySvc.RemovePolicy(req.Sub, req.Obj, req.Act); err != nil {
		if err == domain.ErrPolicyNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Policy not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove policy"})
		return
	}

	c.Status(http.StatusNoContent)
}
