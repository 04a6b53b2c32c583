package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// CasbinMiddleware defines the interface for Casbin authorization middleware
type CasbinMiddleware interface {
	Enforce() gin.HandlerFunc
}

// CasbinMW enforces role policies against the request path and method.
// Policies use the "role_<role>" subject convention with keyMatch2 paths
// and regex actions; anything without a matching policy is denied.
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates a new CasbinMW instance
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the Casbin authorization middleware
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		_, userExists := c.Get("user_id")
		userRole, roleExists := c.Get("user_role")

		if !userExists || !roleExists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID or role not found in token"})
			c.Abort()
			return
		}

		// Parameterized path so policies can match route patterns
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		casbinRole := "role_" + userRole.(string)

		allowed, err := mw.enforcer.Enforce(casbinRole, path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
