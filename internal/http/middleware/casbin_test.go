package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/storefront/domain"
)

const testModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

func createTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testModelText)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|PATCH|DELETE)")
	require.NoError(t, err)
	return e
}

func adminRouter(e *casbin.Enforcer, injectIdentity gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := NewCasbinMW(e)

	r := gin.New()
	grp := r.Group("/admin")
	if injectIdentity != nil {
		grp.Use(injectIdentity)
	}
	grp.Use(mw.Enforce())
	grp.GET("/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	grp.PATCH("/orders/:id/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestCasbinMW_Enforce(t *testing.T) {
	enforcer := createTestEnforcer(t)

	tests := []struct {
		name           string
		identity       gin.HandlerFunc
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "admin allowed",
			identity:       identity(1, domain.RoleAdmin),
			method:         http.MethodGet,
			path:           "/admin/orders",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "admin allowed on parameterized route",
			identity:       identity(1, domain.RoleAdmin),
			method:         http.MethodPatch,
			path:           "/admin/orders/3/status",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "plain user denied",
			identity:       identity(7, domain.RoleUser),
			method:         http.MethodGet,
			path:           "/admin/orders",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "no identity in context",
			identity:       nil,
			method:         http.MethodGet,
			path:           "/admin/orders",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := adminRouter(enforcer, tt.identity)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestCasbinMW_RoleGrantedAtRuntime(t *testing.T) {
	enforcer := createTestEnforcer(t)
	router := adminRouter(enforcer, identity(9, "support"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	require.Equal(t, http.StatusForbidden, w.Code)

	_, err := enforcer.AddPolicy("role_support", "/admin/orders", "GET")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
