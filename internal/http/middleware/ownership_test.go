package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/storefront/domain"
	"github.com/you/storefront/internal/mocks"
)

// identity injects a requester identity the way AuthMiddleware would.
func identity(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", fmt.Sprintf("%d", userID))
		c.Set("user_role", role)
		c.Next()
	}
}

func TestOwnershipMW_RequireSelfOrAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requesterID    uint
		requesterRole  string
		path           string
		expectedStatus int
	}{
		{
			name:           "own resource",
			requesterID:    7,
			requesterRole:  domain.RoleUser,
			path:           "/users/7",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "someone else's resource",
			requesterID:    7,
			requesterRole:  domain.RoleUser,
			path:           "/users/8",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "admin on someone else's resource",
			requesterID:    1,
			requesterRole:  domain.RoleAdmin,
			path:           "/users/8",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewOwnershipMW(mocks.NewMockOrderRepository())
			r := gin.New()
			r.GET("/users/:id", identity(tt.requesterID, tt.requesterRole), mw.RequireSelfOrAdmin("id"), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOwnershipMW_RequireSelfOrAdmin_NoIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mw := NewOwnershipMW(mocks.NewMockOrderRepository())
	r := gin.New()
	r.GET("/users/:id", mw.RequireSelfOrAdmin("id"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/7", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOwnershipMW_RequireOrderAccess(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requesterID    uint
		requesterRole  string
		path           string
		setupMocks     func(*mocks.MockOrderRepository)
		expectedStatus int
	}{
		{
			name:          "owner loads own order",
			requesterID:   7,
			requesterRole: domain.RoleUser,
			path:          "/orders/3",
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
					return &domain.Order{ID: id, UserID: 7}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "non-owner is refused",
			requesterID:   8,
			requesterRole: domain.RoleUser,
			path:          "/orders/3",
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
					return &domain.Order{ID: id, UserID: 7}, nil
				}
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:          "admin reaches any order",
			requesterID:   1,
			requesterRole: domain.RoleAdmin,
			path:          "/orders/3",
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
					return &domain.Order{ID: id, UserID: 7}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:          "missing order",
			requesterID:   7,
			requesterRole: domain.RoleUser,
			path:          "/orders/99",
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
					return nil, domain.ErrOrderNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed order id",
			requesterID:    7,
			requesterRole:  domain.RoleUser,
			path:           "/orders/abc",
			setupMocks:     func(repo *mocks.MockOrderRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "repository failure",
			requesterID:   7,
			requesterRole: domain.RoleUser,
			path:          "/orders/3",
			setupMocks: func(repo *mocks.MockOrderRepository) {
				repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
					return nil, fmt.Errorf("connection reset")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockOrderRepository()
			tt.setupMocks(repo)
			mw := NewOwnershipMW(repo)

			r := gin.New()
			r.GET("/orders/:id", identity(tt.requesterID, tt.requesterRole), mw.RequireOrderAccess("id"), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOwnershipMW_RequireOrderAccess_AttachesOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := mocks.NewMockOrderRepository()
	repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Order, error) {
		return &domain.Order{ID: id, UserID: 7, Reference: "ref-3"}, nil
	}
	mw := NewOwnershipMW(repo)

	var attached *domain.Order
	r := gin.New()
	r.GET("/orders/:id", identity(7, domain.RoleUser), mw.RequireOrderAccess("id"), func(c *gin.Context) {
		val, exists := c.Get(ContextOrder)
		require.True(t, exists)
		attached = val.(*domain.Order)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/3", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, attached)
	assert.Equal(t, uint(3), attached.ID)
	assert.Equal(t, "ref-3", attached.Reference)
}
