package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/storefront/internal/config"
	httpx "github.com/you/storefront/internal/http"
	"github.com/you/storefront/internal/http/handlers"
	"github.com/you/storefront/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if container.RedisClient != nil {
		if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
			return err
		}
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc)
	userH := handlers.NewUserHandlers(container.AuthSvc, container.UserRepo)
	orderH := handlers.NewOrderHandlers(container.OrderRepo)
	polH := handlers.NewPolicyHandlers(container.PolicySvc)

	jwtMW := middleware.NewAuthMW(container.TokenSvc)
	ownMW := middleware.NewOwnershipMW(container.OrderRepo)
	casbinMW := middleware.NewCasbinMW(container.Casbin.E)

	r := httpx.BuildRouter(authH, userH, orderH, polH, jwtMW, ownMW, casbinMW)

	if err := container.PolicySvc.SeedDefaults(); err != nil {
		return err
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
