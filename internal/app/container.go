package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/storefront/domain"
	"github.com/you/storefront/internal/config"
	"github.com/you/storefront/internal/infrastructure/auth"
	"github.com/you/storefront/internal/infrastructure/database"
	"github.com/you/storefront/internal/infrastructure/notifications"
	"github.com/you/storefront/internal/infrastructure/repositories"
	"github.com/you/storefront/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	UserRepo  domain.UserRepository
	OrderRepo domain.OrderRepository
	Ledger    domain.OTPLedger

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	AuthSvc     domain.AuthService
	PolicySvc   domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initLedger(); err != nil {
		return nil, err
	}
	if err := container.initServices(); err != nil {
		return nil, err
	}

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	c.UserRepo = repositories.NewUserRepository(db)
	c.OrderRepo = repositories.NewOrderRepository(db)
	return nil
}

// initLedger picks the OTP ledger backend. The redis ledger survives a
// restart and is shared between instances; the memory ledger is for a
// single process.
func (c *Container) initLedger() error {
	if c.Config.OTPBackend == "redis" {
		c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
		c.Ledger = repositories.NewRedisOTPLedger(c.RedisClient)
		return nil
	}
	c.Ledger = repositories.NewMemoryOTPLedger()
	return nil
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.TokenTTL)
	c.Mailer = notifications.NewSMTPService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.Ledger,
		c.PasswordSvc,
		c.TokenSvc,
		c.Mailer,
		services.AuthConfig{
			OTPTTL:   c.Config.OTPTTL,
			ResetTTL: c.Config.ResetTTL,
			TokenTTL: c.Config.TokenTTL,
			BaseURL:  c.Config.BaseURL,
		},
	)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
