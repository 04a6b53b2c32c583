package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	TTL     string `yaml:"ttl"`
	Backend string `yaml:"backend"` // "memory" or "redis"
}

type ResetConfig struct {
	TTL string `yaml:"ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Reset    ResetConfig    `yaml:"reset"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	BaseURL         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	TokenTTL        time.Duration
	OTPTTL          time.Duration
	OTPBackend      string
	ResetTTL        time.Duration
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	tokenTTL, err := time.ParseDuration(configFile.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(configFile.Reset.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset token TTL: %w", err)
	}

	cfg := &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		BaseURL:         configFile.App.BaseURL,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		TokenTTL:        tokenTTL,
		OTPTTL:          otpTTL,
		OTPBackend:      env("OTP_BACKEND", configFile.OTP.Backend),
		ResetTTL:        resetTTL,
		SMTPHost:        env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:        configFile.SMTP.Port,
		SMTPUsername:    env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:    env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:        env("SMTP_FROM", configFile.SMTP.From),
		CasbinModelPath: configFile.Casbin.ModelPath,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate fails fast on missing required secrets rather than substituting
// insecure defaults.
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (JWT_SECRET or jwt.secret)")
	}
	if c.DSN == "" {
		return fmt.Errorf("database dsn is required (DATABASE_DSN or database.dsn)")
	}
	switch c.OTPBackend {
	case "memory", "redis":
	case "":
		c.OTPBackend = "memory"
	default:
		return fmt.Errorf("otp.backend must be \"memory\" or \"redis\", got %q", c.OTPBackend)
	}
	if c.OTPBackend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("redis.addr is required when otp.backend is \"redis\"")
	}
	return nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
