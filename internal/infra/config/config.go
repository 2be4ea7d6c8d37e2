package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	customErrors "github.com/Miraines/MoonyAndStarry/library-service/internal/domain/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPAddress string
	GRPCAddress string

	DatabaseDriver string
	DatabaseURL    string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	JWTKey   string
	Issuer   string
	Audience string
	TokenTTL time.Duration

	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string

	AllowedOrigins   []string
	AllowCredentials bool

	TLSCertFile string
	TLSKeyFile  string

	LoginRPS   int
	LoginBurst int

	LogLevel string
}

// TLSEnabled reports whether both certificate and key were configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Load reads config.json from the working directory (optional), then the
// environment, then an optional .env file for variables not already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.address", ":8080")
	v.SetDefault("grpc.address", ":50051")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "library.db")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.username", "test")
	v.SetDefault("auth.password", "password")
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("ratelimit.login_rps", 5)
	v.SetDefault("ratelimit.login_burst", 10)
	v.SetDefault("log.level", "debug")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, customErrors.NewConfiguration(fmt.Sprintf("read config file: %v", err))
		}
	}

	cfg := &Config{
		HTTPAddress:      v.GetString("http.address"),
		GRPCAddress:      v.GetString("grpc.address"),
		DatabaseDriver:   strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:      v.GetString("database.url"),
		RedisAddress:     v.GetString("redis.address"),
		RedisPassword:    v.GetString("redis.password"),
		RedisDB:          v.GetInt("redis.db"),
		JWTKey:           v.GetString("jwt.key"),
		Issuer:           v.GetString("jwt.issuer"),
		Audience:         v.GetString("jwt.audience"),
		AuthUsername:     v.GetString("auth.username"),
		AuthPassword:     v.GetString("auth.password"),
		AuthPasswordHash: v.GetString("auth.password_hash"),
		AllowedOrigins:   splitList(v.GetStringSlice("cors.allowed_origins")),
		AllowCredentials: v.GetBool("cors.allow_credentials"),
		TLSCertFile:      v.GetString("tls.cert_file"),
		TLSKeyFile:       v.GetString("tls.key_file"),
		LoginRPS:         v.GetInt("ratelimit.login_rps"),
		LoginBurst:       v.GetInt("ratelimit.login_burst"),
		LogLevel:         v.GetString("log.level"),
	}

	ttl, err := parseMinutes(v.GetString("jwt.expires_in_minutes"))
	if err != nil {
		return nil, err
	}
	cfg.TokenTTL = ttl

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the service cannot start without.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"JWT_KEY", c.JWTKey},
		{"JWT_ISSUER", c.Issuer},
		{"JWT_AUDIENCE", c.Audience},
		{"DATABASE_URL", c.DatabaseURL},
		{"AUTH_USERNAME", c.AuthUsername},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return customErrors.NewConfiguration(r.name + " is required")
		}
	}

	if c.TokenTTL <= 0 {
		return customErrors.NewConfiguration("JWT_EXPIRES_IN_MINUTES must be a positive integer")
	}

	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return customErrors.NewConfiguration(fmt.Sprintf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.AuthPassword == "" && c.AuthPasswordHash == "" {
		return customErrors.NewConfiguration("AUTH_PASSWORD or AUTH_PASSWORD_HASH is required")
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return customErrors.NewConfiguration("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	if c.LoginRPS <= 0 || c.LoginBurst <= 0 {
		return customErrors.NewConfiguration("login rate limit must be positive")
	}
	return nil
}

func parseMinutes(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, customErrors.NewConfiguration("JWT_EXPIRES_IN_MINUTES is required")
	}
	minutes, err := cast.ToIntE(raw)
	if err != nil || minutes <= 0 {
		return 0, customErrors.NewConfiguration(fmt.Sprintf("JWT_EXPIRES_IN_MINUTES must be a positive integer, got %q", raw))
	}
	return time.Duration(minutes) * time.Minute, nil
}

// splitList accepts both a JSON array and a comma separated env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
