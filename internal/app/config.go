package app

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JWT-WWIT/modern-web-app/internal/platform/envutil"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
)

type Config struct {
	Addr        string `yaml:"addr"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`

	// ServiceName names the application entry point; the error resolver
	// chain's fallback logger is named after it.
	ServiceName string `yaml:"service_name"`

	// StaticDir enables the static-content fallback when non-empty.
	StaticDir string `yaml:"static_dir"`

	AllowOrigins []string `yaml:"allow_origins"`
	OtelEnabled  bool     `yaml:"otel_enabled"`

	JWTSecretKey string `yaml:"jwt_secret_key"`

	// AccessTokenTTL comes from ACCESS_TOKEN_TTL only; yaml.v3 has no
	// duration syntax.
	AccessTokenTTL time.Duration `yaml:"-"`
}

// LoadConfig reads env vars with defaults, then overlays the YAML file named
// by CONFIG_FILE when present. File values win over env.
func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:           envutil.Str("ADDR", ":8080"),
		Environment:    envutil.Str("ENVIRONMENT", "development"),
		Version:        envutil.Str("VERSION", "dev"),
		ServiceName:    envutil.Str("SERVICE_NAME", "modern-web-app"),
		StaticDir:      envutil.Str("STATIC_DIR", ""),
		OtelEnabled:    envutil.Bool("OTEL_ENABLED", false),
		JWTSecretKey:   envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),
	}

	path := envutil.Str("CONFIG_FILE", "")
	if path == "" {
		return cfg
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("config file unreadable, using env only", "path", path, "error", err)
		return cfg
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Warn("config file invalid, using env only", "path", path, "error", err)
		return cfg
	}
	log.Info("config file loaded", "path", path)
	return cfg
}
