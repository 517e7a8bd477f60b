package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/schoenfeld/sfpr-api/internal/domain"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Admin    *AdminConfig    `mapstructure:"admin"`
}

type APIConfig struct {
	Environment         string  `mapstructure:"environment"`
	BaseURL             string  `mapstructure:"base_url"`
	Port                string  `mapstructure:"port"`
	JWTSigningKey       string  `mapstructure:"jwt_signing_key"`
	SitePassword        string  `mapstructure:"site_password"`
	SoliDiscount        float32 `mapstructure:"soli_discount"`
	PaymentInstructions string  `mapstructure:"payment_instructions"`
	AllowedCORSDomains  string  `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
}

// AdminConfig identifies the seeded organizer account. The password comes
// from the environment only, never from the YAML file.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Load reads the YAML file at path, overlays any SFPR_* environment
// variables (e.g. SFPR_POSTGRES_PASSWORD overrides postgres.password) and
// re-reads the file on change.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	viper.SetEnvPrefix("SFPR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	if conf.API.SoliDiscount <= 0 {
		conf.API.SoliDiscount = domain.DefaultSoliDiscount
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		if err := viper.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.String("file", e.Name), zap.Error(err))
			return
		}
		zap.L().Info("config reloaded", zap.String("file", e.Name))
	})
	viper.WatchConfig()

	return conf, nil
}
