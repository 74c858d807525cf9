package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

// AppleReceiptConfig holds everything about the outbound verifyReceipt calls.
// The sandbox retry status is Apple's sentinel for "this receipt is from the
// test environment"; it lives in config rather than code so the service can
// be pointed at vendor doubles in tests and at other deployments.
type AppleReceiptConfig struct {
	ProductionURL      string `mapstructure:"production_url"`
	SandboxURL         string `mapstructure:"sandbox_url"`
	SharedSecret       string `mapstructure:"shared_secret"`
	SandboxRetryStatus int    `mapstructure:"sandbox_retry_status"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"`
}

func (c AppleReceiptConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EntitlementConfig is the matching policy for the lifetime unlock: a fixed
// set of known product identifiers plus a substring wildcard that tolerates
// identifier variants shipped after the list was frozen.
type EntitlementConfig struct {
	LifetimeProductIDs []string `mapstructure:"lifetime_product_ids"`
	LifetimeKeyword    string   `mapstructure:"lifetime_keyword"`
}

type Config struct {
	Env          Env                `mapstructure:"env"`
	Server       ServerConfig       `mapstructure:"server"`
	AppleReceipt AppleReceiptConfig `mapstructure:"apple_receipt"`
	Entitlement  EntitlementConfig  `mapstructure:"entitlement"`
	MetricsAddr  string             `mapstructure:"metrics_addr"`
}

func New() (*Config, error) {
	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8888)
	v.SetDefault("metrics_addr", ":90")
	v.SetDefault("apple_receipt.production_url", "https://buy.itunes.apple.com/verifyReceipt")
	v.SetDefault("apple_receipt.sandbox_url", "https://sandbox.itunes.apple.com/verifyReceipt")
	v.SetDefault("apple_receipt.shared_secret", "")
	v.SetDefault("apple_receipt.sandbox_retry_status", 21007)
	v.SetDefault("apple_receipt.timeout_seconds", 15)
	v.SetDefault("entitlement.lifetime_product_ids", []string{"com.luiz.PandaApp.lifetime"})
	v.SetDefault("entitlement.lifetime_keyword", "lifetime")

	// Config file is optional; defaults plus env overrides are enough to run.
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &c, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
