package config

import (
	"errors"
	"reflect"
	"strings"

	"order-reconciler/core/cache"
	"order-reconciler/core/database"
	"order-reconciler/core/logger"
	"order-reconciler/core/server"
	"order-reconciler/core/storage"
	ordersreconcile "order-reconciler/feature/orders/reconcile"
	"order-reconciler/feature/portal"
	"order-reconciler/feature/provider"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Provider holds the order provider connection settings.
	Provider provider.Config `mapstructure:"provider"`
	// Scheduler holds the status check settings.
	Scheduler ordersreconcile.Config `mapstructure:"scheduler"`
	// Cache selects where reconciliation leases live.
	Cache cache.Config `mapstructure:"cache"`
	// Storage holds configuration for the report bucket (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Portal holds the settings of the simulated provider portal.
	Portal portal.Config `mapstructure:"portal"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. PROVIDER_CLIENT_ID -> provider.client_id)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the sections that can be wrong in ways only noticed at
// runtime.
func (c *Config) Validate() error {
	return errors.Join(c.Provider.Validate(), c.Scheduler.Validate())
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
