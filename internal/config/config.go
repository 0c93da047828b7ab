package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the places service.
//
// Fields:
// - Env: The current environment (local, development, production).
// - Port: The port serving the API, health check and metrics.
// - RefreshInterval: How often the place list is reloaded from the database.
// - ProviderType: The geocoding provider used for address lookups (google, nominatim, none).
// - APIKey: The API key for the geocoding provider (required for Google).
// - ProviderRate: Requests per second allowed towards the geocoding provider.
// - Region: Country code used to bias address lookups.
// - MapCenter: The initial map center shown to users.
// - AllowedOrigins: Origins accepted by the CORS middleware.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env             string
	Port            int
	RefreshInterval time.Duration
	ProviderType    string
	APIKey          string
	ProviderRate    int
	Region          string
	MapCenter       models.Coordinates
	AllowedOrigins  []string
	Database        PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the configuration from the environment (optionally seeded by a
// .env file) and an optional YAML file named by HERMES_CONFIG_FILE. Environment
// variables win over the file. It panics on values that cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HERMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("http_port", "8080")
	v.SetDefault("refresh_interval", "30s")
	v.SetDefault("provider_type", "nominatim")
	v.SetDefault("provider_rate", "1")
	v.SetDefault("region", "mx")
	v.SetDefault("map_center_lat", "21.1560")
	v.SetDefault("map_center_lng", "-100.9318")
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("database.port", "5432")

	bindDatabaseEnv(v)

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("refresh_interval"))
	if err != nil {
		panic("failed to parse refresh interval from configuration")
	}
	if interval <= 0 {
		panic("refresh interval must be positive")
	}

	port, err := strconv.Atoi(v.GetString("http_port"))
	if err != nil {
		panic("failed to parse http port from configuration")
	}

	providerRate, err := strconv.Atoi(v.GetString("provider_rate"))
	if err != nil {
		panic("failed to parse provider rate from configuration, must be an integer")
	}

	lat, errLat := strconv.ParseFloat(v.GetString("map_center_lat"), 64)
	lng, errLng := strconv.ParseFloat(v.GetString("map_center_lng"), 64)
	center := models.Coordinates{Latitude: lat, Longitude: lng}
	if errLat != nil || errLng != nil || !center.Valid() {
		panic("failed to parse map center from configuration")
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            port,
		RefreshInterval: interval,
		ProviderType:    v.GetString("provider_type"),
		APIKey:          v.GetString("provider_key"),
		ProviderRate:    providerRate,
		Region:          v.GetString("region"),
		MapCenter:       center,
		AllowedOrigins:  splitList(v.GetString("allowed_origins")),
		Database: PostgresConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
		},
	}
}

// bindDatabaseEnv keeps the unprefixed DB_* variables shared with the other services.
func bindDatabaseEnv(v *viper.Viper) {
	_ = v.BindEnv("database.host", "DB_HOST")
	_ = v.BindEnv("database.port", "DB_PORT")
	_ = v.BindEnv("database.user", "DB_USERNAME")
	_ = v.BindEnv("database.password", "DB_PASSWORD")
	_ = v.BindEnv("database.name", "DB_NAME")
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
