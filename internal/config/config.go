package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the mesh prefetch service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - ProviderType: The geocoding provider used to resolve search anchors (google, nominatim, gsi).
// - APIKey: The API key for the geocoding provider (required for Google).
// - TilesetBaseURL: The base URL of the PLATEAU mesh-to-tilesets service.
// - TilesetLOD: The level of detail requested from the tileset service.
// - Workers: The number of concurrent workers resolving anchors.
// - Interval: The duration between anchor polling rounds.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env            string         // Env is the current environment: local, development, production.
	Port           int            // Port is the monitoring server port.
	ProviderType   string         // ProviderType selects the geocoding provider.
	APIKey         string         // APIKey authenticates against the geocoding provider.
	TilesetBaseURL string         // TilesetBaseURL points at the PLATEAU tileset resolver.
	TilesetLOD     int            // TilesetLOD is the requested tileset level of detail.
	Workers        int            // Workers is the worker pool size.
	Interval       time.Duration  // Interval is the polling period.
	Database       PostgresConfig // Database holds the postgres configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads the configuration from the environment, honoring an
// optional .env file, and panics on unparseable values. Defaults cover
// everything except credentials and the Google API key.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.AutomaticEnv()

	vpr.SetDefault("MESHGRID_ENV", "production")
	vpr.SetDefault("MESHGRID_HEALTH_PORT", 8080)
	vpr.SetDefault("MESHGRID_PROVIDER_TYPE", "gsi")
	vpr.SetDefault("MESHGRID_TILESET_URL", "https://api.plateau-tiles.example.jp")
	vpr.SetDefault("MESHGRID_TILESET_LOD", 2)
	vpr.SetDefault("MESHGRID_WORKERS", 10)
	vpr.SetDefault("MESHGRID_INTERVAL", "10m")
	vpr.SetDefault("DB_PORT", "5432")

	interval, err := time.ParseDuration(vpr.GetString("MESHGRID_INTERVAL"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	workers := vpr.GetInt("MESHGRID_WORKERS")
	if workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	port := vpr.GetInt("MESHGRID_HEALTH_PORT")
	if port <= 0 {
		panic("failed to parse port for monitoring server from configuration")
	}

	return &Config{
		Env:            vpr.GetString("MESHGRID_ENV"),
		Port:           port,
		ProviderType:   vpr.GetString("MESHGRID_PROVIDER_TYPE"),
		APIKey:         vpr.GetString("MESHGRID_PROVIDER_KEY"),
		TilesetBaseURL: vpr.GetString("MESHGRID_TILESET_URL"),
		TilesetLOD:     vpr.GetInt("MESHGRID_TILESET_LOD"),
		Workers:        workers,
		Interval:       interval,
		Database: PostgresConfig{
			Host:     vpr.GetString("DB_HOST"),
			Port:     vpr.GetString("DB_PORT"),
			User:     vpr.GetString("DB_USERNAME"),
			Password: vpr.GetString("DB_PASSWORD"),
			Name:     vpr.GetString("DB_NAME"),
		},
	}
}
