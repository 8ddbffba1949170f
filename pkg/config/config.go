package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/golangdaddy/roadrush/pkg/world"
)

// FileName is the optional config file looked up in the config directory
const FileName = "roadrush.json"

// EnvPrefix prefixes environment overrides, e.g. ROADRUSH_TELEMETRY_APIURL
const EnvPrefix = "ROADRUSH"

// Config is the typed view of all settings
type Config struct {
	LogLevel  string          `json:"logLevel" mapstructure:"logLevel"`
	LogFile   string          `json:"logFile" mapstructure:"logFile"`
	Seed      int64           `json:"seed" mapstructure:"seed"` // 0 picks a time-based seed
	Window    WindowConfig    `json:"window" mapstructure:"window"`
	World     WorldConfig     `json:"world" mapstructure:"world"`
	Telemetry TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
	Collector CollectorConfig `json:"collector" mapstructure:"collector"`
}

// WindowConfig holds desktop window settings
type WindowConfig struct {
	Title     string `json:"title" mapstructure:"title"`
	Width     int    `json:"width" mapstructure:"width"`
	Height    int    `json:"height" mapstructure:"height"`
	Resizable bool   `json:"resizable" mapstructure:"resizable"`
	TPS       int    `json:"tps" mapstructure:"tps"`
}

// WorldConfig mirrors world.Config
type WorldConfig struct {
	Width          float64 `json:"width" mapstructure:"width"`
	Height         float64 `json:"height" mapstructure:"height"`
	RoadWidth      float64 `json:"roadWidth" mapstructure:"roadWidth"`
	LineWidth      float64 `json:"lineWidth" mapstructure:"lineWidth"`
	LineHeight     float64 `json:"lineHeight" mapstructure:"lineHeight"`
	VehicleWidth   float64 `json:"vehicleWidth" mapstructure:"vehicleWidth"`
	VehicleHeight  float64 `json:"vehicleHeight" mapstructure:"vehicleHeight"`
	StartOffsetY   float64 `json:"startOffsetY" mapstructure:"startOffsetY"`
	Speed          float64 `json:"speed" mapstructure:"speed"`
	ObstacleWidth  float64 `json:"obstacleWidth" mapstructure:"obstacleWidth"`
	ObstacleHeight float64 `json:"obstacleHeight" mapstructure:"obstacleHeight"`
	SpawnInterval  int     `json:"spawnInterval" mapstructure:"spawnInterval"`
	CruiseSpeed    float64 `json:"cruiseSpeed" mapstructure:"cruiseSpeed"`
	FastSpeed      float64 `json:"fastSpeed" mapstructure:"fastSpeed"`
	SlowSpeed      float64 `json:"slowSpeed" mapstructure:"slowSpeed"`
}

// TelemetryConfig holds the session reporting client settings
type TelemetryConfig struct {
	Enabled   bool           `json:"enabled" mapstructure:"enabled"`
	APIURL    string         `json:"apiUrl" mapstructure:"apiUrl"`
	Timeout   time.Duration  `json:"timeout" mapstructure:"timeout"`
	QueueSize int            `json:"queueSize" mapstructure:"queueSize"`
	Location  LocationConfig `json:"location" mapstructure:"location"`
}

// LocationConfig is a fixed position reported in place of a geolocation lookup
type LocationConfig struct {
	Enabled   bool    `json:"enabled" mapstructure:"enabled"`
	Latitude  float64 `json:"latitude" mapstructure:"latitude"`
	Longitude float64 `json:"longitude" mapstructure:"longitude"`
	Accuracy  float64 `json:"accuracy" mapstructure:"accuracy"`
}

// CollectorConfig holds the telemetry collector service settings
type CollectorConfig struct {
	Addr            string        `json:"addr" mapstructure:"addr"`
	CORSOrigin      string        `json:"corsOrigin" mapstructure:"corsOrigin"`
	ListLimit       int           `json:"listLimit" mapstructure:"listLimit"` // Default page size for GET listings
	ShutdownTimeout time.Duration `json:"shutdownTimeout" mapstructure:"shutdownTimeout"`
	GeoIPPath       string        `json:"geoipPath" mapstructure:"geoipPath"` // MaxMind City database, empty disables lookups
	Storage         StorageConfig `json:"storage" mapstructure:"storage"`
}

// StorageConfig selects the collector storage backend
type StorageConfig struct {
	Type     string         `json:"type" mapstructure:"type"` // "sqlite" or "postgres"
	SQLite   SQLiteConfig   `json:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `json:"postgres" mapstructure:"postgres"`
}

// SQLiteConfig holds SQLite storage settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"` // ":memory:" keeps everything in memory
}

// PostgresConfig holds Postgres storage settings
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	SSLMode  string `json:"sslMode" mapstructure:"sslMode"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")
	viper.SetDefault("seed", 0)

	viper.SetDefault("window.title", "Roadrush")
	viper.SetDefault("window.width", 800)
	viper.SetDefault("window.height", 600)
	viper.SetDefault("window.resizable", true)
	viper.SetDefault("window.tps", 60)

	w := world.DefaultConfig()
	viper.SetDefault("world.width", w.Width)
	viper.SetDefault("world.height", w.Height)
	viper.SetDefault("world.roadWidth", w.RoadWidth)
	viper.SetDefault("world.lineWidth", w.LineWidth)
	viper.SetDefault("world.lineHeight", w.LineHeight)
	viper.SetDefault("world.vehicleWidth", w.VehicleWidth)
	viper.SetDefault("world.vehicleHeight", w.VehicleHeight)
	viper.SetDefault("world.startOffsetY", w.StartOffsetY)
	viper.SetDefault("world.speed", w.Speed)
	viper.SetDefault("world.obstacleWidth", w.ObstacleWidth)
	viper.SetDefault("world.obstacleHeight", w.ObstacleHeight)
	viper.SetDefault("world.spawnInterval", w.SpawnInterval)
	viper.SetDefault("world.cruiseSpeed", w.CruiseSpeed)
	viper.SetDefault("world.fastSpeed", w.FastSpeed)
	viper.SetDefault("world.slowSpeed", w.SlowSpeed)

	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.apiUrl", "http://localhost:3000")
	viper.SetDefault("telemetry.timeout", "5s")
	viper.SetDefault("telemetry.queueSize", 16)
	viper.SetDefault("telemetry.location.enabled", false)
	viper.SetDefault("telemetry.location.latitude", 0.0)
	viper.SetDefault("telemetry.location.longitude", 0.0)
	viper.SetDefault("telemetry.location.accuracy", 0.0)

	viper.SetDefault("collector.addr", ":3000")
	viper.SetDefault("collector.corsOrigin", "*")
	viper.SetDefault("collector.listLimit", 100)
	viper.SetDefault("collector.shutdownTimeout", "10s")
	viper.SetDefault("collector.geoipPath", "")
	viper.SetDefault("collector.storage.type", "sqlite")
	viper.SetDefault("collector.storage.sqlite.path", "./roadrush.db")
	viper.SetDefault("collector.storage.postgres.host", "localhost")
	viper.SetDefault("collector.storage.postgres.port", "5432")
	viper.SetDefault("collector.storage.postgres.username", "postgres")
	viper.SetDefault("collector.storage.postgres.password", "postgres")
	viper.SetDefault("collector.storage.postgres.database", "roadrush")
	viper.SetDefault("collector.storage.postgres.sslMode", "disable")
}

// Load sets defaults, reads roadrush.json from configDir if it exists,
// applies ROADRUSH_* environment overrides and returns the typed result.
func Load(configDir string) (*Config, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.WorldConfig().Validate(); err != nil {
		return nil, fmt.Errorf("invalid world config: %w", err)
	}
	return &cfg, nil
}

// WorldConfig converts the world section into simulation geometry
func (c *Config) WorldConfig() world.Config {
	w := c.World
	return world.Config{
		Width:          w.Width,
		Height:         w.Height,
		RoadWidth:      w.RoadWidth,
		LineWidth:      w.LineWidth,
		LineHeight:     w.LineHeight,
		VehicleWidth:   w.VehicleWidth,
		VehicleHeight:  w.VehicleHeight,
		StartOffsetY:   w.StartOffsetY,
		Speed:          w.Speed,
		ObstacleWidth:  w.ObstacleWidth,
		ObstacleHeight: w.ObstacleHeight,
		SpawnInterval:  w.SpawnInterval,
		CruiseSpeed:    w.CruiseSpeed,
		FastSpeed:      w.FastSpeed,
		SlowSpeed:      w.SlowSpeed,
	}
}

// ConfigFileUsed returns the path of the config file read, if any
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
