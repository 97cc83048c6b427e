package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk2023060901/search-aggregator/internal/pkg/database"
	"github.com/lk2023060901/search-aggregator/internal/pkg/logger"
	"github.com/lk2023060901/search-aggregator/internal/pkg/redis"
	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
	"github.com/spf13/viper"
)

// History storage drivers
const (
	HistoryDriverMemory   = "memory"
	HistoryDriverPostgres = "postgres"
	HistoryDriverRedis    = "redis"
)

type Config struct {
	Server   ServerConfig    `mapstructure:"server"`
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	Redis    redis.Config    `mapstructure:"redis"`
	History  HistoryConfig   `mapstructure:"history"`
	Search   SearchConfig    `mapstructure:"search"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	GRPCPort        int           `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type HistoryConfig struct {
	Driver    string `mapstructure:"driver"` // memory, postgres, redis
	Limit     int    `mapstructure:"limit"`
	KeyPrefix string `mapstructure:"key_prefix"` // redis driver only
}

type SearchConfig struct {
	ProviderTimeout time.Duration    `mapstructure:"provider_timeout"`
	RequestTimeout  time.Duration    `mapstructure:"request_timeout"`
	Web             ProviderSettings `mapstructure:"web"`
	Video           ProviderSettings `mapstructure:"video"`
}

// ProviderSettings holds one provider's endpoint and credentials.
// APIKey may carry several comma-separated keys.
type ProviderSettings struct {
	APIHost    string `mapstructure:"api_host"`
	APIKey     string `mapstructure:"api_key"`
	Engine     string `mapstructure:"engine"`
	Timeout    int    `mapstructure:"timeout"` // seconds
	MaxResults int    `mapstructure:"max_results"`
}

// LoadConfig reads the YAML file at path (optional) and overlays environment variables.
// Nested keys map to upper-case env names with "." replaced by "_", e.g. SERVER_PORT.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// conventional names for the provider credentials
	if err := v.BindEnv("search.web.api_key", "SEARCH_WEB_API_KEY", "SERPAPI_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("search.video.api_key", "SEARCH_VIDEO_API_KEY", "YOUTUBE_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.grpc_port", 9000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	lc := logger.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.output", lc.Output)
	v.SetDefault("log.enablecaller", lc.EnableCaller)
	v.SetDefault("log.enablestacktrace", lc.EnableStacktrace)
	v.SetDefault("log.file.filename", lc.File.Filename)
	v.SetDefault("log.file.maxsize", lc.File.MaxSize)
	v.SetDefault("log.file.maxage", lc.File.MaxAge)
	v.SetDefault("log.file.maxbackups", lc.File.MaxBackups)
	v.SetDefault("log.file.compress", lc.File.Compress)

	dc := database.DefaultConfig()
	v.SetDefault("database.host", dc.Host)
	v.SetDefault("database.port", dc.Port)
	v.SetDefault("database.user", dc.User)
	v.SetDefault("database.password", dc.Password)
	v.SetDefault("database.dbname", dc.DBName)
	v.SetDefault("database.sslmode", dc.SSLMode)
	v.SetDefault("database.timezone", dc.Timezone)
	v.SetDefault("database.maxidleconns", dc.MaxIdleConns)
	v.SetDefault("database.maxopenconns", dc.MaxOpenConns)
	v.SetDefault("database.connmaxlifetime", dc.ConnMaxLifetime)
	v.SetDefault("database.connmaxidletime", dc.ConnMaxIdleTime)
	v.SetDefault("database.loglevel", dc.LogLevel)
	v.SetDefault("database.slowthreshold", dc.SlowThreshold)
	v.SetDefault("database.automigrate", dc.AutoMigrate)

	rc := redis.DefaultConfig()
	v.SetDefault("redis.mode", string(rc.Mode))
	v.SetDefault("redis.master_addr", rc.MasterAddr)
	v.SetDefault("redis.password", rc.Password)
	v.SetDefault("redis.db", rc.DB)
	v.SetDefault("redis.pool_size", rc.PoolSize)
	v.SetDefault("redis.min_idle_conns", rc.MinIdleConns)
	v.SetDefault("redis.dial_timeout", rc.DialTimeout)
	v.SetDefault("redis.read_timeout", rc.ReadTimeout)
	v.SetDefault("redis.write_timeout", rc.WriteTimeout)
	v.SetDefault("redis.pool_timeout", rc.PoolTimeout)
	v.SetDefault("redis.max_retries", rc.MaxRetries)
	v.SetDefault("redis.min_retry_backoff", rc.MinRetryBackoff)
	v.SetDefault("redis.max_retry_backoff", rc.MaxRetryBackoff)
	v.SetDefault("redis.conn_max_idle_time", rc.ConnMaxIdleTime)

	v.SetDefault("history.driver", HistoryDriverMemory)
	v.SetDefault("history.limit", 10)
	v.SetDefault("history.key_prefix", "search:history")

	v.SetDefault("search.provider_timeout", 5*time.Second)
	v.SetDefault("search.request_timeout", 15*time.Second)
	v.SetDefault("search.web.api_host", "https://serpapi.com")
	v.SetDefault("search.web.api_key", "")
	v.SetDefault("search.web.engine", "google")
	v.SetDefault("search.web.timeout", 5)
	v.SetDefault("search.web.max_results", 0)
	v.SetDefault("search.video.api_host", "https://www.googleapis.com")
	v.SetDefault("search.video.api_key", "")
	v.SetDefault("search.video.engine", "")
	v.SetDefault("search.video.timeout", 5)
	v.SetDefault("search.video.max_results", 0)
}

// Validate checks the parts of the configuration the selected drivers depend on
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server port must be between 1 and 65535")
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return errors.New("server grpc_port must be between 0 and 65535")
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	switch c.History.Driver {
	case HistoryDriverMemory:
	case HistoryDriverPostgres:
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case HistoryDriverRedis:
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	default:
		return fmt.Errorf("unknown history driver %q, must be one of: memory, postgres, redis", c.History.Driver)
	}
	if c.History.Limit <= 0 {
		return errors.New("history limit must be > 0")
	}

	if c.Search.ProviderTimeout <= 0 {
		return errors.New("search provider_timeout must be > 0")
	}
	if c.Search.RequestTimeout < 0 {
		return errors.New("search request_timeout must be >= 0")
	}

	return nil
}

// ProviderConfigs returns the provider configurations in aggregation order: web, then video
func (c *SearchConfig) ProviderConfigs() []*types.ProviderConfig {
	return []*types.ProviderConfig{
		{
			ID:         types.ProviderWeb,
			Name:       "SerpAPI",
			APIHost:    c.Web.APIHost,
			APIKey:     c.Web.APIKey,
			Engine:     c.Web.Engine,
			Timeout:    c.Web.Timeout,
			MaxResults: c.Web.MaxResults,
		},
		{
			ID:         types.ProviderVideo,
			Name:       "YouTube",
			APIHost:    c.Video.APIHost,
			APIKey:     c.Video.APIKey,
			Timeout:    c.Video.Timeout,
			MaxResults: c.Video.MaxResults,
		},
	}
}
