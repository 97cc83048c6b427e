package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 9000, cfg.Server.GRPCPort)
	assert.Equal(t, HistoryDriverMemory, cfg.History.Driver)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, 5*time.Second, cfg.Search.ProviderTimeout)
	assert.Equal(t, "https://serpapi.com", cfg.Search.Web.APIHost)
	assert.Equal(t, "google", cfg.Search.Web.Engine)
	assert.Equal(t, "https://www.googleapis.com", cfg.Search.Video.APIHost)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  read_timeout: 3s
history:
  driver: postgres
  limit: 20
database:
  host: db.internal
  dbname: searches
search:
  provider_timeout: 2s
  web:
    api_key: web-key
    engine: bing
  video:
    api_key: "k1,k2"
    max_results: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, HistoryDriverPostgres, cfg.History.Driver)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "searches", cfg.Database.DBName)
	// untouched keys keep their defaults
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, 2*time.Second, cfg.Search.ProviderTimeout)
	assert.Equal(t, "web-key", cfg.Search.Web.APIKey)
	assert.Equal(t, "bing", cfg.Search.Web.Engine)
	assert.Equal(t, "k1,k2", cfg.Search.Video.APIKey)
	assert.Equal(t, 5, cfg.Search.Video.MaxResults)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERPAPI_KEY", "serp-from-env")
	t.Setenv("YOUTUBE_API_KEY", "yt-from-env")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("HISTORY_DRIVER", "redis")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "serp-from-env", cfg.Search.Web.APIKey)
	assert.Equal(t, "yt-from-env", cfg.Search.Video.APIKey)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, HistoryDriverRedis, cfg.History.Driver)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, "history:\n  driver: sqlite\n")
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "unknown history driver")
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad grpc port", func(c *Config) { c.Server.GRPCPort = 70000 }, true},
		{"zero history limit", func(c *Config) { c.History.Limit = 0 }, true},
		{"zero provider timeout", func(c *Config) { c.Search.ProviderTimeout = 0 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"postgres without host", func(c *Config) {
			c.History.Driver = HistoryDriverPostgres
			c.Database.Host = ""
		}, true},
		{"redis without addr", func(c *Config) {
			c.History.Driver = HistoryDriverRedis
			c.Redis.MasterAddr = ""
		}, true},
		{"database ignored for memory driver", func(c *Config) { c.Database.Host = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchConfig_ProviderConfigs(t *testing.T) {
	sc := &SearchConfig{
		Web:   ProviderSettings{APIHost: "https://serpapi.com", APIKey: "a", Engine: "google", Timeout: 3},
		Video: ProviderSettings{APIHost: "https://www.googleapis.com", MaxResults: 7},
	}

	configs := sc.ProviderConfigs()
	require.Len(t, configs, 2)
	assert.Equal(t, types.ProviderWeb, configs[0].ID)
	assert.Equal(t, "a", configs[0].APIKey)
	assert.Equal(t, 3, configs[0].Timeout)
	assert.True(t, configs[0].IsConfigured())
	assert.Equal(t, types.ProviderVideo, configs[1].ID)
	assert.Equal(t, 7, configs[1].MaxResults)
	assert.False(t, configs[1].IsConfigured())
}
