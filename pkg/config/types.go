package config

// Config is the resolved courtside configuration. Values are populated from
// defaults, the optional config.toml, COURTSIDE_* environment variables, and
// CLI flags, in increasing order of precedence.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Contexts ContextsConfig `mapstructure:"contexts"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

// ServerConfig holds A2A API server settings.
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// UpstreamConfig holds SportsData.io upstream settings.
type UpstreamConfig struct {
	// BaseURL is the SportsData.io NBA API root.
	BaseURL string `mapstructure:"base_url"`

	// APIKey is sent as the Ocp-Apim-Subscription-Key header.
	// Usually provided via COURTSIDE_UPSTREAM_API_KEY.
	APIKey string `mapstructure:"api_key"`

	// TimeoutSeconds bounds a single upstream GET.
	TimeoutSeconds uint `mapstructure:"timeout_seconds"`
}

// StorageConfig selects and configures the context store backend.
type StorageConfig struct {
	// Driver is one of "memory", "sqlite", "postgres".
	Driver string `mapstructure:"driver"`

	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// ContextsConfig holds conversation context retention settings.
type ContextsConfig struct {
	// MaxAgeHours prunes contexts idle for longer than this before reads.
	// Zero disables pruning.
	MaxAgeHours uint `mapstructure:"max_age_hours"`
}

// WebhookConfig holds push-notification delivery settings.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
}

// KafkaConfig holds task event stream settings.
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// MCPConfig holds the optional MCP tool server settings.
type MCPConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}
