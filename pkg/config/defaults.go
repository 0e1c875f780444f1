package config

const (
	defaultServerListen = ":5001"

	defaultUpstreamBaseURL = "https://api.sportsdata.io/v3/nba"
	defaultUpstreamTimeout = 30

	defaultStorageDriver = "memory"

	defaultContextMaxAgeHours = 24

	defaultKafkaTopic = "courtside.tasks"

	defaultMCPListen = ":5002"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: defaultServerListen,
		},
		Upstream: UpstreamConfig{
			BaseURL:        defaultUpstreamBaseURL,
			TimeoutSeconds: defaultUpstreamTimeout,
		},
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
		},
		Contexts: ContextsConfig{
			MaxAgeHours: defaultContextMaxAgeHours,
		},
		Kafka: KafkaConfig{
			Topic: defaultKafkaTopic,
		},
		MCP: MCPConfig{
			Listen: defaultMCPListen,
		},
	}
}
