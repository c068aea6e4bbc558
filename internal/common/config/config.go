// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Intelligence IntelligenceConfig `mapstructure:"intelligence"`
	News         NewsConfig         `mapstructure:"news"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IntelligenceConfig holds settings for the external planning service.
// The service is an opaque collaborator: one POST endpoint plus a
// profile-update/profile-get pair keyed by user_id.
type IntelligenceConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ProfileURL string `mapstructure:"profile_url"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

// NewsConfig holds settings for the feed aggregator.
type NewsConfig struct {
	Sources     []NewsSource `mapstructure:"sources"`
	ProxyPrefix string       `mapstructure:"proxy_prefix"`
	Timeout     int          `mapstructure:"timeout"` // milliseconds, per source
	MaxItems    int          `mapstructure:"max_items"`
}

// NewsSource is one named feed URL.
type NewsSource struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
