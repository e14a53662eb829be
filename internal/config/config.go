package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// Token lifetimes are expressed in minutes so both deployment styles
// (30-minute access tokens, 7-day refresh tokens) are plain numbers.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
// Provider selects the backend: "ollama" talks to an Ollama server over
// HTTP, "gemini" uses the Google GenAI API.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"        validate:"required,oneof=ollama gemini"`
	OllamaBaseURL  string `mapstructure:"ollama_base_url" validate:"required_if=Provider ollama"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key"  validate:"required_if=Provider gemini"`
	ModelName      string `mapstructure:"model_name"      validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// StorageConfig contains the object-storage settings used by the upload
// delegate. When Endpoint is empty the upload endpoints report the feature
// as unconfigured instead of failing at startup.
type StorageConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	PublicURL        string `mapstructure:"public_url"`
	DefaultFolder    string `mapstructure:"default_folder"`
	MaxFileSizeBytes int64  `mapstructure:"max_file_size_bytes"`
	UploadTTLSeconds int    `mapstructure:"upload_ttl_seconds"`
}
