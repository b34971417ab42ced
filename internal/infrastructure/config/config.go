package config

import (
	"path/filepath"
	"time"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Vector    VectorConfig    `mapstructure:"vector"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Assist    AssistConfig    `mapstructure:"assist"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Tenant    TenantConfig    `mapstructure:"tenant"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	HTTPPort        string        `mapstructure:"http_port" validate:"required"`
	AdminAPIKey     string        `mapstructure:"admin_api_key"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig SQLite settings
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// VectorConfig vector index backend settings
type VectorConfig struct {
	// Backend qdrant, pgvector or memory
	Backend      string `mapstructure:"backend" validate:"oneof=qdrant pgvector memory"`
	QdrantHost   string `mapstructure:"qdrant_host"`
	QdrantPort   int    `mapstructure:"qdrant_port" validate:"gte=0,lte=65535"`
	QdrantAPIKey string `mapstructure:"qdrant_api_key"`
	QdrantTLS    bool   `mapstructure:"qdrant_tls"`
	Collection   string `mapstructure:"collection" validate:"required"`
	PostgresDSN  string `mapstructure:"postgres_dsn" validate:"required_if=Backend pgvector"`
	Dimension    uint64 `mapstructure:"dimension" validate:"gt=0"`
}

// EmbeddingConfig embedding provider settings
type EmbeddingConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// LLMConfig chat model settings
type LLMConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model" validate:"required"`
	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// AssistConfig real-time retrieval and synthesis settings
type AssistConfig struct {
	TotalBudget           time.Duration `mapstructure:"total_budget" validate:"gt=0"`
	ConnectorFetchTimeout time.Duration `mapstructure:"connector_fetch_timeout" validate:"gt=0"`
	MinSearchBudget       time.Duration `mapstructure:"min_search_budget" validate:"gte=0"`
	SynthesisCutoff       time.Duration `mapstructure:"synthesis_cutoff" validate:"gt=0,ltfield=TotalBudget"`
	SynthesisTopK         int           `mapstructure:"synthesis_top_k" validate:"gt=0"`
	WidgetTopK            int           `mapstructure:"widget_top_k" validate:"gt=0"`
	RetainTopN            int           `mapstructure:"retain_top_n" validate:"gt=0"`
	RecencyWindow         time.Duration `mapstructure:"recency_window" validate:"gt=0"`
	RecencyBoost          float64       `mapstructure:"recency_boost" validate:"gte=1"`
	ConfidenceGate        float64       `mapstructure:"confidence_gate" validate:"gte=0,lte=1"`
	HighConfidence        float64       `mapstructure:"high_confidence" validate:"gte=0,lte=1"`
	MaxReferences         int           `mapstructure:"max_references" validate:"gt=0"`
	PreviewChars          int           `mapstructure:"preview_chars" validate:"gt=0"`
	MinPreviewChars       int           `mapstructure:"min_preview_chars" validate:"gte=0"`
	MaxContextTokens      int           `mapstructure:"max_context_tokens" validate:"gt=0"`
}

// IngestConfig ingestion writer and extractor settings
type IngestConfig struct {
	BatchSize          int           `mapstructure:"batch_size" validate:"gt=0"`
	MaxRetries         int           `mapstructure:"max_retries" validate:"gte=0"`
	BackoffBase        time.Duration `mapstructure:"backoff_base" validate:"gte=0"`
	BatchPause         time.Duration `mapstructure:"batch_pause" validate:"gte=0"`
	MinResolutionChars int           `mapstructure:"min_resolution_chars" validate:"gte=0"`
	PageSize           int           `mapstructure:"page_size" validate:"gt=0,lte=100"`
	MaxPages           int           `mapstructure:"max_pages" validate:"gt=0"`
	ChunkTokens        int           `mapstructure:"chunk_tokens" validate:"gt=0"`
}

// TenantConfig integration lookup settings
type TenantConfig struct {
	// SeedFile YAML integrations file, hot-reloaded when set
	SeedFile string `mapstructure:"seed_file"`
	// KeyPath AES key used to encrypt stored API keys
	KeyPath string `mapstructure:"key_path" validate:"required"`
	// Env fallback used when an org has no stored integration
	GorgiasBaseURL       string `mapstructure:"gorgias_base_url"`
	GorgiasUsername      string `mapstructure:"gorgias_username"`
	GorgiasAPIKey        string `mapstructure:"gorgias_api_key"`
	BigCommerceStoreHash string `mapstructure:"bigcommerce_store_hash"`
	BigCommerceToken     string `mapstructure:"bigcommerce_token"`
}

// NewConfig returns the defaults
func NewConfig() *Config {
	dataDir := GetDataDir()
	return &Config{
		Server: ServerConfig{
			HTTPPort:        ":8000",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Path: filepath.Join(dataDir, "supportbrain.db"),
		},
		Vector: VectorConfig{
			Backend:    "qdrant",
			QdrantHost: "localhost",
			QdrantPort: 6334,
			Collection: "support_knowledge",
			Dimension:  1536,
		},
		Embedding: EmbeddingConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "text-embedding-3-small",
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		Assist: AssistConfig{
			TotalBudget:           4500 * time.Millisecond,
			ConnectorFetchTimeout: 1500 * time.Millisecond,
			MinSearchBudget:       time.Second,
			SynthesisCutoff:       3 * time.Second,
			SynthesisTopK:         10,
			WidgetTopK:            5,
			RetainTopN:            3,
			RecencyWindow:         90 * 24 * time.Hour,
			RecencyBoost:          1.10,
			ConfidenceGate:        0.35,
			HighConfidence:        0.6,
			MaxReferences:         3,
			PreviewChars:          300,
			MinPreviewChars:       50,
			MaxContextTokens:      800,
		},
		Ingest: IngestConfig{
			BatchSize:          10,
			MaxRetries:         5,
			BackoffBase:        5 * time.Second,
			BatchPause:         time.Second,
			MinResolutionChars: 30,
			PageSize:           100,
			MaxPages:           5,
			ChunkTokens:        400,
		},
		Tenant: TenantConfig{
			KeyPath: filepath.Join(dataDir, ".integration_key"),
		},
	}
}

// NewServerConfig server sub-config
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewDatabaseConfig database sub-config
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewVectorConfig vector sub-config
func NewVectorConfig(cfg *Config) *VectorConfig {
	return &cfg.Vector
}

// NewEmbeddingConfig embedding sub-config
func NewEmbeddingConfig(cfg *Config) *EmbeddingConfig {
	return &cfg.Embedding
}

// NewLLMConfig LLM sub-config
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewAssistConfig assist sub-config
func NewAssistConfig(cfg *Config) *AssistConfig {
	return &cfg.Assist
}

// NewIngestConfig ingest sub-config
func NewIngestConfig(cfg *Config) *IngestConfig {
	return &cfg.Ingest
}

// NewTenantConfig tenant sub-config
func NewTenantConfig(cfg *Config) *TenantConfig {
	return &cfg.Tenant
}
