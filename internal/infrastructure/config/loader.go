package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefix of every environment override, e.g. SB_SERVER_HTTP_PORT
	EnvPrefix = "SB"
	// EnvConfigFile explicit config file path
	EnvConfigFile = "SB_CONFIG_FILE"
)

// legacyEnv env names kept for deployments that predate the SB_ prefix
var legacyEnv = map[string][]string{
	"server.admin_api_key":          {"ADMIN_API_KEY"},
	"embedding.api_key":             {"OPENAI_API_KEY"},
	"llm.api_key":                   {"OPENAI_API_KEY"},
	"vector.postgres_dsn":           {"DATABASE_URL"},
	"tenant.gorgias_base_url":       {"GORGIAS_BASE_URL"},
	"tenant.gorgias_username":       {"GORGIAS_USERNAME"},
	"tenant.gorgias_api_key":        {"GORGIAS_API_KEY"},
	"tenant.bigcommerce_store_hash": {"BIGCOMMERCE_STORE_HASH"},
	"tenant.bigcommerce_token":      {"BIGCOMMERCE_ACCESS_TOKEN"},
}

// ValidationError configuration validation failure with per-field messages
type ValidationError struct {
	Fields map[string]string
}

// Error implements error
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

var validate = validator.New()

// Load reads .env, an optional YAML file and SB_* env vars on top of the defaults
// An empty path falls back to SB_CONFIG_FILE, then ./supportbrain.yaml if present.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, NewConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		args := append([]string{key, EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("supportbrain")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags on the whole config
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make(map[string]string, len(validationErrors))
			for _, fe := range validationErrors {
				fields[fe.Namespace()] = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

// setDefaults registers every key so env overrides reach Unmarshal
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.http_port", d.Server.HTTPPort)
	v.SetDefault("server.admin_api_key", d.Server.AdminAPIKey)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("vector.backend", d.Vector.Backend)
	v.SetDefault("vector.qdrant_host", d.Vector.QdrantHost)
	v.SetDefault("vector.qdrant_port", d.Vector.QdrantPort)
	v.SetDefault("vector.qdrant_api_key", d.Vector.QdrantAPIKey)
	v.SetDefault("vector.qdrant_tls", d.Vector.QdrantTLS)
	v.SetDefault("vector.collection", d.Vector.Collection)
	v.SetDefault("vector.postgres_dsn", d.Vector.PostgresDSN)
	v.SetDefault("vector.dimension", d.Vector.Dimension)

	v.SetDefault("embedding.base_url", d.Embedding.BaseURL)
	v.SetDefault("embedding.api_key", d.Embedding.APIKey)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.timeout", d.Embedding.Timeout)

	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("assist.total_budget", d.Assist.TotalBudget)
	v.SetDefault("assist.connector_fetch_timeout", d.Assist.ConnectorFetchTimeout)
	v.SetDefault("assist.min_search_budget", d.Assist.MinSearchBudget)
	v.SetDefault("assist.synthesis_cutoff", d.Assist.SynthesisCutoff)
	v.SetDefault("assist.synthesis_top_k", d.Assist.SynthesisTopK)
	v.SetDefault("assist.widget_top_k", d.Assist.WidgetTopK)
	v.SetDefault("assist.retain_top_n", d.Assist.RetainTopN)
	v.SetDefault("assist.recency_window", d.Assist.RecencyWindow)
	v.SetDefault("assist.recency_boost", d.Assist.RecencyBoost)
	v.SetDefault("assist.confidence_gate", d.Assist.ConfidenceGate)
	v.SetDefault("assist.high_confidence", d.Assist.HighConfidence)
	v.SetDefault("assist.max_references", d.Assist.MaxReferences)
	v.SetDefault("assist.preview_chars", d.Assist.PreviewChars)
	v.SetDefault("assist.min_preview_chars", d.Assist.MinPreviewChars)
	v.SetDefault("assist.max_context_tokens", d.Assist.MaxContextTokens)

	v.SetDefault("ingest.batch_size", d.Ingest.BatchSize)
	v.SetDefault("ingest.max_retries", d.Ingest.MaxRetries)
	v.SetDefault("ingest.backoff_base", d.Ingest.BackoffBase)
	v.SetDefault("ingest.batch_pause", d.Ingest.BatchPause)
	v.SetDefault("ingest.min_resolution_chars", d.Ingest.MinResolutionChars)
	v.SetDefault("ingest.page_size", d.Ingest.PageSize)
	v.SetDefault("ingest.max_pages", d.Ingest.MaxPages)
	v.SetDefault("ingest.chunk_tokens", d.Ingest.ChunkTokens)

	v.SetDefault("tenant.seed_file", d.Tenant.SeedFile)
	v.SetDefault("tenant.key_path", d.Tenant.KeyPath)
	v.SetDefault("tenant.gorgias_base_url", d.Tenant.GorgiasBaseURL)
	v.SetDefault("tenant.gorgias_username", d.Tenant.GorgiasUsername)
	v.SetDefault("tenant.gorgias_api_key", d.Tenant.GorgiasAPIKey)
	v.SetDefault("tenant.bigcommerce_store_hash", d.Tenant.BigCommerceStoreHash)
	v.SetDefault("tenant.bigcommerce_token", d.Tenant.BigCommerceToken)
}
