package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the loader from an empty dir so no stray .env or yaml is read
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvConfigFile, "")
	ResetDataDir()
	return dir
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 4500*time.Millisecond, cfg.Assist.TotalBudget)
	assert.Equal(t, 1500*time.Millisecond, cfg.Assist.ConnectorFetchTimeout)
	assert.Equal(t, time.Second, cfg.Assist.MinSearchBudget)
	assert.Equal(t, 3*time.Second, cfg.Assist.SynthesisCutoff)
	assert.Equal(t, 10, cfg.Assist.SynthesisTopK)
	assert.Equal(t, 5, cfg.Assist.WidgetTopK)
	assert.Equal(t, 1.10, cfg.Assist.RecencyBoost)
	assert.Equal(t, 0.35, cfg.Assist.ConfidenceGate)
	assert.Equal(t, 10, cfg.Ingest.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.Ingest.BackoffBase)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SB_SERVER_HTTP_PORT", ":9000")
	t.Setenv("SB_ASSIST_TOTAL_BUDGET", "4s")
	t.Setenv("SB_VECTOR_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.HTTPPort)
	assert.Equal(t, 4*time.Second, cfg.Assist.TotalBudget)
	assert.Equal(t, "memory", cfg.Vector.Backend)
}

func TestLoad_LegacyEnv(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-legacy")
	t.Setenv("ADMIN_API_KEY", "admin-secret")
	t.Setenv("GORGIAS_USERNAME", "ops@acme.test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-legacy", cfg.Embedding.APIKey)
	assert.Equal(t, "sk-legacy", cfg.LLM.APIKey)
	assert.Equal(t, "admin-secret", cfg.Server.AdminAPIKey)
	assert.Equal(t, "ops@acme.test", cfg.Tenant.GorgiasUsername)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
server:
  http_port: ":7000"
vector:
  backend: pgvector
  postgres_dsn: postgres://localhost/kb?sslmode=disable
ingest:
  min_resolution_chars: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.HTTPPort)
	assert.Equal(t, "pgvector", cfg.Vector.Backend)
	assert.Equal(t, 60, cfg.Ingest.MinResolutionChars)
	assert.Equal(t, 10, cfg.Ingest.BatchSize, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("SB_VECTOR_BACKEND", "pinecone")

	_, err := Load("")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Config.Vector.Backend")
}

func TestValidate_PgvectorRequiresDSN(t *testing.T) {
	cfg := NewConfig()
	cfg.Vector.Backend = "pgvector"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PostgresDSN")
}

func TestValidate_CutoffBeforeBudget(t *testing.T) {
	cfg := NewConfig()
	cfg.Assist.SynthesisCutoff = 5 * time.Second

	assert.Error(t, Validate(cfg))
}
