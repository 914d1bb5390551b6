package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "sqlite"

[sqlite]
path = "/tmp/kinship.db"

[clustering]
algorithm = "lpa"
seed = 42

[tracing]
enabled = true
marks = ["graph.clusterize"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "/tmp/kinship.db", cfg.SQLite.Path)
	assert.Equal(t, "lpa", cfg.Clustering.Algorithm)
	assert.Equal(t, uint64(42), cfg.Clustering.Seed)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, []string{"graph.clusterize"}, cfg.Tracing.Marks)

	// untouched sections keep their defaults
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 20, cfg.Graph.MinGroupSize)
	assert.Equal(t, 1.0, cfg.Clustering.Resolution)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[store\nbackend ="))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "memgraph")
	t.Setenv("MEMGRAPH_URI", "bolt://graph:7687")
	t.Setenv("MEMGRAPH_PASSWORD", "secret")
	t.Setenv("CLUSTER_SEED", "7")
	t.Setenv("LOG_JSON", "true")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memgraph", cfg.Store.Backend)
	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
	assert.Equal(t, "secret", cfg.Memgraph.Password)
	assert.Equal(t, uint64(7), cfg.Clustering.Seed)
	assert.True(t, cfg.Log.JSON)
}

func TestApplyEnv_InvalidSeed(t *testing.T) {
	t.Setenv("CLUSTER_SEED", "not-a-number")

	err := Default().ApplyEnv()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CLUSTER_SEED")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.Store.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Clustering.Algorithm = "kmeans"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Store.Backend = "memgraph"
	cfg.Memgraph.URI = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Store.Backend = "sqlite"
	cfg.SQLite.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Clustering.Resolution = 0
	assert.Error(t, cfg.Validate())
}
