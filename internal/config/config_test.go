package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "env-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "embedding_store.json", cfg.Store.Path)
	assert.Equal(t, ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, "env-key", cfg.Embedding.APIKey)
	assert.Equal(t, 3, cfg.Search.TopK)
	assert.Equal(t, "pdftotext", cfg.Extract.PDFToText)
	assert.Equal(t, "Exams", cfg.Extract.ExamDir)
	assert.True(t, cfg.GuessEnabled())
	assert.True(t, cfg.CacheEnabled())
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "examcorpus.toml", `
[store]
backend = "SQLite"

[embedding]
provider = "ollama"
model = "nomic-embed-text"
base_url = "http://localhost:11434"
requests_per_second = 2.5
burst = 4

[search]
top_k = 5

[extract]
cache = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "embedding_store.sqlite", cfg.Store.Path)
	assert.Equal(t, ProviderOllama, cfg.Embedding.Provider)
	assert.Equal(t, 2.5, cfg.Embedding.RequestsPerSecond)
	assert.Equal(t, 4, cfg.Embedding.Burst)
	assert.Equal(t, 5, cfg.Search.TopK)
	assert.False(t, cfg.GuessEnabled())
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "examcorpus.yaml", `
store:
  path: data/store.json
embedding:
  api_key: file-key
  guess_answers: false
search:
  top_k: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/store.json", cfg.Store.Path)
	assert.Equal(t, "file-key", cfg.Embedding.APIKey)
	assert.False(t, cfg.GuessEnabled())
	assert.Equal(t, 1, cfg.Search.TopK)
}

func TestLoad_EmptyYAMLIsDefault(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{name: "unknown toml field", file: "c.toml", body: "[store]\nbogus = 1\n", want: "parse config"},
		{name: "unknown yaml field", file: "c.yaml", body: "store:\n  bogus: 1\n", want: "parse config"},
		{name: "multiple yaml documents", file: "c.yaml", body: "search:\n  top_k: 1\n---\nsearch:\n  top_k: 2\n", want: "multiple YAML documents"},
		{name: "bad backend", file: "c.toml", body: "[store]\nbackend = \"redis\"\n", want: "store.backend"},
		{name: "bad provider", file: "c.yaml", body: "embedding:\n  provider: cohere\n", want: "embedding.provider"},
		{name: "guess without openai", file: "c.yaml", body: "embedding:\n  provider: ollama\n  guess_answers: true\n", want: "guess_answers"},
		{name: "negative top k", file: "c.toml", body: "[search]\ntop_k = -1\n", want: "search.top_k"},
		{name: "unsupported extension", file: "c.json", body: "{}", want: "unsupported extension"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.file, tc.body))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config")
}
