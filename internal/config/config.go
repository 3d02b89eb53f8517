// Package config loads examcorpus settings from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Embedding providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// APIKeyEnv is read when embedding.api_key is not set.
const APIKeyEnv = "OPENAI_API_KEY"

// Config is the full configuration.
type Config struct {
	Store     StoreConfig     `toml:"store" yaml:"store"`
	Embedding EmbeddingConfig `toml:"embedding" yaml:"embedding"`
	Search    SearchConfig    `toml:"search" yaml:"search"`
	Extract   ExtractConfig   `toml:"extract" yaml:"extract"`
}

// StoreConfig selects where entries are persisted.
type StoreConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	Path    string `toml:"path" yaml:"path"`
}

// EmbeddingConfig selects the embedding provider and the answer guesser.
type EmbeddingConfig struct {
	Provider          string  `toml:"provider" yaml:"provider"`
	Model             string  `toml:"model" yaml:"model"`
	ChatModel         string  `toml:"chat_model" yaml:"chat_model"`
	BaseURL           string  `toml:"base_url" yaml:"base_url"`
	APIKey            string  `toml:"api_key" yaml:"api_key"`
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `toml:"burst" yaml:"burst"`
	// GuessAnswers asks the chat model for the correct option on ingest.
	GuessAnswers *bool `toml:"guess_answers" yaml:"guess_answers"`
}

// SearchConfig tunes search results.
type SearchConfig struct {
	TopK int `toml:"top_k" yaml:"top_k"`
}

// ExtractConfig controls document text extraction.
type ExtractConfig struct {
	PDFToText string `toml:"pdftotext" yaml:"pdftotext"`
	ExamDir   string `toml:"exam_dir" yaml:"exam_dir"`
	Cache     *bool  `toml:"cache" yaml:"cache"`
}

// Default returns a normalised configuration with no file applied.
func Default() Config {
	var cfg Config
	cfg.Normalize()
	return cfg
}

// Load reads path, choosing the decoder by extension. An empty path yields
// Default. The result is normalised and validated.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cfg, err = parseTOML(data)
	case ".yaml", ".yml":
		cfg, err = parseYAML(data)
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return Config{}, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseTOML(data []byte) (Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func parseYAML(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Normalize fills unset fields with defaults.
func (c *Config) Normalize() {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	if c.Store.Path == "" {
		if c.Store.Backend == BackendSQLite {
			c.Store.Path = "embedding_store.sqlite"
		} else {
			c.Store.Path = "embedding_store.json"
		}
	}

	c.Embedding.Provider = strings.ToLower(strings.TrimSpace(c.Embedding.Provider))
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOpenAI
	}
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv(APIKeyEnv)
	}
	if c.Embedding.Burst == 0 {
		c.Embedding.Burst = 1
	}
	if c.Embedding.GuessAnswers == nil {
		c.Embedding.GuessAnswers = boolPtr(c.Embedding.Provider == ProviderOpenAI)
	}

	if c.Search.TopK == 0 {
		c.Search.TopK = 3
	}

	if c.Extract.PDFToText == "" {
		c.Extract.PDFToText = "pdftotext"
	}
	if c.Extract.ExamDir == "" {
		c.Extract.ExamDir = "Exams"
	}
	if c.Extract.Cache == nil {
		c.Extract.Cache = boolPtr(true)
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("config: store.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Store.Backend)
	}
	switch c.Embedding.Provider {
	case ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("config: embedding.provider must be %q or %q, got %q", ProviderOpenAI, ProviderOllama, c.Embedding.Provider)
	}
	if c.Embedding.GuessAnswers != nil && *c.Embedding.GuessAnswers && c.Embedding.Provider != ProviderOpenAI {
		return fmt.Errorf("config: embedding.guess_answers requires the %q provider", ProviderOpenAI)
	}
	if c.Embedding.RequestsPerSecond < 0 {
		return fmt.Errorf("config: embedding.requests_per_second must be >= 0")
	}
	if c.Embedding.Burst < 0 {
		return fmt.Errorf("config: embedding.burst must be >= 0")
	}
	if c.Search.TopK < 0 {
		return fmt.Errorf("config: search.top_k must be >= 0")
	}
	return nil
}

// GuessEnabled reports whether ingest should ask for answers.
func (c Config) GuessEnabled() bool {
	return c.Embedding.GuessAnswers != nil && *c.Embedding.GuessAnswers
}

// CacheEnabled reports whether extraction results are cached next to the
// source document.
func (c Config) CacheEnabled() bool {
	return c.Extract.Cache == nil || *c.Extract.Cache
}

func boolPtr(b bool) *bool { return &b }
