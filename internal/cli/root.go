// Package cli implements the examcorpus command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adripedrejon/examcorpus/corpus"
	"github.com/adripedrejon/examcorpus/engine"
	"github.com/adripedrejon/examcorpus/extract"
	"github.com/adripedrejon/examcorpus/internal/config"
	"github.com/adripedrejon/examcorpus/internal/logger"
	"github.com/adripedrejon/examcorpus/internal/pdftext"
	"github.com/adripedrejon/examcorpus/provider"
	"github.com/adripedrejon/examcorpus/store"
)

var version = "dev"

var (
	configPath string
	verbose    bool
	cfg        config.Config
)

// pageReader returns the pages of a document as trimmed lines.
type pageReader interface {
	Pages(ctx context.Context, path string) ([][]string, error)
}

// Service constructors, replaced in tests.
var (
	newIndex      = openIndex
	newPageReader = func(c config.Config) pageReader { return pdftext.New(c.Extract.PDFToText) }
)

var rootCmd = &cobra.Command{
	Use:   "examcorpus",
	Short: "Extract exam questions and search them by meaning",
	Long: `examcorpus turns exam documents into structured multiple-choice questions,
stores their embeddings and finds related questions by semantic similarity.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("config: store=%s:%s provider=%s", cfg.Store.Backend, cfg.Store.Path, cfg.Embedding.Provider)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (.toml or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress to stderr")
}

// Execute runs the root command. Command output goes to stdout; errors and
// verbose logs go to stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) { version = v }

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openIndex builds the store, embedder and guesser described by c. The
// returned closer releases the store.
func openIndex(ctx context.Context, c config.Config) (*corpus.Index, io.Closer, error) {
	var (
		s      store.Store
		closer io.Closer = nopCloser{}
	)
	switch c.Store.Backend {
	case config.BackendSQLite:
		db, err := engine.Open(c.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		sq, err := store.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		s, closer = sq, db
	default:
		s = store.NewFileStore(c.Store.Path)
	}

	var (
		embedder provider.Embedder
		guesser  provider.Guesser
	)
	switch c.Embedding.Provider {
	case config.ProviderOllama:
		embedder = provider.NewOllama(provider.OllamaConfig{BaseURL: c.Embedding.BaseURL, Model: c.Embedding.Model})
	default:
		oa := provider.NewOpenAI(provider.OpenAIConfig{
			APIKey:         c.Embedding.APIKey,
			BaseURL:        c.Embedding.BaseURL,
			EmbeddingModel: c.Embedding.Model,
			ChatModel:      c.Embedding.ChatModel,
		})
		embedder, guesser = oa, oa
	}
	if c.Embedding.RequestsPerSecond > 0 {
		embedder = provider.NewRateLimited(embedder, c.Embedding.RequestsPerSecond, c.Embedding.Burst)
	}

	ix, err := corpus.NewIndex(s, embedder.Embed)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	if guesser != nil && c.GuessEnabled() {
		ix.Guess = guesser.Guess
	}
	ix.TopK = c.Search.TopK
	return ix, closer, nil
}

// readRecords extracts the questions of path. JSON files hold pages of
// spans; anything else goes through the page reader and, when enabled, the
// side-file cache.
func readRecords(ctx context.Context, path, topic string) ([]extract.Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		pages, err := extract.DecodePages(data)
		if err != nil {
			return nil, err
		}
		return extract.Extract(pages, topic), nil
	}

	reader := newPageReader(cfg)
	read := func() ([][]string, error) { return reader.Pages(ctx, path) }
	if cfg.CacheEnabled() {
		return extract.Cached(path, topic, read)
	}
	pages, err := read()
	if err != nil {
		return nil, err
	}
	return extract.Extract(pages, topic), nil
}
