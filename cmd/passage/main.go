// Command passage is the entrypoint. It wires the adapters to the core
// services, verifies store/index consistency, and hands off to the
// cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/passage/internal/adapters/driven/config/file"
	"github.com/custodia-labs/passage/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/passage/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/passage/internal/adapters/driven/embedding/ratelimit"
	"github.com/custodia-labs/passage/internal/adapters/driven/index/brute"
	"github.com/custodia-labs/passage/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/passage/internal/adapters/driving/cli"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
	"github.com/custodia-labs/passage/internal/core/services"
	"github.com/custodia-labs/passage/internal/normalisers"
	"github.com/custodia-labs/passage/internal/normalisers/csv"
	"github.com/custodia-labs/passage/internal/normalisers/markdown"
	"github.com/custodia-labs/passage/internal/normalisers/pdf"
	"github.com/custodia-labs/passage/internal/normalisers/plaintext"
	"github.com/custodia-labs/passage/internal/postprocessors"
	"github.com/custodia-labs/passage/internal/postprocessors/chunker"
	"github.com/custodia-labs/passage/internal/synthesis"
)

func main() {
	// Best effort; API keys may come from the environment directly.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	settings, err := file.LoadSettings(configStore)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if err := os.MkdirAll(settings.DataDir, 0700); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}
	defer store.Close()

	index, err := brute.New(settings.DataDir)
	if err != nil {
		return fmt.Errorf("loading vector index: %w", err)
	}

	// Refuse to serve an index that disagrees with the store.
	if err := services.CheckConsistency(context.Background(), store, index); err != nil {
		return err
	}

	embedder, err := buildEmbedder(settings)
	if err != nil {
		return err
	}
	limited := ratelimit.Wrap(embedder, ratelimit.Config{
		RequestsPerSecond: float64(settings.EmbedderRPS),
		BurstSize:         settings.EmbedderBurst,
	})

	registry := normalisers.NewRegistry(
		plaintext.New(),
		markdown.New(),
		csv.New(),
		pdf.New(),
	)

	var chunkOpts []chunker.Option
	if settings.ChunkTargetWords > 0 {
		chunkOpts = append(chunkOpts, chunker.WithTargetWords(settings.ChunkTargetWords))
	}
	if settings.ChunkOverlapWords > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlapWords(settings.ChunkOverlapWords))
	}
	pipeline := postprocessors.NewPipeline(chunker.New(chunkOpts...))

	var synthOpts []synthesis.Option
	if settings.MaxSentences > 0 {
		synthOpts = append(synthOpts, synthesis.WithMaxSentences(settings.MaxSentences))
	}
	synthesiser := synthesis.New(synthOpts...)

	var queryOpts []services.QueryOption
	if settings.QueryTopK > 0 {
		queryOpts = append(queryOpts, services.WithDefaultTopK(settings.QueryTopK))
	}

	cli.SetServices(cli.Services{
		Ingest:    services.NewIngestService(registry, pipeline, store, index, limited),
		Query:     services.NewQueryService(store, index, limited, synthesiser, queryOpts...),
		Documents: services.NewDocumentService(store, index),
		Config:    configStore,
	})

	return cli.Execute()
}

// buildEmbedder constructs the configured embedding provider.
func buildEmbedder(settings file.Settings) (driven.EmbeddingService, error) {
	switch settings.EmbedderProvider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: settings.EmbedderBaseURL,
			Model:   settings.EmbedderModel,
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: settings.EmbedderBaseURL,
			Model:   settings.EmbedderModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", settings.EmbedderProvider)
	}
}
