package file

import (
	"os"
	"path/filepath"

	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// Configuration keys. Nested TOML tables flatten to these dot-notation
// names, so `[chunking]\ntarget_words = 400` and
// `chunking.target_words = 400` are equivalent.
const (
	KeyDataDir           = "data.dir"
	KeyHTTPAddr          = "http.addr"
	KeyWatchDir          = "watch.dir"
	KeyChunkTargetWords  = "chunking.target_words"
	KeyChunkOverlapWords = "chunking.overlap_words"
	KeyQueryTopK         = "query.top_k"
	KeyMaxSentences      = "synthesis.max_sentences"
	KeyEmbedderProvider  = "embedder.provider"
	KeyEmbedderModel     = "embedder.model"
	KeyEmbedderBaseURL   = "embedder.base_url"
	KeyEmbedderRPS       = "embedder.requests_per_second"
	KeyEmbedderBurst     = "embedder.burst_size"
)

// Settings is the configuration snapshot the application wires from.
// Zero values mean "use the component's default"; only DataDir and
// EmbedderProvider are resolved here because the composition root
// needs concrete values for them.
type Settings struct {
	DataDir  string
	HTTPAddr string
	WatchDir string

	ChunkTargetWords  int
	ChunkOverlapWords int
	QueryTopK         int
	MaxSentences      int

	EmbedderProvider string
	EmbedderModel    string
	EmbedderBaseURL  string
	EmbedderRPS      int
	EmbedderBurst    int
}

// LoadSettings reads the known keys from the store, applying defaults
// for the data directory and embedding provider.
func LoadSettings(store driven.ConfigStore) (Settings, error) {
	s := Settings{
		DataDir:  store.GetString(KeyDataDir),
		HTTPAddr: store.GetString(KeyHTTPAddr),
		WatchDir: store.GetString(KeyWatchDir),

		ChunkTargetWords:  store.GetInt(KeyChunkTargetWords),
		ChunkOverlapWords: store.GetInt(KeyChunkOverlapWords),
		QueryTopK:         store.GetInt(KeyQueryTopK),
		MaxSentences:      store.GetInt(KeyMaxSentences),

		EmbedderProvider: store.GetString(KeyEmbedderProvider),
		EmbedderModel:    store.GetString(KeyEmbedderModel),
		EmbedderBaseURL:  store.GetString(KeyEmbedderBaseURL),
		EmbedderRPS:      store.GetInt(KeyEmbedderRPS),
		EmbedderBurst:    store.GetInt(KeyEmbedderBurst),
	}

	if s.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, err
		}
		s.DataDir = filepath.Join(home, ".passage", "data")
	}
	if s.EmbedderProvider == "" {
		s.EmbedderProvider = "openai"
	}

	return s, nil
}
