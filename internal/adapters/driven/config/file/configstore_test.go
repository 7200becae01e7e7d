package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("test_key", "test_value")
	require.NoError(t, err)

	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("string_key", "hello world"))

	assert.Equal(t, "hello world", store.GetString("string_key"))
	assert.Equal(t, "", store.GetString("missing_key"))

	require.NoError(t, store.Set("int_key", 42))
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("int_key", 42))

	assert.Equal(t, 42, store.GetInt("int_key"))
	assert.Equal(t, 0, store.GetInt("missing_key"))

	require.NoError(t, store.Set("string_key", "not a number"))
	assert.Equal(t, 0, store.GetInt("string_key"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("bool_key", true))

	assert.True(t, store.GetBool("bool_key"))
	assert.False(t, store.GetBool("missing_key"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("query.top_k", 7))
	require.NoError(t, store1.Set("data.dir", "/var/lib/passage"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 7, store2.GetInt("query.top_k"))
	assert.Equal(t, "/var/lib/passage", store2.GetString("data.dir"))
}

func TestConfigStore_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	toml := `
[chunking]
target_words = 400
overlap_words = 40

[embedder]
provider = "ollama"
model = "nomic-embed-text"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(toml), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 400, store.GetInt("chunking.target_words"))
	assert.Equal(t, 40, store.GetInt("chunking.overlap_words"))
	assert.Equal(t, "ollama", store.GetString("embedder.provider"))
	assert.Equal(t, "nomic-embed-text", store.GetString("embedder.model"))
}

func TestConfigStore_CorruptFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	require.Error(t, err)
}

func TestLoadSettings_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	settings, err := LoadSettings(store)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".passage", "data"), settings.DataDir)
	assert.Equal(t, "openai", settings.EmbedderProvider)
	assert.Zero(t, settings.ChunkTargetWords)
	assert.Zero(t, settings.QueryTopK)
	assert.Empty(t, settings.HTTPAddr)
}

func TestLoadSettings_ReadsConfiguredValues(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyDataDir, "/data/passage"))
	require.NoError(t, store.Set(KeyHTTPAddr, "0.0.0.0:9000"))
	require.NoError(t, store.Set(KeyWatchDir, "/drop"))
	require.NoError(t, store.Set(KeyChunkTargetWords, 400))
	require.NoError(t, store.Set(KeyChunkOverlapWords, 40))
	require.NoError(t, store.Set(KeyQueryTopK, 10))
	require.NoError(t, store.Set(KeyMaxSentences, 5))
	require.NoError(t, store.Set(KeyEmbedderProvider, "ollama"))

	settings, err := LoadSettings(store)
	require.NoError(t, err)

	assert.Equal(t, "/data/passage", settings.DataDir)
	assert.Equal(t, "0.0.0.0:9000", settings.HTTPAddr)
	assert.Equal(t, "/drop", settings.WatchDir)
	assert.Equal(t, 400, settings.ChunkTargetWords)
	assert.Equal(t, 40, settings.ChunkOverlapWords)
	assert.Equal(t, 10, settings.QueryTopK)
	assert.Equal(t, 5, settings.MaxSentences)
	assert.Equal(t, "ollama", settings.EmbedderProvider)
}
