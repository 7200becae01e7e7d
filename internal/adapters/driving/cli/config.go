package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and change configuration values stored in the config file.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Sets a configuration value and persists it immediately.
Integer-looking values are stored as integers.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// knownKeys drives the show output; unknown keys are still settable.
var knownKeys = []string{
	file.KeyDataDir,
	file.KeyHTTPAddr,
	file.KeyWatchDir,
	file.KeyChunkTargetWords,
	file.KeyChunkOverlapWords,
	file.KeyQueryTopK,
	file.KeyMaxSentences,
	file.KeyEmbedderProvider,
	file.KeyEmbedderModel,
	file.KeyEmbedderBaseURL,
	file.KeyEmbedderRPS,
	file.KeyEmbedderBurst,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Configuration:")
	cmd.Println()
	for _, key := range knownKeys {
		val, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-30s (default)\n", key)
			continue
		}
		cmd.Printf("  %-30s %v\n", key, val)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]

	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s = %v\n", key, value)
	return nil
}
