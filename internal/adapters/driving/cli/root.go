// Package cli implements the cobra command tree. Commands talk to the
// core through the driving ports; the composition root injects the
// service implementations before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage/internal/core/ports/driven"
	"github.com/custodia-labs/passage/internal/core/ports/driving"
	"github.com/custodia-labs/passage/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Injected services. Nil until SetServices is called; commands guard
// against running unconfigured.
var (
	ingestService   driving.IngestService
	queryService    driving.QueryService
	documentService driving.DocumentService
	configStore     driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "passage",
	Short: "Local document ingestion and semantic retrieval",
	Long: `Passage ingests documents, chunks and embeds them, and answers
natural-language queries with the most relevant passages plus a short
extractive summary. All state lives on the local filesystem.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services bundles everything the commands need.
type Services struct {
	Ingest    driving.IngestService
	Query     driving.QueryService
	Documents driving.DocumentService
	Config    driven.ConfigStore
}

// SetServices injects the service implementations the commands run against.
func SetServices(s Services) {
	ingestService = s.Ingest
	queryService = s.Query
	documentService = s.Documents
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}
