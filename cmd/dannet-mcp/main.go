package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordnet-dk/dannet-mcp/cmd/dannet-mcp/commands"
	"github.com/wordnet-dk/dannet-mcp/config"
	"github.com/wordnet-dk/dannet-mcp/dannet"
	"github.com/wordnet-dk/dannet-mcp/logger"
	"github.com/wordnet-dk/dannet-mcp/mcpserver"
)

var (
	flagConfig   string
	flagBaseURL  string
	flagLocal    bool
	flagJSONLogs bool
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "dannet-mcp",
	Short: "MCP server for DanNet, the Danish WordNet",
	Long: `dannet-mcp exposes DanNet (wordnet.dk) to AI agents over the
Model Context Protocol: synset search, entity lookups, synonyms,
autocomplete and the RDF schemas behind the data.

The server speaks MCP over stdin/stdout. By default it probes for a
local DanNet instance on localhost:3456 and falls back to the public
server at wordnet.dk.

Examples:
  dannet-mcp                  # auto-detect server, serve stdio
  dannet-mcp --local          # force the local development server
  dannet-mcp --base-url URL   # use a custom DanNet deployment`,
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "DanNet server base URL (overrides auto-detection)")
	rootCmd.Flags().BoolVar(&flagLocal, "local", false, "Use the local DanNet server on localhost:3456")
	rootCmd.Flags().BoolVar(&flagJSONLogs, "json-logs", false, "Write logs as JSON instead of console format")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(commands.VersionCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFromFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if flagBaseURL != "" {
		cfg.Server.BaseURL = flagBaseURL
	}
	if flagLocal {
		cfg.Server.Local = true
	}
	if flagJSONLogs {
		cfg.Log.JSON = true
	}
	if flagDebug {
		cfg.Log.Debug = true
	}

	// All log output goes to stderr; stdout carries the MCP protocol.
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.Logger

	baseURL := cfg.ResolveBaseURL(log)

	opts := dannet.Options{
		Timeout:           time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		MaxRetries:        cfg.Server.MaxRetries,
		RequestsPerMinute: cfg.Server.RequestsPerMinute,
		Logger:            log,
	}
	client := dannet.NewClient(baseURL, opts)

	return mcpserver.New(client, opts, log).ServeStdio()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
