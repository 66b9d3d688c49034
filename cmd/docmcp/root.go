package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"docmcp/internal/config"
	"docmcp/internal/document"
	"docmcp/internal/logging"

	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
	seedDir  string
	verbose  bool

	appConfig *config.Config
	appLogger *logging.AppLogger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docmcp",
	Short: "An MCP server for reading and editing in-memory documents",
	Long: `docmcp keeps a small set of text documents in memory and exposes them to
MCP clients: tools to read and edit, resources to list and fetch, and a prompt
that asks the model to reformat a document as markdown.

Edits live only as long as the process.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		if cmd.Flags().Changed("seed-dir") {
			cfg.SeedDir = seedDir
		}
		if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}

		appConfig = cfg
		appLogger = logging.NewAppLoggerWithLevel(cfg.LogLevel)
		appLogger.Debug("Configuration loaded", "path", configSource(), "transport", cfg.Transport)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default $XDG_CONFIG_HOME/docmcp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&seedDir, "seed-dir", "", "Load documents from this directory instead of the built-in set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func loadConfig() (*config.Config, error) {
	if cfgPath != "" {
		return config.LoadFrom(cfgPath)
	}
	return config.Load()
}

func configSource() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.ConfigPath()
}

// newOperations seeds a store according to cfg.
func newOperations(cfg *config.Config, logger *logging.AppLogger) (*document.Operations, error) {
	seed := document.DefaultSeed()
	if cfg.SeedDir != "" {
		loader, err := document.NewSeedLoader(logger, cfg.SeedGlob, cfg.MaxDocumentBytes)
		if err != nil {
			return nil, err
		}
		seed, err = loader.LoadDir(cfg.SeedDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load seed directory: %w", err)
		}
	}

	var opts []document.StoreOption
	if !cfg.RejectEmptySearch {
		opts = append(opts, document.WithEmptySearchAllowed())
	}

	store := document.NewStore(seed, opts...)
	logger.Info("Document store ready", "store_id", store.ID(), "documents", store.Len())
	return document.NewOperations(store, logger), nil
}
