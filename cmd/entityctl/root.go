package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/vanshika/filmgraph/internal/app"
	"github.com/vanshika/filmgraph/internal/config"
	"github.com/vanshika/filmgraph/internal/logging"
)

// Global flags
var (
	configFile string
	policyFlag string
	outputJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "entityctl",
	Short: "Query persons and movies stored in the graph",
	Long: `entityctl runs the catalog queries against the configured graph
database and prints the decoded entities.

Connection settings come from CONFIG_FILE and the GRAPHDB_* environment
variables, or from the file given with --config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&policyFlag, "policy", "", "decode policy override (strict or lenient)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print entities as JSON")
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// openCatalog is replaced in tests.
var openCatalog = func(ctx context.Context) (*app.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	// stdout carries command output
	logger := logging.NewWithSink(cfg.Logging, zapcore.Lock(os.Stderr))
	return app.Open(ctx, cfg, logger)
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, err
	}
	if policyFlag != "" {
		cfg.Graph.DecodePolicy = strings.ToLower(policyFlag)
	}
	return cfg, nil
}
