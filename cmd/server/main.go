package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/agenthands/kinship/internal/config"
	"github.com/agenthands/kinship/internal/core"
	"github.com/agenthands/kinship/internal/core/community"
	"github.com/agenthands/kinship/internal/logger"
	"github.com/agenthands/kinship/internal/observability"
	"github.com/agenthands/kinship/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kinship",
	Short: "Surname graph service for DNA match exports",
	Long: `kinship builds a surname/person graph from a DNA match export and serves it over HTTP.

Examples:
  kinship serve                              # Start the HTTP server
  kinship seed --file matches.json           # Replace stored matches and rebuild the graph
  kinship seed --file matches.csv --format csv`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the TOML configuration (default $CONFIG_PATH or config/config.toml)")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using defaults")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	store    store.Store
	kinship  *core.Kinship
	metrics  *observability.Collector
	shutdown func(context.Context) error
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.toml"
	}

	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) && configPath == "" {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	detector, err := community.NewDetector(cfg.Clustering)
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	tp, shutdown := observability.NewTracerProvider(cfg.Tracing, log)
	metrics := observability.NewCollector("kinship")

	k := core.NewKinship(s, detector, observability.NewTracer(tp), log)
	k.Metrics = metrics
	k.Options.MinGroupSize = cfg.Graph.MinGroupSize

	return &app{
		cfg:      cfg,
		log:      log,
		store:    s,
		kinship:  k,
		metrics:  metrics,
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		a.log.Warnw("Failed to close store", "error", err)
	}
	if err := a.shutdown(ctx); err != nil {
		a.log.Warnw("Failed to shut down tracing", "error", err)
	}
	_ = a.log.Sync()
}
