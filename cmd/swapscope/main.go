package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swapScope/internal/config"
	"swapScope/internal/ekubo"
	"swapScope/internal/quote"
	"swapScope/internal/token"
)

func main() {
	root := &cobra.Command{
		Use:          "swapscope",
		Short:        "Ekubo pool quotes and swap planning on Starknet",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	root.AddCommand(
		newPoolsCmd(),
		newTokensCmd(),
		newQuoteCmd(),
		newAmountCmd(),
		newSwapCmd(),
		newFiatCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the components shared by the subcommands.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *token.Registry
	api      *ekubo.Client
	resolver *token.Resolver
	quoter   *quote.Quoter
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("api-base", ekubo.DefaultBaseURL, "pools API base URL")
	cmd.Flags().Float64("fallback-price", quote.DefaultFallbackPrice, "degraded price used when pool price data is unusable, 0 disables")
	cmd.Flags().StringSlice("token", nil, "extra token entries address=SYMBOL:decimals (comma-separated)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	registry := token.DefaultRegistry()
	for _, entry := range cfg.Tokens {
		meta, err := token.ParseEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("token entry %q: %w", entry, err)
		}
		registry.Add(meta)
	}

	api := ekubo.NewClient(ekubo.Config{
		BaseURL:        cfg.APIBase,
		CacheTTL:       cfg.CacheTTL,
		RequestTimeout: cfg.RequestTimeout,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoff:   cfg.RetryBackoff,
	}, logger)

	resolver := token.NewResolver(registry, token.NewMetaCache(), api, logger)
	engine := quote.NewEngine(cfg.FallbackPrice, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		api:      api,
		resolver: resolver,
		quoter:   quote.NewQuoter(api, resolver, engine, logger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
