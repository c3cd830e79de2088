package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kisan/config"
	"kisan/database"
	"kisan/pkg/logger"
)

var cfg config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "kisan",
	Short: "Kisan farmer-assistance API server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if _, err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) { logger.Sync() },
	RunE:              runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the embedded catalog into empty tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close(db)
		n, err := database.Seed(db, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d crops, %d pests, %d schemes, %d prices\n", n.Crops, n.Pests, n.Schemes, n.MarketPrices)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.L().Info("starting", zap.Stringer("config", cfg))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	errc := make(chan error, 1)
	go func() {
		logger.L().Info("listening", zap.String("port", cfg.Port))
		errc <- a.echo.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.echo.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.L().Error("exit", zap.Error(err))
		os.Exit(1)
	}
}
