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

	"omdb_proxy/cache/memory"
	"omdb_proxy/config"
	"omdb_proxy/gateway"
	"omdb_proxy/logger"
	"omdb_proxy/lookup/omdb"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	envFile string
	addr    string

	rootCmd = &cobra.Command{
		Use:           "omdbproxy",
		Short:         "Caching proxy for the OMDb movie API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "file to read environment variables from")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides ADDR")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	logger.SetLevel(cfg.LogLevel)

	store := memory.New()
	upstream := omdb.New(omdb.Config{
		Endpoint: cfg.UpstreamURL,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.UpstreamTimeout,
	})

	gin.SetMode(gin.ReleaseMode)
	if cfg.DebugMode {
		logger.Infof("Debug mode on")
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           gateway.NewRouter(gateway.New(store, upstream), cfg.DebugMode),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server at %s", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error running http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infof("Shutting down, %d cached lookups dropped", store.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("fail to shut down http server: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}
