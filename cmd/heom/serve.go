package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/openqs/heom/internal/adapters/http"
	"github.com/openqs/heom/internal/adapters/memory"
	redisAdapter "github.com/openqs/heom/internal/adapters/redis"
	"github.com/openqs/heom/internal/logging"
	"github.com/openqs/heom/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the simulation HTTP server",
	Long: `Starts a JSON API that accepts simulation documents, runs them and keeps
the results in a pluggable store. Results live in memory unless a Redis
address is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("redis-ttl")

		logger := logging.New(slog.LevelInfo)

		var store ports.ResultStore
		if redisAddr != "" {
			rs := redisAdapter.New(redisAddr, "", 0, redisAdapter.WithTTL(ttl))
			defer rs.Close()
			store = rs
		} else {
			store = memory.NewStore()
		}

		handler := httpAdapter.NewHandler(store, httpAdapter.WithLogger(logger))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting server", "addr", srv.Addr, "store", storeKind(redisAddr))
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("closing server", "error", err)
				}
			}
			logger.Info("server stopped")
		}
	},
}

func storeKind(redisAddr string) string {
	if redisAddr != "" {
		return "redis"
	}
	return "memory"
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the result store (host:port)")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration for stored results (0 keeps them forever)")
}
