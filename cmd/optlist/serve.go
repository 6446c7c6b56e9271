package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dwilhelm/optlist"
	"github.com/dwilhelm/optlist/internal/cli"
	fileAdapter "github.com/dwilhelm/optlist/pkg/adapters/file"
	httpAdapter "github.com/dwilhelm/optlist/pkg/adapters/http"
	redisAdapter "github.com/dwilhelm/optlist/pkg/adapters/redis"
	"github.com/dwilhelm/optlist/pkg/observability"
	"github.com/dwilhelm/optlist/pkg/persistence/middleware"
	"github.com/dwilhelm/optlist/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the panel HTTP server",
	Long: `Starts the panel in server mode, exposing a JSON API plus an SSE event
stream over HTTP. Drafts are stored on disk by default, or in Redis
when --redis is set. Set OPTLIST_ENCRYPT_KEY (32 bytes) to encrypt
drafts at rest.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		cfg := cliConfig(cmd)

		drafts, err := buildDraftStore(cmd)
		if err != nil {
			fmt.Printf("Error building draft store: %v\n", err)
			os.Exit(1)
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		logger := cli.NewLogger(cfg.LogLevel)
		panel, _, err := cli.BuildPanel(cmd.Context(), cfg,
			optlist.WithLifecycleHooks(metrics.Hooks()),
			optlist.WithDraftStore(drafts),
		)
		if err != nil {
			fmt.Printf("Error building panel: %v\n", err)
			os.Exit(1)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.Handle("/", httpAdapter.NewHandler(panel, httpAdapter.WithLogger(logger)))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Optlist Server on %s\n", srv.Addr)
			fmt.Printf("Panel manifest: %s\n", cfg.ManifestPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Optlist Server stopped gracefully")
		}
	},
}

// buildDraftStore assembles the draft backend from flags: directory or
// Redis, optionally wrapped in encryption at rest.
func buildDraftStore(cmd *cobra.Command) (ports.DraftStore, error) {
	redisAddr, _ := cmd.Flags().GetString("redis")
	redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")
	draftsDir, _ := cmd.Flags().GetString("drafts-dir")

	var store ports.DraftStore
	var err error
	if redisAddr != "" {
		var opts []redisAdapter.Option
		if redisTTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(redisTTL))
		}
		store = redisAdapter.New(redisAddr, os.Getenv("OPTLIST_REDIS_PASSWORD"), 0, opts...)
	} else {
		store, err = fileAdapter.NewDraftStore(draftsDir)
		if err != nil {
			return nil, err
		}
	}

	if key := os.Getenv("OPTLIST_ENCRYPT_KEY"); key != "" {
		if len(key) != 32 {
			return nil, fmt.Errorf("OPTLIST_ENCRYPT_KEY must be exactly 32 bytes, got %d", len(key))
		}
		encrypt := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: []byte(key),
		})
		store = encrypt(store)
	}

	return store, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("drafts-dir", ".optlist/drafts", "Directory for draft files")
	serveCmd.Flags().String("redis", "", "Redis address for draft storage (host:port)")
	serveCmd.Flags().Duration("redis-ttl", 0, "Draft expiration in Redis (0 keeps drafts forever)")
}
