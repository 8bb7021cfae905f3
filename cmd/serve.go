package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/mohamed66886/erp90-search/pkg/api"
	"github.com/mohamed66886/erp90-search/pkg/config"
	"github.com/mohamed66886/erp90-search/pkg/core"
	"github.com/mohamed66886/erp90-search/pkg/realtime"
	"github.com/mohamed66886/erp90-search/pkg/search"
)

const maintenanceInterval = time.Hour

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the search API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Address to listen on (overrides config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"), c.String("listen"))
		},
	}
}

func serve(ctx context.Context, configPath, listenAddr string) error {
	cfg, store, service, cleanup, err := openServices(configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	if listenAddr == "" {
		listenAddr = cfg.ListenAddr
	}

	registry := core.GetGlobalRegistry()
	hub := realtime.NewFirehoseHub(32)

	apiServer := api.NewServer(registry, store, service)
	apiServer.SetFirehoseHub(hub)

	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: api.CorsMiddleware(mux),
	}

	go func() {
		log.Printf("Starting search API server on http://%s", listenAddr)
		log.Printf("Available endpoints:")
		log.Printf("  GET  /api/search - Search across all entity kinds")
		log.Printf("  GET  /api/search/quick - Lightweight search-as-you-type")
		log.Printf("  GET  /api/search/barcode - Exact barcode lookup")
		log.Printf("  GET  /api/entities - List entity kinds with document counts")
		log.Printf("  GET  /api/stats - Storage and cache statistics")
		log.Printf("  POST /api/import/documents - Import documents into a collection")
		log.Printf("  POST /api/cache/clear - Drop all cached result lists")
		log.Printf("  GET  /api/firehose/ws - WebSocket stream of document ingest events")
		log.Printf("  GET  /health - Health check")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Signal handling - SIGHUP triggers a manual config reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	// Set up filesystem watcher for the config file
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Warning: failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Printf("Warning: failed to close config file watcher: %v", err)
			}
		}()

		if err := watcher.Add(configPath); err != nil {
			log.Printf("Warning: failed to watch config file %s: %v", configPath, err)
		} else {
			log.Printf("Watching config file for changes: %s", configPath)
		}
	}

	watchEvents, watchErrors := watchChannels(watcher)

	maintenance := time.NewTicker(maintenanceInterval)
	defer maintenance.Stop()

	fmt.Println("Server started. Press Ctrl+C to stop, send SIGHUP to reload, or modify the config file for automatic reload.")

	for {
		select {
		case <-ctx.Done():
			return shutdown(httpServer)
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading configuration...")
				reloadConfiguration(configPath, service)
			case syscall.SIGINT, syscall.SIGTERM:
				fmt.Println("\nShutting down...")
				return shutdown(httpServer)
			}
		case <-maintenance.C:
			service.SweepCache()
			if err := store.OptimizeAll(); err != nil {
				log.Printf("Warning: storage optimization failed: %v", err)
			}
		case event, ok := <-watchEvents:
			if !ok {
				continue
			}
			// Editors often replace the file atomically, so rename and
			// remove count as changes too.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				log.Printf("Config file changed: %s (event: %s), reloading configuration...", event.Name, event.Op.String())

				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)
					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						log.Printf("Config file was removed and not replaced, skipping reload")
						continue
					}
					if err := watcher.Add(configPath); err != nil {
						log.Printf("Warning: failed to re-add config file to watcher: %v", err)
					}
				} else {
					time.Sleep(100 * time.Millisecond)
				}

				reloadConfiguration(configPath, service)
			}
		case err, ok := <-watchErrors:
			if !ok {
				continue
			}
			log.Printf("Config file watcher error: %v", err)
		}
	}
}

// watchChannels returns the watcher's event and error channels, or nil
// channels when no watcher could be created. A receive from a nil channel
// blocks forever, so the watch cases in the serve loop never fire instead
// of dereferencing a nil watcher.
func watchChannels(watcher *fsnotify.Watcher) (chan fsnotify.Event, chan error) {
	if watcher == nil {
		return nil, nil
	}
	return watcher.Events, watcher.Errors
}

// reloadConfiguration re-reads the config file and applies the knobs that can
// change at runtime. The storage directory and listen address require a
// restart and are left untouched.
func reloadConfiguration(configPath string, service *search.Service) {
	newCfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Failed to reload configuration: %v", err)
		return
	}

	service.SetCacheTTL(newCfg.CacheTTL.Duration)
	service.ClearCache()
	log.Printf("Configuration reloaded: cache TTL now %v", newCfg.CacheTTL.Duration)
}

func shutdown(httpServer *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
