package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk2023060901/search-aggregator/internal/conf"
	"github.com/lk2023060901/search-aggregator/internal/data"
	"github.com/lk2023060901/search-aggregator/internal/pkg/logger"
	searchbiz "github.com/lk2023060901/search-aggregator/internal/search/biz"
	searchservice "github.com/lk2023060901/search-aggregator/internal/search/service"
	"github.com/lk2023060901/search-aggregator/internal/server"
	"github.com/lk2023060901/search-aggregator/internal/websearch/provider"
	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "config file path (optional, env and defaults apply without it)")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&config.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	logger.SetGlobal(log)
	log.Info("config loaded successfully", zap.String("history_driver", config.History.Driver))

	// Initialize data layer
	d, cleanup, err := data.NewData(config, log)
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	// Initialize search providers; providers without an API key are skipped
	providers, skipped, err := provider.NewFactory().CreateConfigured(config.Search.ProviderConfigs())
	if err != nil {
		log.Fatal("failed to create search providers", zap.Error(err))
	}
	for _, id := range skipped {
		log.Warn("search provider not configured, skipping", zap.String("provider", string(id)))
	}
	if len(providers) == 0 {
		log.Warn("no search provider configured, every search will report no results")
	}

	// Initialize use cases
	aggregator := searchbiz.NewAggregator(providers, config.Search.ProviderTimeout, log)
	searchUseCase := searchbiz.NewSearchUseCase(aggregator, d.History, config.History.Limit, log)

	log.Info("search providers ready", zap.Strings("providers", providerNames(aggregator.ProviderIDs())))

	// Initialize services
	searchService := searchservice.NewSearchService(searchUseCase, log)

	// Initialize servers
	httpServer := server.NewHTTPServer(config, log, searchService)
	grpcServer := server.NewGRPCServer(config, log)

	// Start servers in goroutines
	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	if config.Server.GRPCPort > 0 {
		go func() {
			if err := grpcServer.Start(); err != nil {
				log.Fatal("failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	grpcServer.SetServing()
	log.Info("servers started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down servers...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	// Stop gRPC server
	grpcServer.Stop()

	// Stop HTTP server
	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("servers exited")
}

func providerNames(ids []types.ProviderID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, string(id))
	}
	return names
}
