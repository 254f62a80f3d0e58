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

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/supreme-labs/storefront/internal/catalog"
	"github.com/supreme-labs/storefront/internal/content"
	"github.com/supreme-labs/storefront/internal/handlers"
	"github.com/supreme-labs/storefront/internal/i18n"
	"github.com/supreme-labs/storefront/internal/platform/config"
	"github.com/supreme-labs/storefront/internal/platform/kv"
	"github.com/supreme-labs/storefront/internal/platform/observability"
	"github.com/supreme-labs/storefront/internal/postal"
	repokv "github.com/supreme-labs/storefront/internal/repositories/kv"
	"github.com/supreme-labs/storefront/internal/services"
)

func main() {
	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("storefront")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	store, err := openStore(cfg.Store)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("store close error", zap.Error(err))
		}
	}()

	productCatalog, err := catalog.New()
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	bundle, err := i18n.Load()
	if err != nil {
		logger.Fatal("failed to load translations", zap.Error(err))
	}
	documents, err := content.Load()
	if err != nil {
		logger.Fatal("failed to render content", zap.Error(err))
	}

	cartRepo, err := repokv.NewCartRepository(store)
	if err != nil {
		logger.Fatal("failed to build cart repository", zap.Error(err))
	}
	orderRepo, err := repokv.NewOrderRepository(store)
	if err != nil {
		logger.Fatal("failed to build order repository", zap.Error(err))
	}
	preferenceRepo, err := repokv.NewPreferenceRepository(store)
	if err != nil {
		logger.Fatal("failed to build preference repository", zap.Error(err))
	}
	attributionRepo, err := repokv.NewAttributionRepository(store)
	if err != nil {
		logger.Fatal("failed to build attribution repository", zap.Error(err))
	}

	events := observability.EventLogger()

	cartService, err := services.NewCartService(services.CartServiceDeps{
		Repository: cartRepo,
		Catalog:    productCatalog,
		Logger:     events,
	})
	if err != nil {
		logger.Fatal("failed to build cart service", zap.Error(err))
	}
	orderService, err := services.NewOrderService(services.OrderServiceDeps{
		Repository: orderRepo,
		Logger:     events,
	})
	if err != nil {
		logger.Fatal("failed to build order service", zap.Error(err))
	}
	attributionService, err := services.NewAttributionService(services.AttributionServiceDeps{
		Repository: attributionRepo,
		Logger:     events,
	})
	if err != nil {
		logger.Fatal("failed to build attribution service", zap.Error(err))
	}
	localeService, err := services.NewLocaleService(services.LocaleServiceDeps{
		Repository:    preferenceRepo,
		DefaultLocale: cfg.Locale.Default,
		Logger:        events,
	})
	if err != nil {
		logger.Fatal("failed to build locale service", zap.Error(err))
	}
	checkoutService, err := services.NewCheckoutService(services.CheckoutServiceDeps{
		Cart:        cartService,
		Orders:      orderRepo,
		Attribution: attributionService,
		Logger:      events,
	})
	if err != nil {
		logger.Fatal("failed to build checkout service", zap.Error(err))
	}

	postalClient := postal.NewClient(postal.ClientDeps{
		BaseURL: cfg.Postal.BaseURL,
		Timeout: cfg.Postal.Timeout,
		Logger:  events,
	})

	health := handlers.NewHealthHandlers(
		handlers.WithReadinessCheck("store", func(ctx context.Context) error {
			_, err := store.Get(ctx, "carts", "__probe__")
			if err != nil && !errors.Is(err, kv.ErrNotFound) {
				return err
			}
			return nil
		}),
	)

	router := handlers.NewRouter(
		handlers.WithHealthHandlers(health),
		handlers.WithMiddleware(
			observability.InjectLoggerMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(logger),
			handlers.ClientKeyMiddleware(cfg.Client.KeyHeader),
			handlers.LocaleMiddleware(localeService),
		),
		handlers.WithCatalogRoutes(func(r chi.Router) { handlers.NewCatalogHandlers(productCatalog).Routes(r) }),
		handlers.WithCartRoutes(func(r chi.Router) { handlers.NewCartHandlers(cartService).Routes(r) }),
		handlers.WithPostalRoutes(func(r chi.Router) { handlers.NewPostalHandlers(postalClient, cartService).Routes(r) }),
		handlers.WithCheckoutRoutes(func(r chi.Router) { handlers.NewCheckoutHandlers(checkoutService).Routes(r) }),
		handlers.WithOrderRoutes(func(r chi.Router) { handlers.NewOrderHandlers(orderService, bundle).Routes(r) }),
		handlers.WithContentRoutes(func(r chi.Router) { handlers.NewContentHandlers(documents).Routes(r) }),
		handlers.WithPreferenceRoutes(func(r chi.Router) { handlers.NewPreferenceHandlers(localeService).Routes(r) }),
		handlers.WithAttributionRoutes(func(r chi.Router) { handlers.NewAttributionHandlers(attributionService).Routes(r) }),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(cfg config.StoreConfig) (kv.Store, error) {
	if cfg.InMemory || cfg.Path == "" {
		return kv.NewMemoryStore(), nil
	}
	return kv.OpenBolt(cfg.Path)
}
