package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/MitaliChangani/Chai-Biscuit-website/internal/backend"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/config"
	apphttp "github.com/MitaliChangani/Chai-Biscuit-website/internal/http"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/http/handlers"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/addresses"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/dashboard"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/history"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/modules/tracking"
	"github.com/MitaliChangani/Chai-Biscuit-website/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	store, err := storage.FromDriver(cfg.StorageDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	logger.Info("snapshot store ready", "driver", store.Driver)

	api := backend.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger)

	var stream tracking.Stream
	var streamConn *backend.Stream
	if cfg.UserPhone != "" {
		streamConn = backend.NewStream(backend.StreamURL(cfg.StreamURL, cfg.UserPhone), true, logger)
		stream = streamConn
	} else {
		logger.Warn("USER_PHONE not set; tracking runs on polling only")
	}

	var trackingHandler *handlers.TrackingHandler
	engine := tracking.NewController(tracking.ControllerConfig{
		Fetcher:  api,
		Stream:   stream,
		Store:    store.Store,
		Logger:   logger,
		Interval: cfg.PollInterval,
		Publish:  func(s tracking.Snapshot) { trackingHandler.Publish(s) },
		Alert:    func(orderID string) { trackingHandler.Alert(orderID) },
	})
	trackingHandler = handlers.NewTrackingHandler(engine)

	if err := engine.Start(context.Background()); err != nil {
		log.Fatalf("tracking engine: %v", err)
	}

	r := apphttp.NewRouter(logger, apphttp.Deps{
		Tracking:  trackingHandler,
		Addresses: handlers.NewAddressesHandler(addresses.NewService(api)),
		History:   handlers.NewHistoryHandler(history.NewService(api)),
		Dashboard: handlers.NewDashboardHandler(dashboard.NewService(api)),
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	engine.Stop()
	if streamConn != nil {
		streamConn.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
