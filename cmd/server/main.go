package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kadoshrent/internal/api"
	"kadoshrent/internal/config"
	"kadoshrent/internal/i18n"
	"kadoshrent/internal/repository"
	"kadoshrent/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := cfg.NewLogger()

	catalog, err := repository.NewCatalogRepository()
	if err != nil {
		log.Fatalf("Failed to load vehicle catalog: %v", err)
	}
	bundle, err := i18n.LoadBundle()
	if err != nil {
		log.Fatalf("Failed to load dictionaries: %v", err)
	}

	notifier, closeNotifier, err := service.NewNotifierFromConfig(cfg, log)
	if err != nil {
		log.Fatalf("Failed to set up notifications: %v", err)
	}
	defer closeNotifier()

	calendar := service.NewCalendarService(cfg.OperatorName, cfg.OperatorEmail, cfg.OperatorLocation)
	filterSvc := service.NewFilterService(catalog)
	reservationSvc := service.NewReservationService(notifier, calendar, catalog, log)

	limiter := api.NewRateLimiter(cfg.ReservationRateLimit, cfg.ReservationRateBurst, log)
	jobs := service.NewJobService(limiter, log)
	if err := jobs.Start(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Catalog:       api.NewCatalogHandler(filterSvc, bundle, log),
		Reservations:  api.NewReservationHandler(reservationSvc, log),
		Limiter:       limiter,
		DefaultLocale: cfg.DefaultLocale,
		CORSOrigin:    cfg.CORSOrigin,
		Log:           log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "vehicles": catalog.Len()}).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP shutdown did not complete")
	}
	if err := jobs.Stop(ctx); err != nil {
		log.WithError(err).Warn("background jobs did not stop in time")
	}
}
