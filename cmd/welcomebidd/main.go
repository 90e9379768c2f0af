// Command welcomebidd serves the welcome-balance bidding engine over
// HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rizqlabs/welcomebid/api"
	"github.com/rizqlabs/welcomebid/config"
	"github.com/rizqlabs/welcomebid/history"
	"github.com/rizqlabs/welcomebid/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config file (optional)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	collector := metrics.NewCollector(logger)
	handler := api.NewHandler(api.Options{
		Store:             history.NewStore(),
		Metrics:           collector,
		Logger:            logger,
		CounterOfferDelay: time.Duration(cfg.Simulation.CounterOfferDelayMS) * time.Millisecond,
	})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Origins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown", slog.String("error", err.Error()))
		}
	}()

	logger.Info("starting server",
		slog.String("addr", cfg.Addr()),
		slog.Int("counter_offer_delay_ms", cfg.Simulation.CounterOfferDelayMS))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	<-done
}
