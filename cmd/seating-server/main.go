package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-seating/internal/app/floor"
	"restaurant-seating/internal/broker"
	"restaurant-seating/internal/config"
	"restaurant-seating/internal/eventpush"
	"restaurant-seating/internal/logging"
	"restaurant-seating/internal/seating"
	"restaurant-seating/internal/store"
	"restaurant-seating/internal/stream"
	httptransport "restaurant-seating/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	if err := logging.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer func() { _ = logging.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if cfg.Server.PostgresDSN != "" {
		st, err = store.New(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		defer st.Close()
	}

	feed := stream.NewFeed(cfg.Server.EventBufferSize)
	defer feed.Close()
	observers := seating.Observers{feed}

	var sinks []eventpush.Sink
	if st != nil {
		sinks = append(sinks, store.NewJournalSink(st))
	}
	if cfg.Server.AMQPURL != "" {
		pub := broker.NewPublisher(cfg.Server.AMQPURL, cfg.Server.AMQPQueue)
		defer func() { _ = pub.Close() }()
		sinks = append(sinks, pub)
	}
	if cfg.Server.EventWebhookURL != "" {
		sinks = append(sinks, eventpush.NewWebhookSink(cfg.Server.EventWebhookURL, cfg.Server.EventWebhookSecret, 5*time.Second))
	}
	if len(sinks) > 0 {
		dispatcher := eventpush.NewDispatcher(eventpush.Config{
			Workers:   cfg.Server.PushWorkers,
			RetryMax:  cfg.Server.PushRetryMax,
			RetryBase: time.Duration(cfg.Server.PushRetryBaseMS) * time.Millisecond,
		}, sinks...)
		if err := dispatcher.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("event push start failed")
		}
		observers = append(observers, dispatcher)
	}

	mgr, err := seating.NewManager(
		cfg.Server.TableCapacities,
		seating.WithObserver(observers),
		seating.WithMaxPartySize(cfg.Server.MaxPartySize),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("seating manager init failed")
	}
	log.Info().Ints("table_capacities", cfg.Server.TableCapacities).Int("max_party_size", cfg.Server.MaxPartySize).Int("sinks", len(sinks)).Msg("floor ready")

	var journal floor.Journal
	if st != nil {
		journal = st
	}
	svc := floor.NewService(mgr, journal, cfg.Server.MaxPartySize)
	r := httptransport.NewRouter(svc, feed, st, cfg.Server)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		feed.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
