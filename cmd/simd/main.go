package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/roadhaul/fleet-sim/internal/auth"
	"github.com/roadhaul/fleet-sim/internal/bus"
	"github.com/roadhaul/fleet-sim/internal/config"
	"github.com/roadhaul/fleet-sim/internal/engine"
	"github.com/roadhaul/fleet-sim/internal/handlers"
	"github.com/roadhaul/fleet-sim/internal/middleware"
	"github.com/roadhaul/fleet-sim/internal/mqtt"
	"github.com/roadhaul/fleet-sim/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	snapStore, cleanup, err := buildStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize snapshot store")
	}
	defer cleanup()

	params := engine.DefaultParams()
	params.MaxDrivingHours = cfg.MaxDrivingHours
	params.MinRest = cfg.MinRest

	events := bus.New()
	eng := engine.New(params, events, nil)

	// Resume from the last snapshot, if any.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	snap, err := snapStore.Load(loadCtx)
	cancelLoad()
	switch {
	case err == nil:
		eng.Restore(snap)
		log.WithFields(log.Fields{
			"vehicles": len(snap.Vehicles),
			"drivers":  len(snap.Drivers),
			"saved_at": snap.SavedAt,
		}).Info("Resumed from snapshot")
	case errors.Is(err, store.ErrNoSnapshot):
		log.Info("No snapshot found, starting fresh")
	default:
		log.WithError(err).Warn("Failed to load snapshot, starting fresh")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MQTTEnabled {
		pub, err := mqtt.NewPublisher(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MQTT broker")
		}
		defer pub.Close()
		go pub.Run(events.Subscribe(256))
		log.WithField("broker", cfg.MQTTBroker).Info("MQTT publisher started")
	}

	clock := engine.NewClock(eng, snapStore, cfg.TickInterval, cfg.SnapshotInterval)
	go clock.Run(ctx)

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	fleetHandler := handlers.NewFleetHandler(eng)
	authHandler := handlers.NewAuthHandler(authService, cfg.OpsUser, cfg.OpsPasswordHash)
	authMW := middleware.NewAuthMiddleware(authService)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handlers.NewRouter(fleetHandler, authHandler, authMW),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("Ops API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	events.Close()
}

func buildStore(cfg *config.Config) (store.SnapshotStore, func(), error) {
	switch cfg.StoreBackend {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		client, err := store.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		coll := client.Database(cfg.MongoDB).Collection("snapshots")
		cleanup := func() {
			_ = client.Disconnect(context.Background())
		}
		return store.NewMongoStore(coll), cleanup, nil
	case "redis":
		rs, err := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
