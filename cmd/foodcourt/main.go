package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodcourt/internal/config"
	"foodcourt/internal/http/handlers"
	"foodcourt/internal/repos"
	"foodcourt/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("[store] %v", err)
	}
	defer closeStore()

	// nil interface when Redis is off, never a typed nil
	var top services.TopCache
	if cfg.RedisAddr != "" {
		rdb, err := repos.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("[cache] %v", err)
		}
		defer rdb.Close()
		top = repos.NewRedisTopCache(rdb, cfg.HomecardTTL)
		log.Printf("[cache] homecard cached in redis at %s (ttl %s)", cfg.RedisAddr, cfg.HomecardTTL)
	}

	tokens := services.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	app := handlers.NewApp(cfg, handlers.NewDeps(st, cfg, tokens, top))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("[server] listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Printf("[server] shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}

// openStores connects the configured backend and returns its cleanup.
func openStores(ctx context.Context, cfg config.Config) (handlers.Stores, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		mdb, err := repos.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return handlers.Stores{}, nil, err
		}
		st := handlers.Stores{
			Foods:    repos.NewMongoFoodRepo(mdb),
			Orders:   repos.NewMongoOrderRepo(mdb),
			Feedback: repos.NewMongoFeedbackRepo(mdb),
		}
		return st, func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mdb.Client().Disconnect(cctx)
		}, nil
	default:
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return handlers.Stores{}, nil, err
		}
		if cfg.SeedDemo {
			if err := repos.SeedIfEmpty(ctx, db); err != nil {
				_ = db.Close()
				return handlers.Stores{}, nil, err
			}
		}
		st := handlers.Stores{
			Foods:    repos.NewFoodRepo(db),
			Orders:   repos.NewOrderRepo(db),
			Feedback: repos.NewFeedbackRepo(db),
		}
		return st, func() { _ = db.Close() }, nil
	}
}
