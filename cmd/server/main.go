package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/adapter"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/config"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/db"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/handler"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/middleware"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/model"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/repository"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/router"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/service"
	"github.com/iyegfkjsjdbfks/ytMain-sub002/internal/youtube"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "metadata-aggregator")

	ctx := context.Background()

	// The local catalog runs on PostgreSQL when configured, otherwise the
	// in-memory catalog keeps the server fully functional for development.
	var pool *pgxpool.Pool
	var catalog repository.Catalog
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()
		catalog = repository.NewCatalogRepo(pool)
	} else {
		log.Println("no DATABASE_URL configured, using in-memory catalog")
		catalog = repository.NewMemCatalog()
	}

	edge := service.NewEdgeCache(cfg.RedisURL)
	defer edge.Close()

	local := adapter.NewLocal(catalog)

	var external *adapter.External
	aggCfg := model.DefaultAggregationConfig()
	if cfg.YouTubeAPIKey != "" {
		external = adapter.NewExternal(youtube.NewClient(cfg.YouTubeAPIKey))
	} else {
		log.Println("no YOUTUBE_API_KEY configured, external source disabled")
		aggCfg.Sources.External = false
	}

	agg := service.NewAggregator(local, external, edge, aggCfg)

	handler.InitMetrics(agg, pool)

	// Background workers run on their own goroutines; Start blocks until the
	// context is cancelled. Catalog-change invalidation needs LISTEN/NOTIFY,
	// so it only runs against a real database.
	if pool != nil {
		go service.NewInvalidateWorker(pool, agg).Start(ctx)
	}
	warm := service.NewWarmWorker(agg, cfg.WarmInterval)
	go warm.Start(ctx)
	defer warm.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "Metadata Aggregator API",
		ServerHeader: "MetaAgg",
	})

	h := &router.Handlers{
		Video:   handler.NewVideoHandler(agg),
		Channel: handler.NewChannelHandler(agg),
		Config:  handler.NewConfigHandler(agg),
		Cache:   handler.NewCacheHandler(agg),
		Stats:   handler.NewStatsHandler(agg, catalog),
		Health:  handler.NewHealthHandler(pool, edge.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("metadata aggregator starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
