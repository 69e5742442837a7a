package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"restaurant-service/internal/api"
	"restaurant-service/internal/config"
	"restaurant-service/internal/consumer"
	"restaurant-service/internal/entity"
	"restaurant-service/internal/notify"
	"restaurant-service/internal/repository"
	"restaurant-service/internal/service"
	"restaurant-service/migrations"
)

const (
	connectRetries   = 10
	migrateRetries   = 3
	evictionInterval = time.Minute
	shutdownTimeout  = 10 * time.Second
)

type catalogStore interface {
	FetchRestaurantData(ctx context.Context) (*entity.RestaurantData, error)
	Ping(ctx context.Context) error
}

// connectCatalog opens the configured catalog store and returns it with a
// function that releases it.
func connectCatalog(ctx context.Context, cfg *config.Config) (catalogStore, func(), error) {
	if cfg.CatalogSource == config.SourceMySQL {
		db, err := repository.ConnectMySQL(ctx, cfg.MySQLDSN, connectRetries)
		if err != nil {
			return nil, nil, err
		}
		if err := migrations.AutoMigrateCatalog(migrateRetries, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewCatalogRepository(db), func() { db.Close() }, nil
	}

	client, err := repository.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}

	repo := repository.NewRestaurantRepository(client, cfg.MongoDatabase, cfg.RestaurantUID)
	if cfg.SeedFile != "" {
		if err := repo.SeedFromFile(ctx, cfg.SeedFile); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	return repo, closeFn, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := connectCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("Failed to connect to catalog store")
	}
	defer closeStore()

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer kafkaWriter.Close()
	kafkaReader := config.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)

	cartRepo := repository.NewCartRepository(rdb, cfg.CartRetention)
	catalogSource := repository.NewCachedRestaurantSource(store, rdb, cfg.CatalogCacheTTL)
	notifier := notify.Multi{
		notify.NewLogNotifier(log.Logger),
		notify.NewKafkaNotifier(kafkaWriter),
	}

	catalogService := service.NewCatalogService(catalogSource)
	cartService := service.NewCartService(cartRepo, notifier, catalogService)
	defer cartService.Close()
	healthService := service.NewHealthService(cfg.Env, cfg.Version, map[string]service.Pinger{
		"database": catalogSource,
		"redis":    cartRepo,
	})

	e := api.NewServer(api.ServerConfig{Development: cfg.IsDevelopment()}, api.Handlers{
		Health:  api.NewHealthHandler(healthService, cfg.Env),
		Catalog: api.NewCatalogHandler(catalogService, catalogSource),
		Cart:    api.NewCartHandler(cartService),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("env", cfg.Env).Msgf("Server listening on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("Shutting down server")
		return e.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return consumer.NewConsumer(kafkaReader).Run(gctx)
	})
	g.Go(func() error {
		return cartService.RunEvictions(gctx, evictionInterval, cfg.CartIdleTimeout)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
	}
}
