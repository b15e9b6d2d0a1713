package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airservice/api"
	"github.com/Domenick1991/airservice/config"
	"github.com/Domenick1991/airservice/internal/bootstrap"
	"github.com/Domenick1991/airservice/internal/cache"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/logger"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/service/booking"
	"github.com/Domenick1991/airservice/internal/service/catalog"
	"github.com/Domenick1991/airservice/internal/service/flights"
	"github.com/Domenick1991/airservice/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if !cfg.Log.Pretty {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if cfg.Database.Migrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migrate schema")
		}
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.ReferenceTTL())
	defer redisCache.Close()
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.Warn().Err(err).Msg("kafka unavailable, order event publishing will time out")
	}

	tx := repository.NewTransactor(pool)

	catalogService := catalog.NewCatalogService(catalog.Repositories{
		Countries:     repository.NewCountryRepository(pool),
		Cities:        repository.NewCityRepository(pool),
		Airports:      repository.NewAirportRepository(pool),
		AirplaneTypes: repository.NewAirplaneTypeRepository(pool),
		Airplanes:     repository.NewAirplaneRepository(pool),
		Crew:          repository.NewCrewRepository(pool),
	}, tx,
		catalog.WithCache(redisCache),
		catalog.WithImageStore(storage.NewLocalImages(cfg.Storage.MediaRoot)),
	)
	flightService := flights.NewFlightService(
		repository.NewRouteRepository(pool),
		repository.NewFlightRepository(pool),
	)
	orderService := booking.NewOrderService(
		repository.NewOrderRepository(pool),
		repository.NewTicketRepository(pool),
		tx,
		booking.WithEvents(producer, cfg.Kafka.OrderEventsTopic),
	)

	limiter := api.NewRateLimiter(cfg.RateLimit.OrdersPerSecond, cfg.RateLimit.Burst)
	router := api.NewRouter(api.Handlers{
		Catalog: api.NewCatalogHandler(catalogService),
		Flights: api.NewFlightHandler(flightService),
		Orders:  api.NewOrderHandler(orderService, limiter.Middleware()),
	}, api.JWTAuth(cfg.Auth.JWTSecret))

	if err := bootstrap.Run(ctx, cfg, router, pool); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
}
