package di

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"spots-server/api"
	"spots-server/config"
	"spots-server/dao/redis"
	"spots-server/dao/tables"
	"spots-server/db"
	"spots-server/metrics"
	"spots-server/queue"
	"spots-server/server"
	"spots-server/server/handlers"
	services "spots-server/service"
	"spots-server/util"
)

// Container holds all application dependencies.
type Container struct {
	TableClient     db.TableClient
	RedisClient     db.RedisClient
	SpotDao         *tables.SpotDAO
	ReviewDao       *tables.ReviewDAO
	RedisVoteDao    *redis.RedisVoteDAO
	ReviewPublisher queue.ReviewEventPublisher
	Metrics         *metrics.Metrics
	SpotService     *services.SpotService
	ReviewService   *services.ReviewService
	SpotHandler     *handlers.SpotHandler
	ReviewHandler   *handlers.ReviewHandler
	MapHandler      *handlers.MapHandler
	MuxRouter       *mux.Router
	Router          *server.Router
	SpotsHttpServer *server.SpotsHttpServer
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// vote guard runs on an in-memory Redis mock.
func NewContainer(cfg *config.Config) *Container {
	configureLogging(cfg.LogLevel)
	log.WithFields(log.Fields{
		"prefix":  "container",
		"env":     cfg.Env,
		"backend": cfg.Store.Backend,
	}).Info("initializing container")

	tableClient := newTableClient(cfg.Store)
	if err := tableClient.Ping(); err != nil {
		// the REST store answers 401 on its root for a bad key, which still
		// proves it is reachable, so this is not fatal
		log.WithFields(log.Fields{
			"prefix": "container",
			"error":  err,
		}).Warn("table store ping failed")
	}

	var redisClient db.RedisClient
	if cfg.Env != "prod" {
		redisClient = db.NewMockRedisClient()
		log.WithField("prefix", "container").Info("Using mock redis client")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisClient = db.NewGoRedisClient(context.Background(), redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	}

	var publisher queue.ReviewEventPublisher = queue.NoopReviewPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = queue.NewKafkaReviewPublisher(queue.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicReviews))
		log.WithFields(log.Fields{
			"prefix": "container",
			"topic":  cfg.Kafka.TopicReviews,
		}).Info("Publishing review events to kafka")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(registry)

	clock := campusClock(cfg.TimeZone)

	spotDao := tables.NewSpotDAO(tableClient)
	reviewDao := tables.NewReviewDAO(tableClient)
	redisVoteDao := redis.NewRedisVoteDAO(redisClient)

	spotService := services.NewSpotService(spotDao, m, clock)
	reviewService := services.NewReviewService(reviewDao, redisVoteDao, publisher, m, cfg.Reviews, clock)

	spotHandler := handlers.NewSpotHandler(spotService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	mapHandler := handlers.NewMapHandler(spotService, cfg.Map)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(spotHandler, reviewHandler, mapHandler, m, muxRouter)
	spotsHttpServer := server.NewSpotsHttpServer(router, muxRouter, cfg.HTTP)

	return &Container{
		TableClient:     tableClient,
		RedisClient:     redisClient,
		SpotDao:         spotDao,
		ReviewDao:       reviewDao,
		RedisVoteDao:    redisVoteDao,
		ReviewPublisher: publisher,
		Metrics:         m,
		SpotService:     spotService,
		ReviewService:   reviewService,
		SpotHandler:     spotHandler,
		ReviewHandler:   reviewHandler,
		MapHandler:      mapHandler,
		MuxRouter:       muxRouter,
		Router:          router,
		SpotsHttpServer: spotsHttpServer,
	}
}

// Close releases the clients that hold connections.
func (c *Container) Close() {
	if err := c.ReviewPublisher.Close(); err != nil {
		log.WithFields(log.Fields{"prefix": "container", "error": err}).Warn("failed to close review publisher")
	}
	if closer, ok := c.TableClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.WithFields(log.Fields{"prefix": "container", "error": err}).Warn("failed to close table client")
		}
	}
	if closer, ok := c.RedisClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.WithFields(log.Fields{"prefix": "container", "error": err}).Warn("failed to close redis client")
		}
	}
}

func newTableClient(cfg config.StoreConfig) db.TableClient {
	switch cfg.Backend {
	case config.STORE_BACKEND_MEMORY:
		client := db.NewMockTableClient()
		path := config.GetResourcePath(config.SEED_TABLES_RESOURCE)
		seed, err := util.ReadSeedTablesFromJSON(path)
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": "container",
				"path":   path,
				"error":  err,
			}).Warn("starting with empty in-memory tables")
			return client
		}
		util.SeedMockTableClient(client, seed)
		return client

	case config.STORE_BACKEND_POSTGRES:
		client, err := db.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			panic(fmt.Sprintf("Failed to connect to Postgres: %v", err))
		}
		return client

	default:
		httpClient := api.NewHTTPClient(cfg.URL)
		return db.NewRestTableClient(httpClient, config.REST_TABLES_PATH_PREFIX, cfg.APIKey)
	}
}

func configureLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// campusClock returns time.Now in the named zone, or local time when the
// zone cannot be loaded.
func campusClock(zone string) func() time.Time {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": "container",
			"zone":   zone,
			"error":  err,
		}).Warn("unknown time zone, using local time")
		loc = time.Local
	}
	return func() time.Time {
		return time.Now().In(loc)
	}
}
