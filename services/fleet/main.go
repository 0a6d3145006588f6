package main

import (
	"context"
	"net/http"

	"fleet-registry/lib/config"
	"fleet-registry/lib/database"
	kafkaConfig "fleet-registry/lib/kafka"
	"fleet-registry/lib/logger"
	"fleet-registry/lib/middlewares/cors"
	"fleet-registry/services/fleet/fuel"
	"fleet-registry/services/fleet/repository"
	"fleet-registry/services/fleet/router"
	"fleet-registry/services/fleet/service"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		// Not fatal: everything can come from the environment.
		logger.New("info", "text").WithError(err).Warn("No .env file loaded")
	}

	log := logger.New(config.LogLevel(), config.LogFormat())

	mongoClient, err := database.InitMongoDB()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())
	log.Info("Connected to MongoDB")

	redisClient, err := database.InitRedis()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()
	log.Info("Connected to Redis")

	pool, err := database.InitPostgres()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info("Connected to PostgreSQL")

	repo := repository.NewMongoVehicleRepository(mongoClient, config.MongoDatabase())
	estimator := fuel.NewEstimator(config.FuelPricePerLiter())
	eventsWriter := kafkaConfig.InitKafkaWriter("fleet_events")
	if eventsWriter == nil {
		log.Info("No Kafka brokers configured, audit events disabled")
	}

	fleetService := service.NewFleetService(repo, estimator, eventsWriter, log)

	authService := service.NewAuthService(pool, redisClient, log)
	if err := authService.EnsureSchema(context.Background()); err != nil {
		log.WithError(err).Fatal("Failed to prepare operators table")
	}

	engine := gin.Default()
	engine.Use(cors.CORSMiddleware())
	router.SetupRouter(engine, fleetService, authService, redisClient)

	server := &http.Server{
		Addr:    ":" + config.Port(),
		Handler: engine,
	}

	go func() {
		log.Infof("Fleet registry listening on :%s", config.Port())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fleetService.GracefulShutdown(server)
}
