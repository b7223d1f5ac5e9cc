package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cvillegar/Odontologia/internal/config"
	"github.com/cvillegar/Odontologia/internal/handlers"
	"github.com/cvillegar/Odontologia/internal/logger"
	"github.com/cvillegar/Odontologia/internal/middleware"
	"github.com/cvillegar/Odontologia/internal/reminders"
	"github.com/cvillegar/Odontologia/internal/services"
	"github.com/cvillegar/Odontologia/internal/store"
	"github.com/cvillegar/Odontologia/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "text").WithError(err).Fatal("Invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLog := log.WithComponent("api")
	appLog.WithFields(logrus.Fields{
		"store":   cfg.StoreDriver,
		"port":    cfg.Port,
		"sms":     cfg.TextbeltAPIKey != "",
		"reminds": cfg.RemindersEnabled,
	}).Info("Configuration loaded")

	// --- Record store ---
	var backend store.Backend
	switch cfg.StoreDriver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		cancel()
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		defer client.Disconnect(context.Background())
		backend = store.NewMongoBackend(client.Database(cfg.MongoDatabase))
		appLog.Info("Successfully connected to MongoDB!")
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			appLog.WithError(err).Fatal("Failed to create data directory")
		}
		backend = store.NewCSVBackend(cfg.DataDir)
	}

	repo := store.NewRepository(backend)
	for _, err := range repo.Load(context.Background()) {
		appLog.WithError(err).Warn("Table could not be loaded, serving it empty")
	}

	// --- Initialize Services ---
	notificationSvc := services.NewNotificationService(cfg.TextbeltURL, cfg.TextbeltAPIKey, log.WithComponent("notifications"))
	defer notificationSvc.Wait()

	metrics := middleware.NewMetrics()
	h := handlers.NewHandler(repo, notificationSvc, utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		metrics, cfg.CountryCode, log.WithComponent("handlers"))

	if cfg.RemindersEnabled {
		job := reminders.NewJob(h.Scheduler, h.Patients.Lookup, notificationSvc, log.WithComponent("reminders"))
		cron, err := job.Start(cfg.ReminderAt)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to start reminder job")
		}
		defer cron.Stop()
	}

	// --- Gin Router ---
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log.WithComponent("http")), metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	h.Routes(r)

	appLog.Infof("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		appLog.WithError(err).Fatal("Server stopped")
	}
}
