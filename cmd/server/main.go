package main

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "dealertrack/docs"
	"dealertrack/internal/alerts"
	"dealertrack/internal/config"
	"dealertrack/internal/database"
	"dealertrack/internal/handlers"
	"dealertrack/internal/pipeline"
	"dealertrack/internal/runs"
	"dealertrack/internal/scheduler"
	"dealertrack/internal/store"
)

// @title DealerTrack API
// @version 1.0
// @description Status-classification and zone-validation service for dealership back-office order tracking.
// @BasePath /api/v1
func main() {
	cfg := config.Load()

	database.ConnectDatabase()

	configStore := store.New(database.GetDB())
	runStore := runs.NewStore()
	processor := pipeline.NewProcessor()

	var alertPublisher alerts.Publisher
	if cfg.NATSURL != "" {
		publisher, err := alerts.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			log.Fatalf("Failed to initialize NATS alert publisher: %v", err)
		}
		alertPublisher = publisher
		log.Printf("Alert publishing enabled (NATS at %s)", cfg.NATSURL)
	} else {
		alertPublisher = alerts.NopPublisher{}
		log.Println("NATS_URL not set, alert publishing disabled")
	}
	defer alertPublisher.Close()

	purge := scheduler.NewService(runStore, cfg.PurgeSchedule, cfg.RunRetention)
	if err := purge.Start(); err != nil {
		log.Fatalf("Failed to start run purge scheduler: %v", err)
	}
	defer purge.Stop()

	router := gin.Default()
	handlers.RegisterRoutes(router, handlers.New(configStore, runStore, processor, alertPublisher))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
