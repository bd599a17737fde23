package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shopping-list/internal/cache"
	"shopping-list/internal/config"
	"shopping-list/internal/database"
	"shopping-list/internal/logger"
	"shopping-list/internal/repository"
	"shopping-list/internal/routes"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.Get()
	defer log.Sync()

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is not set")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	store := repository.NewMongoStore(client.Database(cfg.MongoDB).Collection("products"))
	cache.Init(5 * time.Minute)

	router := gin.Default()
	router.Use(cors.Default())
	router.MaxMultipartMemory = 10 << 20
	routes.RegisterRoutes(router, store)

	log.Info("server running", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
