package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"celta_back_end/internal/catalog"
	"celta_back_end/internal/config"
	"celta_back_end/internal/database"
	"celta_back_end/internal/reports"
	"celta_back_end/internal/routes"
	"celta_back_end/internal/store"
)

func main() {
	config.Load()
	database.Connect()
	store.InitFromEnv()

	ctx := context.Background()

	// Purge des événements de suivi de plus de 30 jours au démarrage.
	catalog.CleanupOldHistory(ctx)

	reports.StartWatcher(ctx)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("✅ Serveur démarré sur le port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Erreur serveur: %v", err)
	}
}
