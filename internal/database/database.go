package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis est le client partagé du magasin clé-valeur. Nil quand REDIS_HOST
// n'est pas configuré: le magasin bascule alors en mode mémoire.
var Redis *redis.Client

// Connect initialise la connexion Redis
func Connect() {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		log.Println("⚠️ REDIS_HOST non configuré — magasin clé-valeur en mémoire")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	Redis = redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// Close ferme la connexion Redis
func Close() error {
	if Redis != nil {
		return Redis.Close()
	}
	return nil
}
