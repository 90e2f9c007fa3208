package config

import (
	"log"

	"github.com/joho/godotenv"
)

// Load charge le .env local du point de vente. Toute la configuration
// (Redis, SMTP, JWT, coordonnées bancaires) reste lisible via os.Getenv.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️ Aucun fichier .env — configuration via les variables d'environnement du système")
		return
	}
	log.Println("✅ Configuration .env chargée")
}
