package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/catalog"
)

// ResetAllData remet à zéro catalogue, ventes et compteurs.
func ResetAllData(c *gin.Context) {
	if err := catalog.ResetAllData(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur remise à zéro"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Données remises à zéro"})
}

// CleanTrackingData réinitialise les listes de suivi des rapports.
func CleanTrackingData(c *gin.Context) {
	if err := catalog.CleanTrackingData(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur nettoyage des données de suivi"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Données de suivi nettoyées"})
}
