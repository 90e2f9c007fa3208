package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
)

// GetProfile renvoie le profil sans le mot de passe.
func GetProfile(c *gin.Context) {
	user := store.UserData(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"companyName": user.CompanyName,
		"email":       user.Email,
		"nif":         user.NIF,
		"phone":       user.Phone,
		"address":     user.Address,
		"logo":        user.Logo,
	})
}

// UpdateProfile synchronise userData et profileData, comme l'écran de
// réglages d'origine.
func UpdateProfile(c *gin.Context) {
	var profile models.ProfileData
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user := store.UserData(ctx)
	user.CompanyName = profile.BusinessName
	user.Email = profile.Email
	user.NIF = profile.NIF
	user.Logo = profile.Image

	if err := store.SaveUserData(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde du profil"})
		return
	}
	if err := store.SaveProfileData(ctx, profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde du profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil mis à jour avec succès"})
}

func GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, store.AppSettings(c.Request.Context()))
}

func UpdateSettings(c *gin.Context) {
	var settings models.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := store.SaveAppSettings(c.Request.Context(), settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde des réglages"})
		return
	}
	c.JSON(http.StatusOK, settings)
}
