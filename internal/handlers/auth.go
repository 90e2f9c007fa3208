package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
	"celta_back_end/internal/utils"
)

// Register enregistre le profil de l'entreprise et ses identifiants locaux.
// Aucun hachage: système mono-utilisateur local sans modèle de sécurité.
func Register(c *gin.Context) {
	var user models.UserData
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user.Email == "" || user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "E-mail et mot de passe obligatoires"})
		return
	}

	if err := store.SaveUserData(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde du profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Compte créé avec succès"})
}

// Login compare l'e-mail et le mot de passe en clair avec le profil stocké
// et émet un jeton de session.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := store.UserData(c.Request.Context())
	if user.Email == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun compte enregistré"})
		return
	}
	if user.Email != req.Email || user.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants incorrects"})
		return
	}

	token, err := utils.GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
