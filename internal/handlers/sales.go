package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/sales"
	"celta_back_end/internal/store"
)

func CreateSale(c *gin.Context) {
	var req sales.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sales.Process(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
		case errors.Is(err, sales.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité insuffisante en stock"})
		case errors.Is(err, sales.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur traitement vente: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func GetSaleHistory(c *gin.Context) {
	history := store.SaleHistory(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"sales": history,
		"total": len(history),
	})
}
