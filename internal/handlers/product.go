package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/catalog"
	"celta_back_end/internal/models"
	"celta_back_end/internal/store"
)

func GetProducts(c *gin.Context) {
	products := store.Products(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"total_units": catalog.TotalUnitsInStock(products),
	})
}

func CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité ne peut pas être négative"})
		return
	}

	product, err := catalog.AddProduct(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

func UpdateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La quantité ne peut pas être négative"})
		return
	}

	product, err := catalog.EditProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur édition produit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

func DeleteProduct(c *gin.Context) {
	if err := catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit non trouvé"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}
