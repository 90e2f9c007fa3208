package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/catalog"
	"celta_back_end/internal/models"
	"celta_back_end/internal/reports"
	"celta_back_end/internal/store"
	"celta_back_end/internal/utils"
)

func GetReport(c *gin.Context) {
	c.JSON(http.StatusOK, reports.Cached(c.Request.Context()))
}

// GetMetrics relit directement le magasin, sans passer par le cache des
// rapports.
func GetMetrics(c *gin.Context) {
	ctx := c.Request.Context()
	products := store.Products(ctx)

	c.JSON(http.StatusOK, models.StockMetrics{
		TotalProducts: len(products),
		TotalUnits:    catalog.TotalUnitsInStock(products),
		TotalOutflow:  store.Counter(ctx, store.KeyTotalOutflow),
		DailySales:    utils.FormatAmount(store.Amount(ctx, store.KeyDailySales)),
		DailyProfit:   utils.FormatAmount(store.Amount(ctx, store.KeyDailyProfit)),
	})
}
