package models

// Product est l'entité de base du catalogue. L'identifiant est dérivé du
// timestamp de création (millisecondes) et n'est jamais réutilisé.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
	Quantity  int     `json:"quantity"`
}

// ProductInput porte les champs modifiables d'un produit (création et édition).
type ProductInput struct {
	Name      string  `json:"name" binding:"required"`
	Photo     string  `json:"photo"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
	Quantity  int     `json:"quantity"`
}

// StockMetrics regroupe les indicateurs affichés en tête du tableau de bord.
type StockMetrics struct {
	TotalProducts int    `json:"total_products"`
	TotalUnits    int    `json:"total_units"`
	TotalOutflow  int    `json:"total_outflow"`
	DailySales    string `json:"daily_sales"`
	DailyProfit   string `json:"daily_profit"`
}
