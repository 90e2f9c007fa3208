package models

// Report est l'agrégat dérivé servi au tableau de bord. Il est recalculé par
// le watcher à chaque invalidation et mis en cache dans le magasin.
type Report struct {
	GeneratedAt        string             `json:"generated_at"`
	Metrics            StockMetrics       `json:"metrics"`
	ZeroStockCount     int                `json:"zero_stock_count"`
	Growth             float64            `json:"growth"`
	TopProducts        []TopProduct       `json:"top_products"`
	EditedProducts     []ConsolidatedEdit `json:"edited_products"`
	ZeroStockProducts  []ZeroStockEvent   `json:"zero_stock_products"`
	NewlyAddedProducts []NewlyAddedEvent  `json:"newly_added_products"`
}

// TopProduct est une ligne du top 5 des ventes du jour. Percent est la part
// du produit dans le total d'unités vendues ce jour, arrondie à une décimale.
type TopProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Percent  float64 `json:"percent"`
}

// ConsolidatedEdit est la réduction des EditEvent par nom de produit:
// nombre d'occurrences et date de la dernière édition.
type ConsolidatedEdit struct {
	Name     string      `json:"name"`
	EditDate string      `json:"editDate"`
	Count    int         `json:"count"`
	Changes  EditChanges `json:"changes"`
}
