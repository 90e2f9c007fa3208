package models

// Listes d'événements append-only utilisées uniquement pour les rapports,
// jamais comme état de référence du catalogue. Les dates sont des chaînes
// ISO (RFC3339).

// EditEvent est ajouté à chaque édition de produit, avec un instantané des
// champs numériques modifiés. Rétention de 30 jours à l'écriture.
type EditEvent struct {
	Name     string      `json:"name"`
	EditDate string      `json:"editDate"`
	Changes  EditChanges `json:"changes"`
}

type EditChanges struct {
	Quantity  int     `json:"quantity"`
	SalePrice float64 `json:"salePrice"`
	CostPrice float64 `json:"costPrice"`
}

// ZeroStockEvent enregistre le passage d'un produit à exactement zéro unité.
// Un événement par transition, quel que soit le chemin (édition ou vente).
type ZeroStockEvent struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// NewlyAddedEvent enregistre la création d'un produit.
type NewlyAddedEvent struct {
	Name    string `json:"name"`
	AddDate string `json:"addDate"`
}

// StockNotification est une entrée du journal de notifications de stock
// faible. Le journal est vidé en bloc à l'ouverture du panneau.
type StockNotification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	Timestamp int64  `json:"timestamp"`
}
