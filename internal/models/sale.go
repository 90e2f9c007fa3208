package models

// Customer décrit l'acheteur d'une vente. Tous les champs sont optionnels;
// l'e-mail déclenche l'envoi de la facture.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	NIF     string `json:"nif"`
}

// SaleRecord est l'enregistrement immuable d'une vente terminée. Le nom du
// produit est dénormalisé: renommer un produit ne modifie pas l'historique.
// Date est une chaîne ISO (RFC3339) pour permettre le filtrage par préfixe
// de jour calendaire.
type SaleRecord struct {
	ID            string  `json:"id"`
	ProductName   string  `json:"productName"`
	Quantity      int     `json:"quantity"`
	SalePrice     float64 `json:"salePrice"`
	TotalValue    float64 `json:"totalValue"`
	Profit        float64 `json:"profit"`
	Date          string  `json:"date"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
}
