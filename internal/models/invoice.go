package models

// InvoiceData alimente le gabarit HTML de la facture: bloc entreprise, bloc
// client, ligne d'article unique, sous-total / taxe (fixée à 0) / total.
type InvoiceData struct {
	InvoiceNumber string
	Date          string
	CompanyInfo   InvoiceCompany
	CustomerInfo  InvoiceCustomer
	Items         []InvoiceItem
	Subtotal      float64
	Tax           float64
	Total         float64
	QRBase64      string
}

type InvoiceCompany struct {
	Name    string
	Logo    string
	Address string
	Phone   string
	Email   string
	NIF     string
}

type InvoiceCustomer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	NIF     string
}

type InvoiceItem struct {
	Name     string
	Quantity int
	Price    float64
	Total    float64
}
