package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"celta_back_end/internal/models"
)

func TestGenerateInvoiceHTML(t *testing.T) {
	html := GenerateInvoiceHTML(models.InvoiceData{
		InvoiceNumber: "1756543200000",
		Date:          "30/08/2026",
		CompanyInfo:   models.InvoiceCompany{Name: "Celta SARL", Email: "contact@celta.example"},
		CustomerInfo: models.InvoiceCustomer{
			Name:    "Alice",
			Address: "12 rue des Lilas",
			NIF:     "987654321",
		},
		Items: []models.InvoiceItem{
			{Name: "Stylo", Quantity: 2, Price: 1000, Total: 2000},
		},
		Subtotal: 2000,
		Total:    2000,
	})

	assert.Contains(t, html, "Facture")
	assert.Contains(t, html, "1756543200000")
	assert.Contains(t, html, "Celta SARL")
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "12 rue des Lilas")
	assert.Contains(t, html, "NIF : 987654321")
	assert.Contains(t, html, "Stylo")
	// Pas de bloc QR sans données de paiement
	assert.NotContains(t, html, "data:image/png;base64")
}

func TestGenerateInvoiceHTMLWithQR(t *testing.T) {
	qr, err := GenerateSepaQR("BE71096123456769", "GKCCBEBB", "Celta SARL", "FACT-1", 20.5)
	require.NoError(t, err)
	require.NotEmpty(t, qr)

	html := GenerateInvoiceHTML(models.InvoiceData{
		InvoiceNumber: "1",
		CompanyInfo:   models.InvoiceCompany{Name: "Celta SARL"},
		QRBase64:      qr,
	})
	assert.Contains(t, html, "data:image/png;base64")
}
